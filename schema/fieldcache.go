package schema

import (
	"reflect"
	"strings"
	"sync"

	"github.com/oakwood-mc/nbtcore/internal/hash"
)

// fieldInfo describes one struct field's NBT binding, precomputed once per
// Go type and cached. nameHash lets the decoder dispatch a raw (still
// mutf8-encoded, not yet allocated-as-string) compound field name straight
// to a struct field index, the same hash-first-then-verify lookup the
// teacher uses for metric IDs (internal/hash.ID, blob/numeric_decoder.go
// VerifyMetricNamesHashes) generalized to compile-time-known field sets.
type fieldInfo struct {
	name     string
	nameHash uint64
	index    int
}

// structInfo is the cached reflection shape of one Go struct type.
type structInfo struct {
	fields    []fieldInfo
	restIndex int // index of a `nbt:",rest"` map[string]value.Value field, or -1
}

var structInfoCache sync.Map // reflect.Type -> *structInfo

func getStructInfo(t reflect.Type) *structInfo {
	if cached, ok := structInfoCache.Load(t); ok {
		return cached.(*structInfo)
	}

	info := buildStructInfo(t)
	actual, _ := structInfoCache.LoadOrStore(t, info)

	return actual.(*structInfo)
}

func buildStructInfo(t reflect.Type) *structInfo {
	info := &structInfo{restIndex: -1}

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, rest := parseTag(sf)
		if rest {
			info.restIndex = i
			continue
		}

		info.fields = append(info.fields, fieldInfo{
			name:     name,
			nameHash: hash.ID(name),
			index:    i,
		})
	}

	return info
}

// parseTag reads the `nbt:"name,opts"` struct tag, falling back to the
// Go field name when absent.
func parseTag(sf reflect.StructField) (name string, rest bool) {
	tagVal, ok := sf.Tag.Lookup("nbt")
	if !ok {
		return sf.Name, false
	}

	parts := strings.Split(tagVal, ",")
	name = parts[0]
	if name == "" {
		name = sf.Name
	}

	for _, opt := range parts[1:] {
		if opt == "rest" {
			rest = true
		}
	}

	return name, rest
}

// lookup finds the field whose schema name matches rawName (the raw,
// not-yet-decoded wire bytes of a compound field name). It hashes rawName
// and compares against the precomputed candidate's name bytes only on hash
// match, guarding against the vanishingly unlikely xxhash collision the
// same way the teacher verifies metric-name hashes before trusting them.
func (si *structInfo) lookup(rawName []byte) (fieldInfo, bool) {
	h := hash.ID(string(rawName))
	for _, f := range si.fields {
		if f.nameHash == h && f.name == string(rawName) {
			return f, true
		}
	}

	return fieldInfo{}, false
}

// Package schema maps an NBT byte stream onto a user-declared Go shape
// (structs, slices, maps, pointers) and back, following the rules in
// spec §4.2/§4.3.
//
// The mapping is driven by reflection over declarative struct tags rather
// than code generation (spec §9, option (b)) and proceeds one compound
// frame at a time exactly the way the teacher's blob decoder proceeds
// section-by-section instead of building a whole parse tree up front
// (blob/numeric_decoder.go: parseHeader, then parsePayloads, then
// parseIndexEntries).
package schema

import (
	"fmt"
	"reflect"

	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/mutf8"
	"github.com/oakwood-mc/nbtcore/tag"
	"github.com/oakwood-mc/nbtcore/value"
)

// Unmarshal parses a complete top-level NBT document (tag id, name,
// payload) into target, which must be a non-nil pointer.
//
// Unmarshal borrows data from data wherever the target shape allows
// zero-copy (schema.Borrowed fields; IntArrayData, LongArrayData and plain
// []int32/[]int64 array fields on big-endian hosts); []byte fields always
// receive an owned copy. The caller must keep data alive for as long as the
// decoded value is used.
func Unmarshal(data []byte, target any, opts ...Option) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errs.Custom("Unmarshal target must be a non-nil pointer")
	}

	r := tag.NewReader(data)

	id, err := r.ReadTagID()
	if err != nil {
		return err
	}
	if _, err := r.ReadName(); err != nil {
		return err
	}

	o := newOptions(opts)

	return decodeInto(r, id, rv.Elem(), o)
}

var valueType = reflect.TypeOf(value.Value{})

// decodeInto decodes one payload of kind id into dst (already Elem()'d, so
// addressable/settable).
func decodeInto(r *tag.Reader, id tag.ID, dst reflect.Value, o *opts) error {
	// A value.Value target always accepts any kind and preserves identity.
	if dst.Type() == valueType {
		v, err := value.DecodePayload(r, id)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(v))

		return nil
	}

	switch dst.Kind() {
	case reflect.Pointer:
		return decodeIntoPointer(r, id, dst, o)

	case reflect.Struct:
		if id != tag.Compound {
			return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected Compound, got %s", errs.ErrUnexpectedTag, id))
		}

		return decodeIntoStruct(r, dst, o)

	case reflect.Map:
		if id != tag.Compound {
			return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected Compound, got %s", errs.ErrUnexpectedTag, id))
		}

		return decodeIntoMap(r, dst, o)

	case reflect.Slice:
		return decodeIntoSlice(r, id, dst, o)

	case reflect.String:
		return decodeIntoString(r, id, dst)

	case reflect.Bool:
		return decodeIntoBool(r, id, dst)

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return decodeIntoInt(r, id, dst)

	case reflect.Float32:
		if id != tag.Float {
			return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected Float, got %s", errs.ErrUnexpectedTag, id))
		}
		v, err := r.ReadFloat()
		if err != nil {
			return err
		}
		dst.SetFloat(float64(v))

		return nil

	case reflect.Float64:
		if id != tag.Double {
			return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected Double, got %s", errs.ErrUnexpectedTag, id))
		}
		v, err := r.ReadDouble()
		if err != nil {
			return err
		}
		dst.SetFloat(v)

		return nil

	default:
		return errs.Custom(fmt.Sprintf("schema: unsupported target kind %s", dst.Kind()))
	}
}

func decodeIntoPointer(r *tag.Reader, id tag.ID, dst reflect.Value, o *opts) error {
	if dst.IsNil() {
		dst.Set(reflect.New(dst.Type().Elem()))
	}

	return decodeInto(r, id, dst.Elem(), o)
}

func decodeIntoBool(r *tag.Reader, id tag.ID, dst reflect.Value) error {
	if id != tag.Byte {
		return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected Byte for bool, got %s", errs.ErrUnexpectedTag, id))
	}
	v, err := r.ReadByte()
	if err != nil {
		return err
	}
	dst.SetBool(v != 0)

	return nil
}

func decodeIntoInt(r *tag.Reader, id tag.ID, dst reflect.Value) error {
	var n int64
	switch id {
	case tag.Byte:
		v, err := r.ReadByte()
		if err != nil {
			return err
		}
		n = int64(v)
	case tag.Short:
		v, err := r.ReadShort()
		if err != nil {
			return err
		}
		n = int64(v)
	case tag.Int:
		v, err := r.ReadInt()
		if err != nil {
			return err
		}
		n = int64(v)
	case tag.Long:
		v, err := r.ReadLong()
		if err != nil {
			return err
		}
		n = v
	default:
		return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected an integer tag, got %s", errs.ErrUnexpectedTag, id))
	}

	if dst.Kind() >= reflect.Uint8 && dst.Kind() <= reflect.Uint64 {
		if n < 0 || dst.OverflowUint(uint64(n)) {
			return errs.AtOffset(r.Pos(), errs.ErrOverflow)
		}
		dst.SetUint(uint64(n))

		return nil
	}

	if dst.OverflowInt(n) {
		return errs.AtOffset(r.Pos(), errs.ErrOverflow)
	}
	dst.SetInt(n)

	return nil
}

func decodeIntoString(r *tag.Reader, id tag.ID, dst reflect.Value) error {
	if id != tag.String {
		return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected String, got %s", errs.ErrUnexpectedTag, id))
	}

	if dst.Type() == reflect.TypeOf(Borrowed("")) {
		s, ok, err := r.BorrowASCIIString()
		if err != nil {
			return err
		}
		if !ok {
			return errs.AtOffset(r.Pos(), errs.ErrBorrowUnavailable)
		}
		dst.SetString(s)

		return nil
	}

	s, err := r.ReadString()
	if err != nil {
		return err
	}
	dst.SetString(s)

	return nil
}

func decodeIntoStruct(r *tag.Reader, dst reflect.Value, o *opts) error {
	info := getStructInfo(dst.Type())
	seen := make(map[int]bool, len(info.fields))

	var rest reflect.Value
	if info.restIndex >= 0 {
		rest = dst.Field(info.restIndex)
		if rest.IsNil() {
			rest.Set(reflect.MakeMap(rest.Type()))
		}
	}

	for {
		fieldID, err := r.ReadTagID()
		if err != nil {
			return err
		}
		if fieldID == tag.End {
			break
		}

		rawName, err := r.ReadRawName()
		if err != nil {
			return err
		}

		fi, ok := info.lookup(rawName)
		if !ok {
			if info.restIndex < 0 {
				if err := r.Skip(fieldID); err != nil {
					return err
				}

				continue
			}

			name, err := decodeMUtf8Copy(rawName)
			if err != nil {
				return err
			}
			v, err := value.DecodePayload(r, fieldID)
			if err != nil {
				return err
			}
			rest.SetMapIndex(reflect.ValueOf(name), reflect.ValueOf(v))

			continue
		}

		if seen[fi.index] {
			if o.rejectDuplicateFields {
				return errs.AtOffset(r.Pos(), fmt.Errorf("%w: %s", errs.ErrDuplicateField, fi.name))
			}
			// Last-value-wins: decode over the previous value.
		}
		seen[fi.index] = true

		if err := decodeInto(r, fieldID, dst.Field(fi.index), o); err != nil {
			return err
		}
	}

	for _, fi := range info.fields {
		if seen[fi.index] {
			continue
		}
		// Absence is only tolerated for optional fields: pointers, and maps
		// (left nil).
		if k := dst.Field(fi.index).Kind(); k != reflect.Pointer && k != reflect.Map {
			return fmt.Errorf("%w: %s", errs.ErrMissingField, fi.name)
		}
	}

	return nil
}

func decodeMUtf8Copy(raw []byte) (string, error) {
	if s, ok := mutf8.DecodeASCIIFast(raw); ok {
		return s, nil
	}

	return mutf8.Decode(raw)
}

func decodeIntoMap(r *tag.Reader, dst reflect.Value, o *opts) error {
	if dst.IsNil() {
		dst.Set(reflect.MakeMap(dst.Type()))
	}

	elemType := dst.Type().Elem()

	for {
		fieldID, err := r.ReadTagID()
		if err != nil {
			return err
		}
		if fieldID == tag.End {
			return nil
		}

		name, err := r.ReadName()
		if err != nil {
			return err
		}

		elem := reflect.New(elemType).Elem()
		if err := decodeInto(r, fieldID, elem, o); err != nil {
			return err
		}

		dst.SetMapIndex(reflect.ValueOf(name), elem)
	}
}

func decodeIntoSlice(r *tag.Reader, id tag.ID, dst reflect.Value, o *opts) error {
	t := dst.Type()

	// []byte accepts ByteArray directly (copied into an owned slice) or
	// List(Byte) element-by-element (spec §4.2: plain sequence accepts
	// either encoding but loses the distinction).
	if t.Elem().Kind() == reflect.Uint8 && t == reflect.TypeOf([]byte(nil)) {
		switch id {
		case tag.ByteArray:
			b, err := r.ReadByteArray()
			if err != nil {
				return err
			}
			owned := make([]byte, len(b))
			copy(owned, b)
			dst.Set(reflect.ValueOf(owned))

			return nil
		case tag.List:
			return decodeListInto(r, dst, o)
		default:
			return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected ByteArray or List, got %s", errs.ErrUnexpectedTag, id))
		}
	}

	if t == reflect.TypeOf(IntArrayData(nil)) {
		if id != tag.IntArray {
			return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected IntArray, got %s", errs.ErrUnexpectedTag, id))
		}
		v, _, err := r.BorrowIntArray()
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(IntArrayData(v)))

		return nil
	}

	if t == reflect.TypeOf(LongArrayData(nil)) {
		if id != tag.LongArray {
			return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected LongArray, got %s", errs.ErrUnexpectedTag, id))
		}
		v, _, err := r.BorrowLongArray()
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(LongArrayData(v)))

		return nil
	}

	// Plain []int32 / []int64 accept either the List or the dedicated
	// array tag transparently, taking the same zero-copy loan IntArrayData/
	// LongArrayData get whenever the host's endianness allows it.
	switch {
	case t.Elem().Kind() == reflect.Int32 && id == tag.IntArray:
		v, _, err := r.BorrowIntArray()
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(v))

		return nil

	case t.Elem().Kind() == reflect.Int64 && id == tag.LongArray:
		v, _, err := r.BorrowLongArray()
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(v))

		return nil

	case t.Elem().Kind() == reflect.Int8 && id == tag.ByteArray:
		b, err := r.ReadByteArray()
		if err != nil {
			return err
		}
		out := make([]int8, len(b))
		for i, x := range b {
			out[i] = int8(x)
		}
		dst.Set(reflect.ValueOf(out))

		return nil
	}

	if id != tag.List {
		return errs.AtOffset(r.Pos(), fmt.Errorf("%w: expected List, got %s", errs.ErrUnexpectedTag, id))
	}

	return decodeListInto(r, dst, o)
}

func decodeListInto(r *tag.Reader, dst reflect.Value, o *opts) error {
	elem, n, err := r.ReadListHeader()
	if err != nil {
		return err
	}

	out := reflect.MakeSlice(dst.Type(), n, n)
	for i := range n {
		if err := decodeInto(r, elem, out.Index(i), o); err != nil {
			return err
		}
	}
	dst.Set(out)

	return nil
}

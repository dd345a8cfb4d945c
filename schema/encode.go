package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/tag"
	"github.com/oakwood-mc/nbtcore/value"
)

// Marshal encodes v, which must be a struct, a map, or a pointer to either,
// as a complete top-level NBT document under the given root name.
func Marshal(name string, v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errs.Custom("Marshal: nil pointer")
		}
		rv = rv.Elem()
	}

	w := tag.NewWriter()

	id, err := kindOf(rv.Type())
	if err != nil {
		return nil, err
	}

	w.WriteTagID(id)
	if err := w.WriteName(name); err != nil {
		return nil, err
	}
	if err := encodeFrom(w, rv); err != nil {
		return nil, err
	}

	return w.Finish(), nil
}

// kindOf reports which wire tag a Go value of type t encodes as.
func kindOf(t reflect.Type) (tag.ID, error) {
	if t == valueType {
		return tag.End, nil // resolved dynamically in encodeFrom
	}

	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return tag.Compound, nil
	case reflect.String:
		return tag.String, nil
	case reflect.Bool:
		return tag.Byte, nil
	case reflect.Int8, reflect.Uint8:
		return tag.Byte, nil
	case reflect.Int16, reflect.Uint16:
		return tag.Short, nil
	case reflect.Int32, reflect.Uint32, reflect.Int, reflect.Uint:
		return tag.Int, nil
	case reflect.Int64, reflect.Uint64:
		return tag.Long, nil
	case reflect.Float32:
		return tag.Float, nil
	case reflect.Float64:
		return tag.Double, nil
	case reflect.Slice:
		switch {
		case t == reflect.TypeOf(IntArrayData(nil)):
			return tag.IntArray, nil
		case t == reflect.TypeOf(LongArrayData(nil)):
			return tag.LongArray, nil
		case t == reflect.TypeOf([]byte(nil)):
			return tag.ByteArray, nil
		case t.Elem().Kind() == reflect.Int8:
			// []int8 encodes in ByteArray wire format, same as []byte
			// (spec §4.2: a plain integer sequence accepts either
			// encoding; encodeSlice below writes this shape).
			return tag.ByteArray, nil
		default:
			return tag.List, nil
		}
	default:
		return 0, errs.Custom(fmt.Sprintf("schema: unsupported type %s", t))
	}
}

func encodeFrom(w *tag.Writer, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errs.Custom("schema: cannot encode nil pointer field")
		}
		rv = rv.Elem()
	}

	if rv.Type() == valueType {
		v := rv.Interface().(value.Value)

		return value.EncodePayload(w, v)
	}

	switch rv.Kind() {
	case reflect.Struct:
		return encodeStruct(w, rv)

	case reflect.Map:
		return encodeMap(w, rv)

	case reflect.Slice:
		return encodeSlice(w, rv)

	case reflect.String:
		if b, ok := rv.Interface().(Borrowed); ok {
			return w.WriteString(string(b))
		}

		return w.WriteString(rv.String())

	case reflect.Bool:
		if rv.Bool() {
			w.WriteByte(1)
		} else {
			w.WriteByte(0)
		}

		return nil

	case reflect.Int8:
		w.WriteByte(int8(rv.Int()))
		return nil
	case reflect.Int16:
		w.WriteShort(int16(rv.Int()))
		return nil
	case reflect.Int32, reflect.Int:
		w.WriteInt(int32(rv.Int()))
		return nil
	case reflect.Int64:
		w.WriteLong(rv.Int())
		return nil
	case reflect.Uint8:
		w.WriteByte(int8(rv.Uint()))
		return nil
	case reflect.Uint16:
		w.WriteShort(int16(rv.Uint()))
		return nil
	case reflect.Uint32, reflect.Uint:
		w.WriteInt(int32(rv.Uint()))
		return nil
	case reflect.Uint64:
		w.WriteLong(int64(rv.Uint()))
		return nil
	case reflect.Float32:
		w.WriteFloat(float32(rv.Float()))
		return nil
	case reflect.Float64:
		w.WriteDouble(rv.Float())
		return nil

	default:
		return errs.Custom(fmt.Sprintf("schema: unsupported kind %s", rv.Kind()))
	}
}

func encodeStruct(w *tag.Writer, rv reflect.Value) error {
	info := getStructInfo(rv.Type())

	for _, fi := range info.fields {
		fv := rv.Field(fi.index)

		// Nil optional pointer fields are omitted entirely (spec §4.2).
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}

		id, err := fieldKind(fv)
		if err != nil {
			return err
		}

		w.WriteTagID(id)
		if err := w.WriteName(fi.name); err != nil {
			return err
		}
		if err := encodeFrom(w, fv); err != nil {
			return err
		}
	}

	if info.restIndex >= 0 {
		rest := rv.Field(info.restIndex)
		iter := rest.MapRange()
		names := make([]string, 0, rest.Len())
		values := make(map[string]value.Value, rest.Len())
		for iter.Next() {
			name := iter.Key().String()
			names = append(names, name)
			values[name] = iter.Value().Interface().(value.Value)
		}
		sort.Strings(names)

		for _, name := range names {
			v := values[name]
			w.WriteTagID(v.Kind())
			if err := w.WriteName(name); err != nil {
				return err
			}
			if err := value.EncodePayload(w, v); err != nil {
				return err
			}
		}
	}

	w.WriteEnd()

	return nil
}

func fieldKind(rv reflect.Value) (tag.ID, error) {
	t := rv.Type()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return kindOf(t)
}

func encodeMap(w *tag.Writer, rv reflect.Value) error {
	names := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	keyed := make(map[string]reflect.Value, rv.Len())
	for iter.Next() {
		name := iter.Key().String()
		names = append(names, name)
		keyed[name] = iter.Value()
	}
	sort.Strings(names)

	for _, name := range names {
		fv := keyed[name]
		if fv.Type() == valueType {
			v := fv.Interface().(value.Value)
			w.WriteTagID(v.Kind())
			if err := w.WriteName(name); err != nil {
				return err
			}
			if err := value.EncodePayload(w, v); err != nil {
				return err
			}

			continue
		}

		id, err := kindOf(fv.Type())
		if err != nil {
			return err
		}
		w.WriteTagID(id)
		if err := w.WriteName(name); err != nil {
			return err
		}
		if err := encodeFrom(w, fv); err != nil {
			return err
		}
	}

	w.WriteEnd()

	return nil
}

func encodeSlice(w *tag.Writer, rv reflect.Value) error {
	t := rv.Type()

	switch {
	case t == reflect.TypeOf(IntArrayData(nil)):
		w.WriteIntArray([]int32(rv.Interface().(IntArrayData)))
		return nil

	case t == reflect.TypeOf(LongArrayData(nil)):
		w.WriteLongArray([]int64(rv.Interface().(LongArrayData)))
		return nil

	case t == reflect.TypeOf([]byte(nil)):
		w.WriteByteArray(rv.Bytes())
		return nil

	case t.Elem().Kind() == reflect.Int8:
		b := make([]byte, rv.Len())
		for i := range b {
			b[i] = byte(rv.Index(i).Int())
		}
		w.WriteByteArray(b)

		return nil
	}

	elemType := t.Elem()
	for elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}

	elemID, err := kindOf(elemType)
	if err != nil {
		return err
	}
	if elemType == valueType && rv.Len() > 0 {
		elemID = rv.Index(0).Interface().(value.Value).Kind()
	}

	w.WriteListHeader(elemID, rv.Len())
	for i := range rv.Len() {
		if err := encodeFrom(w, rv.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

package value

import "github.com/oakwood-mc/nbtcore/tag"

// Encode serializes v as a complete top-level NBT document under the given
// root name, the inverse of Decode.
func Encode(name string, v Value) ([]byte, error) {
	w := tag.NewWriter()

	w.WriteTagID(v.kind)
	if err := w.WriteName(name); err != nil {
		return nil, err
	}
	if err := EncodePayload(w, v); err != nil {
		return nil, err
	}

	return w.Finish(), nil
}

func EncodePayload(w *tag.Writer, v Value) error {
	switch v.kind {
	case tag.End:
		return nil

	case tag.Byte:
		w.WriteByte(int8(v.num))
		return nil

	case tag.Short:
		w.WriteShort(int16(v.num))
		return nil

	case tag.Int:
		w.WriteInt(int32(v.num))
		return nil

	case tag.Long:
		w.WriteLong(v.num)
		return nil

	case tag.Float:
		w.WriteFloat(float32(v.f))
		return nil

	case tag.Double:
		w.WriteDouble(v.f)
		return nil

	case tag.String:
		return w.WriteString(v.str)

	case tag.ByteArray:
		w.WriteByteArray(v.bytes)
		return nil

	case tag.IntArray:
		w.WriteIntArray(v.ints)
		return nil

	case tag.LongArray:
		w.WriteLongArray(v.longs)
		return nil

	case tag.List:
		w.WriteListHeader(v.listElem, len(v.list))
		for _, item := range v.list {
			if err := EncodePayload(w, item); err != nil {
				return err
			}
		}

		return nil

	case tag.Compound:
		var encErr error
		v.compound.Range(func(name string, field Value) bool {
			w.WriteTagID(field.kind)
			if err := w.WriteName(name); err != nil {
				encErr = err
				return false
			}
			if err := EncodePayload(w, field); err != nil {
				encErr = err
				return false
			}

			return true
		})
		if encErr != nil {
			return encErr
		}
		w.WriteEnd()

		return nil

	default:
		return nil
	}
}

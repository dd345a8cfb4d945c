package value

import (
	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/tag"
)

// Decode parses a complete top-level NBT document: a tag id, a name (even
// if empty), and that tag's payload (spec §3). It returns the root name and
// the decoded Value.
func Decode(data []byte) (name string, v Value, err error) {
	r := tag.NewReader(data)

	id, err := r.ReadTagID()
	if err != nil {
		return "", Value{}, err
	}

	name, err = r.ReadName()
	if err != nil {
		return "", Value{}, err
	}

	v, err = DecodePayload(r, id)
	if err != nil {
		return "", Value{}, err
	}

	return name, v, nil
}

// DecodePayload decodes one payload of the given kind, recursing into
// nested Lists and Compounds.
func DecodePayload(r *tag.Reader, id tag.ID) (Value, error) {
	switch id {
	case tag.End:
		return Value{}, nil

	case tag.Byte:
		n, err := r.ReadByte()
		return Byte(n), err

	case tag.Short:
		n, err := r.ReadShort()
		return Short(n), err

	case tag.Int:
		n, err := r.ReadInt()
		return Int(n), err

	case tag.Long:
		n, err := r.ReadLong()
		return Long(n), err

	case tag.Float:
		n, err := r.ReadFloat()
		return Float(n), err

	case tag.Double:
		n, err := r.ReadDouble()
		return Double(n), err

	case tag.String:
		s, err := r.ReadString()
		return Str(s), err

	case tag.ByteArray:
		b, err := r.ReadByteArray()
		if err != nil {
			return Value{}, err
		}
		// Own a copy: Value is always owned (spec §3, "Ownership & lifecycle").
		owned := make([]byte, len(b))
		copy(owned, b)

		return ByteArray(owned), nil

	case tag.IntArray:
		ints, err := r.ReadIntArray()
		return IntArray(ints), err

	case tag.LongArray:
		longs, err := r.ReadLongArray()
		return LongArray(longs), err

	case tag.List:
		elem, n, err := r.ReadListHeader()
		if err != nil {
			return Value{}, err
		}
		items := make([]Value, 0, n)
		for range n {
			item, err := DecodePayload(r, elem)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}

		return List(elem, items...), nil

	case tag.Compound:
		c := NewCompound()
		for {
			fieldID, err := r.ReadTagID()
			if err != nil {
				return Value{}, err
			}
			if fieldID == tag.End {
				return CompoundValue(c), nil
			}

			fieldName, err := r.ReadName()
			if err != nil {
				return Value{}, err
			}

			fieldVal, err := DecodePayload(r, fieldID)
			if err != nil {
				return Value{}, err
			}

			c.Set(fieldName, fieldVal)
		}

	default:
		return Value{}, errs.AtOffset(r.Pos(), errs.ErrInvalidTag)
	}
}

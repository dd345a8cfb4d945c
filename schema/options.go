package schema

import "github.com/oakwood-mc/nbtcore/internal/options"

// opts controls schema-deserializer behavior for cases the wire format
// leaves up to the caller. It currently holds only the duplicate-field
// policy; unknown-field capture is chosen per struct by declaring an
// `nbt:",rest"` field, not through an option.
type opts struct {
	rejectDuplicateFields bool
}

// Option configures Unmarshal, following the teacher's functional-options
// convention (internal/options, blob.WithLittleEndian()).
type Option = options.Option[*opts]

// WithRejectDuplicateFields turns a repeated compound field name into
// errs.ErrDuplicateField instead of the default last-value-wins behavior.
func WithRejectDuplicateFields() Option {
	return options.NoError(func(o *opts) { o.rejectDuplicateFields = true })
}

func newOptions(os []Option) *opts {
	o := &opts{}
	_ = options.Apply(o, os...)

	return o
}

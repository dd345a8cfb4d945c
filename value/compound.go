package value

import "github.com/oakwood-mc/nbtcore/tag"

// Compound is an insertion-ordered mapping from field name to Value. The
// ordering is preserved solely for faithful re-serialization (spec §4.4);
// equality between two Compounds ignores it.
type Compound struct {
	keys []string
	vals map[string]Value
}

// NewCompound returns an empty Compound ready for Set calls.
func NewCompound() *Compound {
	return &Compound{vals: make(map[string]Value)}
}

// Set inserts or replaces the value for name, preserving the original
// insertion position on replace. Returns the receiver so calls can chain.
func (c *Compound) Set(name string, v Value) *Compound {
	if _, exists := c.vals[name]; !exists {
		c.keys = append(c.keys, name)
	}
	c.vals[name] = v

	return c
}

// Get returns the value stored under name, if any.
func (c *Compound) Get(name string) (Value, bool) {
	v, ok := c.vals[name]
	return v, ok
}

// Delete removes name from the compound, if present.
func (c *Compound) Delete(name string) {
	if _, exists := c.vals[name]; !exists {
		return
	}
	delete(c.vals, name)
	for i, k := range c.keys {
		if k == name {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields in the compound.
func (c *Compound) Len() int { return len(c.keys) }

// Keys returns the field names in insertion order. The returned slice must
// not be modified by the caller.
func (c *Compound) Keys() []string { return c.keys }

// Range calls f for each field in insertion order, stopping early if f
// returns false.
func (c *Compound) Range(f func(name string, v Value) bool) {
	for _, k := range c.keys {
		if !f(k, c.vals[k]) {
			return
		}
	}
}

// CompoundValue wraps c as a Value of kind Compound.
func CompoundValue(c *Compound) Value {
	return Value{kind: tag.Compound, compound: c}
}

package schema

import (
	"testing"

	"github.com/oakwood-mc/nbtcore/tag"
	"github.com/stretchr/testify/require"
)

// buildDuplicateFieldDoc hand-assembles a Compound with two "N" fields,
// since value.CompoundOf (keyed by name) can't represent an in-stream
// duplicate.
func buildDuplicateFieldDoc(t *testing.T) []byte {
	t.Helper()

	w := tag.NewWriter()
	w.WriteTagID(tag.Compound)
	require.NoError(t, w.WriteName(""))

	w.WriteTagID(tag.Int)
	require.NoError(t, w.WriteName("N"))
	w.WriteInt(1)

	w.WriteTagID(tag.Int)
	require.NoError(t, w.WriteName("N"))
	w.WriteInt(2)

	w.WriteEnd()

	return w.Finish()
}

package checks

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeL2(t *testing.T) {
	a := NewRoot(big.NewInt(100), 0, 2)
	b := NewRoot(big.NewInt(200), 0, 2)
	c := NewRoot(big.NewInt(300), 1, 4)
	d := NewRoot(big.NewInt(400), 0, 1)

	l1a, err := Composite(a, b, 2)
	require.NoError(t, err)
	l1b, err := Composite(c, d, 4)
	require.NoError(t, err)

	final, err := ComposeL2(l1a, l1b)
	require.NoError(t, err)

	t.Run("final entity shape", func(t *testing.T) {
		assert.Equal(t, uint8(2), final.Stored.DivisorIndex)
		assert.Equal(t, 20, final.ChecksCount())
		assert.Equal(t, SentinelID, final.Stored.Composites[1])
		assert.Equal(t, SentinelID, final.Composite)
		assert.Zero(t, final.Seed.Cmp(a.Seed))
	})

	t.Run("render map covers exactly the needed pointers", func(t *testing.T) {
		vm := BuildL2RenderMap(l1a, l1b, b, d)
		assert.Len(t, vm, 3)
		assert.Same(t, l1b, vm[SentinelID])
		assert.Same(t, b, vm[l1a.Composite])
		assert.Same(t, d, vm[l1b.Composite])
	})

	t.Run("final entity resolves without error", func(t *testing.T) {
		vm := BuildL2RenderMap(l1a, l1b, b, d)
		indexes, err := ColorIndexes(2, final, vm)
		require.NoError(t, err)
		assert.Len(t, indexes, 20)
	})

	t.Run("resolution fails without the sentinel entry", func(t *testing.T) {
		vm := BuildL2RenderMap(l1a, l1b, b, d)
		delete(vm, SentinelID)
		_, err := ColorIndexes(2, final, vm)
		var missing *MissingPointerError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, SentinelID, missing.Pointer)
	})
}

package checks

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposite(t *testing.T) {
	t.Run("depth increases by one", func(t *testing.T) {
		keeper := NewRoot(big.NewInt(100), 0, 2)
		burner := NewRoot(big.NewInt(200), 1, 4)
		c, err := Composite(keeper, burner, 5)
		require.NoError(t, err)
		assert.Equal(t, uint8(1), c.Stored.DivisorIndex)
	})

	t.Run("records the burner pointer", func(t *testing.T) {
		keeper := NewRoot(big.NewInt(100), 0, 2)
		burner := NewRoot(big.NewInt(200), 1, 4)
		c, err := Composite(keeper, burner, 5)
		require.NoError(t, err)
		assert.Equal(t, TokenID(5), c.Stored.Composites[0])
		assert.Equal(t, TokenID(5), c.Composite)
	})

	t.Run("scenario: seeds 100 and 200 with pointer 5", func(t *testing.T) {
		keeper := NewRoot(big.NewInt(100), 0, 2)
		burner := NewRoot(big.NewInt(200), 1, 4)
		c, err := Composite(keeper, burner, 5)
		require.NoError(t, err)
		assert.Equal(t, uint8(1), c.Stored.DivisorIndex)
		assert.Equal(t, 40, c.ChecksCount())
		assert.Equal(t, TokenID(5), c.Composite)
	})

	t.Run("inherits keeper identity", func(t *testing.T) {
		keeper := NewRoot(big.NewInt(777), 1, 4)
		burner := NewRoot(big.NewInt(888), 0, 1)
		c, err := Composite(keeper, burner, 9)
		require.NoError(t, err)
		assert.Zero(t, c.Seed.Cmp(keeper.Seed))
		assert.Equal(t, keeper.Direction, c.Direction)
		assert.Equal(t, keeper.Speed, c.Speed)
		assert.Equal(t, keeper.IsRevealed, c.IsRevealed)
		assert.False(t, c.IsRoot)
	})

	t.Run("keeper is not mutated", func(t *testing.T) {
		keeper := NewRoot(big.NewInt(100), 0, 2)
		burner := NewRoot(big.NewInt(200), 1, 4)
		before := keeper.Stored
		_, err := Composite(keeper, burner, 5)
		require.NoError(t, err)
		assert.Equal(t, before, keeper.Stored)

		// The same keeper value must feed a second independent tuple.
		other := NewRoot(big.NewInt(300), 0, 1)
		c2, err := Composite(keeper, other, 7)
		require.NoError(t, err)
		assert.Equal(t, TokenID(7), c2.Stored.Composites[0])
	})

	t.Run("earlier slots survive later steps", func(t *testing.T) {
		a := NewRoot(big.NewInt(100), 0, 2)
		b := NewRoot(big.NewInt(200), 0, 2)
		l1, err := Composite(a, b, 11)
		require.NoError(t, err)
		l2, err := Composite(l1, l1, 22)
		require.NoError(t, err)
		assert.Equal(t, TokenID(11), l2.Stored.Composites[0])
		assert.Equal(t, TokenID(22), l2.Stored.Composites[1])
		assert.Equal(t, l1.Stored.ColorBands[0], l2.Stored.ColorBands[0])
	})

	t.Run("checks count follows the divisor sequence", func(t *testing.T) {
		vm := VirtualMap{}
		gen := &pointerGen{next: 1000}
		want := []int{40, 20, 10, 5, 4, 1, 0}
		c := buildComposite(t, 0, newSeedGen(), gen, vm)
		for step := 0; step < 7; step++ {
			burner := buildComposite(t, step, newSeedGen(), gen, vm)
			next, err := Composite(c, burner, gen.take())
			require.NoError(t, err)
			assert.Equal(t, want[step], next.ChecksCount())
			assert.Equal(t, next.Stored.DivisorIndex < 6, next.HasManyChecks())
			c = next
		}
	})

	t.Run("terminal keeper is rejected", func(t *testing.T) {
		c := NewRoot(big.NewInt(42), 0, 2)
		c.Stored.DivisorIndex = 7
		_, err := Composite(c, NewRoot(big.NewInt(43), 0, 2), 1)
		assert.ErrorIs(t, err, ErrInvalidDepth)
	})
}

func TestMergeGenes(t *testing.T) {
	t.Run("bounds over sampled pairs", func(t *testing.T) {
		for i := int64(0); i < 100; i++ {
			keeper := NewRoot(big.NewInt(i*31+1), 0, 2)
			burner := NewRoot(big.NewInt(i*37+2), 0, 2)
			gradient, band := mergeGenes(keeper, burner)
			assert.LessOrEqual(t, gradient, uint8(6))
			assert.LessOrEqual(t, band, uint8(6))
		}
	})

	t.Run("band merge is the bitwise floor average", func(t *testing.T) {
		for a := uint8(0); a <= 6; a++ {
			for b := uint8(0); b <= 6; b++ {
				got := (a >> 1) + (b >> 1) + (a & b & 1)
				assert.Equal(t, (a+b)/2, got, "a=%d b=%d", a, b)
			}
		}
	})
}

func TestMinGt0(t *testing.T) {
	assert.Equal(t, uint8(3), minGt0(0, 3))
	assert.Equal(t, uint8(3), minGt0(3, 0))
	assert.Equal(t, uint8(0), minGt0(0, 0))
	assert.Equal(t, uint8(2), minGt0(2, 5))
	assert.Equal(t, uint8(2), minGt0(5, 2))
}

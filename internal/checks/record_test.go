package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDecode(t *testing.T) {
	t.Run("decimal seed", func(t *testing.T) {
		r := Record{TokenID: 1, Seed: "123456789", Revealed: true, Direction: 1, Speed: 2, Day: 40}
		c, err := r.Decode()
		require.NoError(t, err)
		assert.Equal(t, "123456789", c.Seed.String())
		assert.True(t, c.IsRoot)
		assert.True(t, c.IsRevealed)
		assert.Equal(t, uint16(40), c.Stored.Day)
		assert.Equal(t, 80, c.ChecksCount())
	})

	t.Run("hex seed", func(t *testing.T) {
		r := Record{TokenID: 2, Seed: "0xDEADBEEF", Speed: 1}
		c, err := r.Decode()
		require.NoError(t, err)
		assert.Equal(t, "3735928559", c.Seed.String())
	})

	t.Run("composited record resolves stored genes", func(t *testing.T) {
		r := Record{
			TokenID:      3,
			Seed:         "100",
			Composites:   []TokenID{5},
			ColorBands:   []uint8{2},
			Gradients:    []uint8{3},
			DivisorIndex: 1,
			Revealed:     true,
			Speed:        2,
		}
		c, err := r.Decode()
		require.NoError(t, err)
		assert.Equal(t, TokenID(5), c.Composite)
		assert.Equal(t, uint8(2), c.ColorBand)
		assert.Equal(t, uint8(3), c.Gradient)
		assert.False(t, c.IsRoot)
		assert.Equal(t, 40, c.ChecksCount())
	})

	t.Run("malformed records are rejected individually", func(t *testing.T) {
		cases := map[string]Record{
			"empty seed":        {TokenID: 1, Seed: ""},
			"non-numeric seed":  {TokenID: 1, Seed: "not-a-number"},
			"negative seed":     {TokenID: 1, Seed: "-5"},
			"seed over uint256": {TokenID: 1, Seed: "0x10000000000000000000000000000000000000000000000000000000000000000"},
			"divisor too deep":  {TokenID: 1, Seed: "1", DivisorIndex: 8},
			"band out of range": {TokenID: 1, Seed: "1", ColorBands: []uint8{7}},
			"gradient too big":  {TokenID: 1, Seed: "1", Gradients: []uint8{9}},
			"too many slots":    {TokenID: 1, Seed: "1", Composites: []TokenID{1, 2, 3, 4, 5, 6, 7}},
		}
		for name, r := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := r.Decode()
				assert.ErrorIs(t, err, ErrMalformedRecord)
			})
		}
	})

	t.Run("max uint256 seed is accepted", func(t *testing.T) {
		r := Record{TokenID: 1, Seed: "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"}
		_, err := r.Decode()
		assert.NoError(t, err)
	})
}

package checks

import (
	"fmt"
	"math/big"
	"strings"
)

// Record is the raw entity row as external collaborators supply it: a
// chain read or a stored row, with the seed still in string form. Decode
// turns it into a Check; a failure rejects that single record and must
// not abort the caller's batch.
type Record struct {
	TokenID      TokenID
	Seed         string // decimal, or hex with 0x prefix
	Composites   []TokenID
	ColorBands   []uint8
	Gradients    []uint8
	DivisorIndex uint8
	Epoch        uint32
	Day          uint16
	Revealed     bool
	Direction    uint8
	Speed        uint8
}

var maxSeed = new(big.Int).Lsh(big.NewInt(1), 256)

// Decode validates the record and builds the immutable Check it
// describes, resolving the current-depth gene caches.
func (r *Record) Decode() (*Check, error) {
	seed, err := parseSeed(r.Seed)
	if err != nil {
		return nil, fmt.Errorf("token %d: %w: %v", r.TokenID, ErrMalformedRecord, err)
	}
	if r.DivisorIndex > 7 {
		return nil, fmt.Errorf("token %d: %w: divisor index %d out of range", r.TokenID, ErrMalformedRecord, r.DivisorIndex)
	}
	if len(r.Composites) > 6 || len(r.ColorBands) > 5 || len(r.Gradients) > 5 {
		return nil, fmt.Errorf("token %d: %w: stored state arrays too long", r.TokenID, ErrMalformedRecord)
	}
	for _, v := range r.ColorBands {
		if v > 6 {
			return nil, fmt.Errorf("token %d: %w: color band %d out of range", r.TokenID, ErrMalformedRecord, v)
		}
	}
	for _, v := range r.Gradients {
		if v > 6 {
			return nil, fmt.Errorf("token %d: %w: gradient %d out of range", r.TokenID, ErrMalformedRecord, v)
		}
	}

	c := &Check{
		Seed:       seed,
		IsRevealed: r.Revealed,
		IsRoot:     r.DivisorIndex == 0,
		Direction:  r.Direction,
		Speed:      r.Speed,
	}
	copy(c.Stored.Composites[:], r.Composites)
	copy(c.Stored.ColorBands[:], r.ColorBands)
	copy(c.Stored.Gradients[:], r.Gradients)
	c.Stored.DivisorIndex = r.DivisorIndex
	c.Stored.Epoch = r.Epoch
	c.Stored.Day = r.Day

	depth := int(r.DivisorIndex)
	if depth > 0 && depth-1 < len(c.Stored.Composites) {
		c.Composite = c.Stored.Composites[depth-1]
	}
	c.ColorBand = ResolveColorBandIndex(c, depth)
	c.Gradient = ResolveGradientIndex(c, depth)
	return c, nil
}

func parseSeed(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty seed")
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	seed, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("seed %q is not numeric", s)
	}
	if seed.Sign() < 0 || seed.Cmp(maxSeed) >= 0 {
		return nil, fmt.Errorf("seed out of uint256 range")
	}
	return seed, nil
}

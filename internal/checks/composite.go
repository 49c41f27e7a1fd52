package checks

import (
	"fmt"
	"math/big"
)

// Composite combines a keeper and a burner into a new check one depth
// deeper. The keeper's lineage continues: the result inherits its seed
// and animation parameters and records burnerPointer in the stored slot
// for the keeper's depth. The keeper itself is never mutated; its stored
// arrays are copied, so the same root can feed many independent tuples.
func Composite(keeper, burner *Check, burnerPointer TokenID) (*Check, error) {
	depth := int(keeper.Stored.DivisorIndex)
	if depth > 6 {
		return nil, fmt.Errorf("composite at depth %d: %w", depth, ErrInvalidDepth)
	}
	newDepth := depth + 1

	stored := keeper.Stored // arrays are values, this is the copy
	if depth < 6 {
		stored.Composites[depth] = burnerPointer
	}
	if depth < 5 {
		gradient, band := mergeGenes(keeper, burner)
		stored.Gradients[depth] = gradient
		stored.ColorBands[depth] = band
	}
	stored.DivisorIndex = uint8(newDepth)

	c := &Check{
		Seed:       keeper.Seed,
		Stored:     stored,
		IsRevealed: keeper.IsRevealed,
		Direction:  keeper.Direction,
		Speed:      keeper.Speed,
	}
	if newDepth-1 < len(stored.Composites) {
		c.Composite = stored.Composites[newDepth-1]
	}
	c.ColorBand = ResolveColorBandIndex(c, newDepth)
	c.Gradient = ResolveGradientIndex(c, newDepth)
	return c, nil
}

// mergeGenes derives the composited gradient and color band from the two
// parents. A single keccak randomizer over both seeds drives the choice:
// in roughly one case out of five (r > 80) the randomizer's parity picks
// either the smallest non-zero or the largest of the two gradients,
// otherwise the plain minimum wins. The color band is the bitwise floor
// average of the parents.
func mergeGenes(keeper, burner *Check) (gradient, band uint8) {
	randomizer := pairDigest(keeper.Seed, burner.Seed)
	r := new(big.Int).Mod(randomizer, big.NewInt(100)).Int64()

	kg, bg := keeper.Gradient, burner.Gradient
	if r > 80 {
		if randomizer.Bit(0) == 0 {
			gradient = minGt0(kg, bg)
		} else {
			gradient = maxOf(kg, bg)
		}
	} else {
		gradient = minOf(kg, bg)
	}

	a, b := keeper.ColorBand, burner.ColorBand
	band = (a >> 1) + (b >> 1) + (a & b & 1)
	return gradient, band
}

// minGt0 returns the smaller of two values, treating zero as absent: if
// either operand is zero the other wins. The on-chain contract returns
// zero whenever one side is zero; the engine keeps the non-zero gradient
// instead and is the system of record for that behavior.
func minGt0(a, b uint8) uint8 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	return minOf(a, b)
}

func minOf(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// Package checks implements the deterministic composite engine for the
// on-chain checks collection: gene derivation, composite steps, recursive
// color-index resolution and attribute projection. Every function here is
// pure over its inputs so callers may run the pipeline concurrently across
// independent entity tuples without coordination.
package checks

import "math/big"

// TokenID identifies a check, real or virtual. Real token ids stay well
// below SentinelID, so the sentinel never collides with a minted token.
type TokenID uint32

// SentinelID is the reserved virtual pointer used by two-level composition.
const SentinelID TokenID = 65535

// DivisorCounts maps a divisor index (recursion depth 0-7) to the number
// of checks the entity displays at that depth.
var DivisorCounts = [8]int{80, 40, 20, 10, 5, 4, 1, 0}

// bandSizes maps a color-band index to the width of the palette band the
// entity may draw colors from.
var bandSizes = [7]int{80, 40, 20, 10, 5, 4, 1}

// gradientSteps maps a gradient index to the step value that drives the
// arithmetic color progression. Index 0 means no gradient.
var gradientSteps = [7]int{0, 1, 2, 5, 8, 9, 10}

// StoredState is the per-depth bookkeeping a check accumulates across
// composite steps. Slots below DivisorIndex are immutable once written.
type StoredState struct {
	Composites   [6]TokenID // burner pointer recorded at each depth
	ColorBands   [5]uint8   // merged color band recorded at each depth
	Gradients    [5]uint8   // merged gradient recorded at each depth
	DivisorIndex uint8      // current recursion depth, 0-7
	Epoch        uint32     // provenance, opaque to the engine
	Day          uint16     // mint day, opaque to the engine
}

// Check is the engine's central value type. Instances are immutable once
// produced: Composite copies the keeper's stored state rather than
// patching it, so a root may feed any number of independent composites.
type Check struct {
	Seed       *big.Int // 256-bit random source, fixed at creation
	Stored     StoredState
	IsRevealed bool
	IsRoot     bool

	// Composite is the pointer of the burner consumed to produce this
	// check (0 for checks that were never composited).
	Composite TokenID

	// ColorBand and Gradient cache the gene resolution at the current
	// depth.
	ColorBand uint8
	Gradient  uint8

	// Animation parameters, inherited verbatim from the keeper through
	// every composite step.
	Direction uint8
	Speed     uint8
}

// ChecksCount returns the number of checks displayed at the current depth.
func (c *Check) ChecksCount() int {
	return DivisorCounts[c.Stored.DivisorIndex]
}

// HasManyChecks reports whether the check still renders more than one
// glyph, i.e. it has not reached the single-check depths.
func (c *Check) HasManyChecks() bool {
	return c.Stored.DivisorIndex < 6
}

// NewRoot builds a depth-0 revealed check from a raw seed. Roots normally
// arrive as decoded store records; this constructor exists for previews
// and tests that start from bare seeds.
func NewRoot(seed *big.Int, direction, speed uint8) *Check {
	c := &Check{
		Seed:       new(big.Int).Set(seed),
		IsRevealed: true,
		IsRoot:     true,
		Direction:  direction,
		Speed:      speed,
	}
	c.ColorBand = ResolveColorBandIndex(c, 0)
	c.Gradient = ResolveGradientIndex(c, 0)
	return c
}

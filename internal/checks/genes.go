package checks

// Gene derivation: a check's color band and gradient at a given depth.
// Depth 0 derives fresh values from the seed; depths 1-5 read the values
// recorded at composite time; depth 6 and beyond are fixed terminals.
// Both functions are pure over (seed, stored state).

// ResolveColorBandIndex returns the color-band index (0-6) for the check
// at the given depth.
func ResolveColorBandIndex(c *Check, depth int) uint8 {
	if depth >= 6 {
		return 6
	}
	if depth >= 1 {
		return c.Stored.ColorBands[depth-1]
	}
	n := DrawSalted(c.Seed, "band", 120)
	switch {
	case n > 80:
		return 0
	case n > 40:
		return 1
	case n > 20:
		return 2
	case n > 10:
		return 3
	case n > 4:
		return 4
	case n > 1:
		return 5
	default:
		return 6
	}
}

// ResolveGradientIndex returns the gradient index (0-6) for the check at
// the given depth. Roughly one in five seeds carries a gradient.
func ResolveGradientIndex(c *Check, depth int) uint8 {
	if depth >= 6 {
		return 0
	}
	if depth >= 1 {
		return c.Stored.Gradients[depth-1]
	}
	n := DrawSalted(c.Seed, "gradient", 100)
	if n < 20 {
		return uint8(1 + n%6)
	}
	return 0
}

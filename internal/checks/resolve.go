package checks

import "fmt"

// VirtualMap resolves composite pointers to the checks they refer to.
// Callers build one per top-level request; it mixes real token ids with
// the reserved sentinel and is never persisted.
type VirtualMap map[TokenID]*Check

// ColorIndexes produces the ordered palette indices (0-79) used to render
// the check at the given depth. Depths above zero recursively pull colors
// from two virtual parents: the check itself one depth up and the burner
// recorded at that depth, dereferenced through vm. The result is fully
// determined by (depth, seed, stored state, vm contents); repeated calls
// are identical.
//
// A pointer missing from vm surfaces as *MissingPointerError.
func ColorIndexes(depth int, c *Check, vm VirtualMap) ([]int, error) {
	if depth < 0 || depth > 7 {
		return nil, fmt.Errorf("resolve at depth %d: %w", depth, ErrInvalidDepth)
	}
	count := DivisorCounts[depth]
	if count == 0 {
		return []int{}, nil
	}

	bandSize := bandSizes[ResolveColorBandIndex(c, depth)]
	gradient := gradientSteps[ResolveGradientIndex(c, depth)]

	// At depth 0 the first check picks freely from the whole palette;
	// deeper levels pick a branch out of twice the parent count.
	maxChoice := 80
	if depth > 0 {
		maxChoice = DivisorCounts[depth-1] * 2
	}

	indexes := make([]int, count)
	indexes[0] = Draw(c.Seed, maxChoice)

	if c.HasManyChecks() {
		switch {
		case gradient > 0:
			for i := 1; i < count; i++ {
				indexes[i] = (indexes[0] + gradientOffset(i, gradient, bandSize, count)) % 80
			}
		case depth == 0:
			for i := 1; i < count; i++ {
				indexes[i] = (indexes[0] + drawOffset(c.Seed, i, bandSize)) % 80
			}
		default:
			for i := 1; i < count; i++ {
				indexes[i] = drawOffset(c.Seed, i, maxChoice)
			}
		}
	}

	if depth == 0 {
		return indexes, nil
	}

	parentIndexes, err := ColorIndexes(depth-1, c, vm)
	if err != nil {
		return nil, err
	}
	pointer := c.Stored.Composites[depth-1]
	composited, ok := vm[pointer]
	if !ok {
		return nil, &MissingPointerError{Pointer: pointer}
	}
	compositedIndexes, err := ColorIndexes(depth-1, composited, vm)
	if err != nil {
		return nil, err
	}

	// Remap the first entry onto one of the two parents: values below the
	// parent count land in the check's own lineage, the rest in the
	// burner's.
	parentCount := DivisorCounts[depth-1]
	indexes[0] = pickBranch(indexes[0], parentCount, parentIndexes, compositedIndexes)

	if gradient == 0 {
		for i := 1; i < count; i++ {
			indexes[i] = pickBranch(indexes[i], parentCount, parentIndexes, compositedIndexes)
		}
	} else {
		// A gradient overrides the per-entry remap: the progression is
		// recomputed from the remapped first entry.
		for i := 1; i < count; i++ {
			indexes[i] = (indexes[0] + gradientOffset(i, gradient, bandSize, count)) % 80
		}
	}
	return indexes, nil
}

func gradientOffset(i, gradient, bandSize, count int) int {
	return (i * gradient * bandSize / count) % bandSize
}

func pickBranch(index, parentCount int, parent, composited []int) int {
	branch := index % parentCount
	if index < parentCount {
		return parent[branch]
	}
	return composited[branch]
}

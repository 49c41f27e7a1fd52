package checks

// Two-level composition: four roots fold into two L1 composites, which
// fold into one final check. The second fold records the reserved
// sentinel pointer, since the right-hand L1 composite only ever exists
// in memory and has no real token id.

// ComposeL2 merges two already-composited checks into the final
// depth-(keeper+1) check, recording SentinelID as the burner pointer.
func ComposeL2(l1a, l1b *Check) (*Check, error) {
	return Composite(l1a, l1b, SentinelID)
}

// BuildL2RenderMap returns the virtual map covering exactly the three
// indirections color resolution dereferences for an L2 result: the
// sentinel to the burned L1 composite, and each L1 composite's own
// pointer to the root it burned.
func BuildL2RenderMap(l1a, l1b, burner1, burner2 *Check) VirtualMap {
	return VirtualMap{
		SentinelID:    l1b,
		l1a.Composite: burner1,
		l1b.Composite: burner2,
	}
}

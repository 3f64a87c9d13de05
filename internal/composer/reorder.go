package composer

// SurvivingIndices resolves the oracle's optimal section order against the
// original section count. Out-of-range indices are skipped silently; an empty
// or absent order falls back to identity; duplicate indices are preserved as
// given, so a repeated index repeats the section.
func SurvivingIndices(sectionCount int, order []int) []int {
	if len(order) == 0 {
		return identity(sectionCount)
	}
	out := make([]int, 0, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= sectionCount {
			continue
		}
		out = append(out, idx)
	}
	return out
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

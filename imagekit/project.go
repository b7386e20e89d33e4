package imagekit

import "github.com/obamify/pixelmorph/mathx"

// ApplyAssignments projects a permutation back into an image: position t's
// output color is palette[assignments[t]], the color originally found at
// source position assignments[t]. Row-major order, target-indexed.
func ApplyAssignments(palette []mathx.RGB, assignments []int) []mathx.RGB {
	out := make([]mathx.RGB, len(assignments))
	for t, s := range assignments {
		out[t] = palette[s]
	}
	return out
}

// Invert returns the inverse permutation: inverse[s] = t such that
// assignments[t] == s. Used by the round-trip test
// (applyAssignments(applyAssignments(pi, pi^-1)) == identity) and by
// anything that needs to go from source index back to target index.
func Invert(assignments []int) []int {
	inverse := make([]int, len(assignments))
	for t, s := range assignments {
		inverse[s] = t
	}
	return inverse
}

// Package mathx holds the small numeric kernels shared by the assignment
// solvers, the particle simulation, and the rasterizer: the cost heuristic,
// the seeded PRNG, and clamping.
package mathx

// Point is a 2d coordinate in the S x S pixel frame. Used everywhere a
// position is passed between the optimizer, the simulation, and the
// rasterizer so none of them need to agree on a richer vector type.
type Point struct {
	X, Y float64
}

// RGB is an 8-bit color triple, ordered (R, G, B).
type RGB [3]uint8

// Heuristic scores how well color argb at source position ap fits target
// position bp with color brgb, weighted by wColor (the target's per-pixel
// weight, 0..255) and wSpatial (proximity importance, 1..50).
//
// The spatial term is squared a second time after weighting; this is
// intentional, not a bug, it makes spatial mismatch dominate the cost at
// coarse scales.
func Heuristic(ap, bp Point, argb, brgb RGB, wColor, wSpatial float64) float64 {
	dx := ap.X - bp.X
	dy := ap.Y - bp.Y
	spatial := dx*dx + dy*dy

	var color float64
	for k := 0; k < 3; k++ {
		d := float64(argb[k]) - float64(brgb[k])
		color += d * d
	}

	weightedSpatial := spatial * wSpatial
	return color*wColor + weightedSpatial*weightedSpatial
}

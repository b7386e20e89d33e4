// Package particle defines the per-pixel physics state (Cell) and the
// force functions the simulation applies to it each frame.
package particle

import "github.com/obamify/pixelmorph/mathx"

// Tunables shared by every cell; see spec §4.D for their origin.
const (
	PersonalSpace   = 0.95
	MaxVelocity     = 6.0
	Damping         = 0.97
	AlignmentFactor = 0.8
)

// Cell is one source pixel's particle state. Src/Dst are set once when the
// cell is created or reassigned via Simulation.SetAssignments; everything
// else mutates every frame.
type Cell struct {
	Src mathx.Point // center of the source grid cell, offset by 0.5px
	Dst mathx.Point // center of the destination grid cell, offset by 0.5px

	Vx, Vy   float64
	Ax, Ay   float64 // accumulator, reset to 0 by Integrate once added to velocity
	Age      int     // frames since this cell last had its position reset
	DstForce float64 // 0..~1, strength of the pull toward Dst
	StrokeID int     // 0 means "not part of any stroke"
}

// New builds a cell whose position starts at src and travels toward dst.
func New(src, dst mathx.Point) Cell {
	return Cell{Src: src, Dst: dst}
}

// CellCenter returns the pixel-grid center for linear index p in an S-wide
// grid, offset by half a pixel so cells sit in the middle of their cell
// rather than at its corner.
func CellCenter(p, s int) mathx.Point {
	return mathx.Point{
		X: float64(p%s) + 0.5,
		Y: float64(p/s) + 0.5,
	}
}

// factorCurve is the nonlinear ramp applied to elapsed*dstForce: cubic
// growth, capped so a long-idle cell doesn't accelerate without bound.
func factorCurve(x float64) float64 {
	cubed := x * x * x
	if cubed > 1000 {
		return 1000
	}
	return cubed
}

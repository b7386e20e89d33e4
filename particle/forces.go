package particle

import (
	"math"

	"github.com/obamify/pixelmorph/mathx"
)

// ApplyDestinationForce pulls a cell toward its destination. The pull is
// zero-age-gentle (f=0.1) until DstForce is set above zero, at which point
// it ramps cubically with elapsed time, and scales with the square of the
// remaining distance, so cells that have traveled far or been waiting long
// accelerate hard into place.
func ApplyDestinationForce(c *Cell, pos mathx.Point, s int) {
	elapsed := float64(c.Age) / 60.0

	f := 0.1
	if c.DstForce != 0 {
		f = factorCurve(elapsed * c.DstForce)
	}

	dx := c.Dst.X - pos.X
	dy := c.Dst.Y - pos.Y
	d := math.Hypot(dx, dy)

	c.Ax += dx * d * f / float64(s)
	c.Ay += dy * d * f / float64(s)
}

// ApplyNeighborForce repels c from a nearby cell at otherPos when they are
// closer than personal space allows, and returns the weight used for
// velocity alignment (0 when the cells are not close enough to interact).
// Cells that land exactly on top of one another get a small jitter instead
// of a divide-by-zero.
func ApplyNeighborForce(c *Cell, pos, otherPos mathx.Point, pixelSize float64, rng *mathx.PRNG) (weight float64) {
	personal := pixelSize * PersonalSpace
	dx := otherPos.X - pos.X
	dy := otherPos.Y - pos.Y
	r := math.Hypot(dx, dy)

	switch {
	case r > 0 && r < personal:
		w := (1 / r) * (personal - r) / personal
		c.Ax -= dx * w
		c.Ay -= dy * w
		return w
	case r == 0:
		c.Ax += rng.RangeFloat(-0.01, 0.01)
		c.Ay += rng.RangeFloat(-0.01, 0.01)
		return 0
	default:
		return 0
	}
}

// ApplyWallForce pushes c away from the S x S arena's edges once it comes
// within half a personal-space radius of a wall, on both axes.
func ApplyWallForce(c *Cell, pos mathx.Point, s int, pixelSize float64) {
	half := pixelSize * PersonalSpace * 0.5
	side := float64(s)

	if pos.X < half {
		c.Ax += (half - pos.X) / half
	} else if pos.X > side-half {
		c.Ax -= (pos.X - (side - half)) / half
	}

	if pos.Y < half {
		c.Ay += (half - pos.Y) / half
	} else if pos.Y > side-half {
		c.Ay -= (pos.Y - (side - half)) / half
	}
}

// ApplyStrokeForce adds cohesion toward a neighbor sharing the same
// non-zero stroke id, scaled by the neighbor's alignment weight (from
// ApplyNeighborForce) and AlignmentFactor.
func ApplyStrokeForce(c *Cell, pos, otherPos mathx.Point, otherStrokeID int, neighborWeight float64) {
	if c.StrokeID == 0 || c.StrokeID != otherStrokeID {
		return
	}
	c.Ax += (otherPos.X - pos.X) * neighborWeight * AlignmentFactor
	c.Ay += (otherPos.Y - pos.Y) * neighborWeight * AlignmentFactor
}

// Integrate applies the accumulated acceleration to velocity, damps it,
// clamps it to MaxVelocity, advances pos, resets the accumulator, and
// increments Age. Called exactly once per cell per simulation step.
func Integrate(c *Cell, pos *mathx.Point) {
	c.Vx += c.Ax
	c.Vy += c.Ay
	c.Ax, c.Ay = 0, 0

	c.Vx *= Damping
	c.Vy *= Damping

	c.Vx, c.Vy = mathx.ClampMagnitude(c.Vx, c.Vy, MaxVelocity)

	pos.X += c.Vx
	pos.Y += c.Vy
	c.Age++
}

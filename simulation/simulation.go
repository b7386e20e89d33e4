// Package simulation steps the particle system forward one frame at a
// time: build a spatial grid, apply forces, integrate. See spec §4.E.
package simulation

import (
	"math"

	"github.com/obamify/pixelmorph/mathx"
	"github.com/obamify/pixelmorph/particle"
)

// Simulation owns the cell array and tracks whether playback currently
// runs source->destination or the reverse. Positions are owned by the
// caller (the orchestrator) and passed in by reference to each Step so the
// rasterizer can share them without a copy.
type Simulation struct {
	Cells    []particle.Cell
	Reversed bool
	S        int
}

// New builds a Simulation over cells in an S x S arena.
func New(cells []particle.Cell, s int) *Simulation {
	return &Simulation{Cells: cells, S: s}
}

// Step advances every cell by one frame: grid build, force accumulation,
// integration. positions must have the same length as sim.Cells and is
// mutated in place.
func (sim *Simulation) Step(positions []mathx.Point) {
	n := len(sim.Cells)
	if n == 0 {
		return
	}
	g := int(math.Round(math.Sqrt(float64(n))))
	pixelSize := float64(sim.S) / float64(g)

	grid := buildGrid(positions, g, pixelSize)
	rng := mathx.NewPRNG("simulation-jitter")

	for i := range sim.Cells {
		particle.ApplyWallForce(&sim.Cells[i], positions[i], sim.S, pixelSize)
		particle.ApplyDestinationForce(&sim.Cells[i], positions[i], sim.S)
	}

	for i := range sim.Cells {
		sim.applyNeighborhood(i, positions, grid, g, pixelSize, rng)
	}

	for i := range sim.Cells {
		particle.Integrate(&sim.Cells[i], &positions[i])
	}
}

// applyNeighborhood scans cell i's 3x3 bucket neighborhood, accumulating
// neighbor repulsion, stroke cohesion, and the running sums needed for
// velocity alignment.
func (sim *Simulation) applyNeighborhood(
	i int,
	positions []mathx.Point,
	grid [][]int,
	g int,
	pixelSize float64,
	rng *mathx.PRNG,
) {
	bx := bucketCoord(positions[i].X, pixelSize, g)
	by := bucketCoord(positions[i].Y, pixelSize, g)

	var sumWVx, sumWVy, sumW float64

	for dy := -1; dy <= 1; dy++ {
		ny := by + dy
		if ny < 0 || ny >= g {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := bx + dx
			if nx < 0 || nx >= g {
				continue
			}
			for _, j := range grid[ny*g+nx] {
				if j == i {
					continue
				}
				w := particle.ApplyNeighborForce(&sim.Cells[i], positions[i], positions[j], pixelSize, rng)
				particle.ApplyStrokeForce(&sim.Cells[i], positions[i], positions[j], sim.Cells[j].StrokeID, w)

				if w > 0 {
					sumWVx += w * sim.Cells[j].Vx
					sumWVy += w * sim.Cells[j].Vy
					sumW += w
				}
			}
		}
	}

	if sumW > 0 {
		sim.Cells[i].Ax += (sumWVx/sumW - sim.Cells[i].Vx) * particle.AlignmentFactor
		sim.Cells[i].Ay += (sumWVy/sumW - sim.Cells[i].Vy) * particle.AlignmentFactor
	}
}

func bucketCoord(v, pixelSize float64, g int) int {
	c := int(v / pixelSize)
	if c < 0 {
		return 0
	}
	if c >= g {
		return g - 1
	}
	return c
}

// buildGrid buckets cell indices by position into a g*g slice of slices.
func buildGrid(positions []mathx.Point, g int, pixelSize float64) [][]int {
	grid := make([][]int, g*g)
	for i, pos := range positions {
		bx := bucketCoord(pos.X, pixelSize, g)
		by := bucketCoord(pos.Y, pixelSize, g)
		idx := by*g + bx
		grid[idx] = append(grid[idx], i)
	}
	return grid
}

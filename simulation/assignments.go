package simulation

import "github.com/obamify/pixelmorph/particle"

// SetAssignments installs a new permutation. For each target position t,
// newPerm[t] = srcIdx names the source index now destined for t; the cell
// at array index srcIdx is replaced with a fresh (Src, Dst) pair, but its
// Age, StrokeID, and DstForce are preserved from the cell previously at
// that index.
//
// This mirrors the documented source behavior even though it is ambiguous
// whether history should be preserved by source index or by destination
// index (see DESIGN.md); implemented here as source-keyed, per spec §4.E.
func (sim *Simulation) SetAssignments(newPerm []int, s int) {
	for t, srcIdx := range newPerm {
		prev := sim.Cells[srcIdx]
		sim.Cells[srcIdx] = particle.Cell{
			Src:      particle.CellCenter(srcIdx, s),
			Dst:      particle.CellCenter(t, s),
			Age:      prev.Age,
			StrokeID: prev.StrokeID,
			DstForce: prev.DstForce,
		}
	}
	sim.S = s
}

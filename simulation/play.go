package simulation

import "github.com/obamify/pixelmorph/mathx"

// PreparePlay resets positions for playback. If playback already runs in
// the requested direction, it restarts from the start (positions go back
// to Src, ages reset). Otherwise it flips direction: positions snap to
// Dst, every cell's Src/Dst swap, ages reset, and Reversed toggles.
//
// Two successive calls, (positions, r) then (positions, !r), starting from
// the same initial state, restore every cell's original (Src, Dst) — this
// is the reversibility invariant in spec §8.
func (sim *Simulation) PreparePlay(positions []mathx.Point, wantReverse bool) {
	if sim.Reversed == wantReverse {
		for i := range sim.Cells {
			positions[i] = sim.Cells[i].Src
			sim.Cells[i].Age = 0
		}
		return
	}

	for i := range sim.Cells {
		positions[i] = sim.Cells[i].Dst
		sim.Cells[i].Src, sim.Cells[i].Dst = sim.Cells[i].Dst, sim.Cells[i].Src
		sim.Cells[i].Age = 0
	}
	sim.Reversed = !sim.Reversed
}

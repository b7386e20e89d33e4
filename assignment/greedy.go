package assignment

import (
	"context"
	"fmt"
	"math"

	"github.com/obamify/pixelmorph/mathx"
)

// Greedy is the deterministic "Optimal" placeholder: for each target
// position in row-major order, pick the cheapest unassigned source pixel.
// O(N^2), practical only up to roughly S=256.
//
// Unlike the source this is modeled on, Greedy does not append identity
// fillers when fewer than N sources were consumed (spec §9 flags that as a
// bug in the original and recommends asserting instead); it returns an
// error if the consumed set ever falls short of N, which normal runs never
// trigger since every source is visited exactly once across N targets.
func Greedy(
	ctx context.Context,
	src, dst []mathx.RGB,
	weights []float64,
	wSpatial int,
	progress chan<- Message,
) ([]int, error) {
	n := len(src)
	s := int(math.Sqrt(float64(n)))

	if err := validateInputs(src, dst, weights, s); err != nil {
		emitError(progress, err)
		return nil, err
	}

	consumed := make([]bool, n)
	assignments := make([]int, n)

	for t := 0; t < n; t++ {
		if t%100 == 0 {
			if ctx.Err() != nil {
				emitCancelled(progress)
				return nil, ctx.Err()
			}
			if progress != nil {
				progress <- Message{Kind: KindProgress, Progress: float64(t) / float64(n)}
			}
		}

		tp := pointAt(t, s)
		best := -1
		bestCost := math.Inf(1)
		for sIdx := 0; sIdx < n; sIdx++ {
			if consumed[sIdx] {
				continue
			}
			sp := pointAt(sIdx, s)
			cost := mathx.Heuristic(sp, tp, src[sIdx], dst[t], weights[t], float64(wSpatial))
			if cost < bestCost {
				bestCost = cost
				best = sIdx
			}
		}

		if best < 0 {
			err := fmt.Errorf("assignment: greedy ran out of unassigned sources at target %d", t)
			emitError(progress, err)
			return nil, err
		}

		consumed[best] = true
		assignments[t] = best
	}

	numConsumed := 0
	for _, c := range consumed {
		if c {
			numConsumed++
		}
	}
	if numConsumed != n {
		err := fmt.Errorf("assignment: greedy consumed %d of %d sources, refusing to fill with identity", numConsumed, n)
		emitError(progress, err)
		return nil, err
	}

	emitDone(progress, src, s, assignments)
	return assignments, nil
}

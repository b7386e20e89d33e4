package drawing

import (
	"math"
	"sync/atomic"

	"github.com/obamify/pixelmorph/assignment"
	"github.com/obamify/pixelmorph/mathx"
)

// strokeReward is added to a trial's heuristic whenever the candidate
// placement lands next to a pixel from the same stroke, strongly favoring
// contiguous stroke regions over a locally "better" color match.
const strokeReward = -1e10

// maxDist computes round((S/4) * 0.99^(age/30)): the search radius shrinks
// from S/4 as a position's age grows.
func maxDist(age, s int) int {
	return int(math.Round((float64(s) / 4) * math.Pow(0.99, float64(age)/30)))
}

// Solver continuously improves a permutation while the user paints.
type Solver struct {
	src, dst []mathx.RGB
	weights  []float64
	wSpatial int
	s        int
	state    *State

	owner []int     // owner[p] = source index currently at position p
	h     []float64 // cached heuristic for owner[p] placed at p

	rng *mathx.PRNG
}

// NewSolver seeds a drawing solver from an initial permutation (typically
// whatever the orchestrator last produced via the Genetic or Greedy
// solver). weights may be nil, in which case every position gets a weight
// of 255, as in assignment.Run.
func NewSolver(
	src, dst []mathx.RGB,
	weights []float64,
	wSpatial int,
	seed string,
	initialAssignments []int,
	state *State,
) *Solver {
	n := len(src)
	s := int(math.Sqrt(float64(n)))

	if weights == nil {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 255
		}
	}

	owner := append([]int(nil), initialAssignments...)
	h := make([]float64, n)
	for p, src0 := range owner {
		pt := pointAt(p, s)
		h[p] = mathx.Heuristic(pt, pt, src[src0], dst[p], weights[p], float64(wSpatial))
	}

	return &Solver{
		src: src, dst: dst, weights: weights, wSpatial: wSpatial, s: s,
		state: state,
		owner: owner, h: h,
		rng: mathx.NewPRNG(seed),
	}
}

func pointAt(p, s int) mathx.Point {
	return mathx.Point{X: float64(p % s), Y: float64(p / s)}
}

// Run executes generations of localized re-optimization until currentID no
// longer matches myID, or ctx is... there is deliberately no context here:
// cancellation is purely by id comparison, per spec §4.G/§9 (the host
// increments currentID to supersede a running solver; the solver checks at
// its yield point, which is every generation).
func (s *Solver) Run(currentID *int32, myID int32, updates chan<- assignment.Message) {
	const trialsPerGeneration = 128 // scaled by N below
	n := len(s.owner)

	for {
		strokeIDs, ages := s.state.snapshot()

		trials := trialsPerGeneration * n
		for i := 0; i < trials; i++ {
			s.trial(strokeIDs, ages)
		}

		s.state.Tick()

		if atomic.LoadInt32(currentID) != myID {
			emitCancelled(updates)
			return
		}

		emitUpdate(updates, s.owner)
	}
}

// trial runs one candidate swap between a random position a and a nearby
// position b, subject to the asymmetric max-distance policy and the
// stroke-cohesion bonus.
func (s *Solver) trial(strokeIDs, ages []int) {
	n := len(s.owner)
	a := s.rng.Range(0, n)
	ap := pointAt(a, s.s)

	maxD := float64(maxDist(ages[a], s.s))
	bx := int(mathx.Clamp(ap.X+s.rng.RangeFloat(-maxD, maxD), 0, float64(s.s-1)))
	by := int(mathx.Clamp(ap.Y+s.rng.RangeFloat(-maxD, maxD), 0, float64(s.s-1)))
	b := by*s.s + bx

	if a == b {
		return
	}
	bp := pointAt(b, s.s)

	// Asymmetry: maxDist is evaluated using b's age, so a freshly-edited b
	// can reach out and pull in a stable a, but a stable b cannot wander
	// to reach a freshly-edited a.
	maxDB := float64(maxDist(ages[b], s.s))
	if math.Abs(bp.X-ap.X) > maxDB || math.Abs(bp.Y-ap.Y) > maxDB {
		return
	}

	hPrimeA := mathx.Heuristic(bp, ap, s.src[s.owner[a]], s.dst[b], s.weights[b], float64(s.wSpatial))
	hPrimeB := mathx.Heuristic(ap, bp, s.src[s.owner[b]], s.dst[a], s.weights[a], float64(s.wSpatial))

	if hasMatchingStrokeNeighbor(b, strokeIDs[a], s.s, strokeIDs) {
		hPrimeA += strokeReward
	}
	if hasMatchingStrokeNeighbor(a, strokeIDs[b], s.s, strokeIDs) {
		hPrimeB += strokeReward
	}

	if (s.h[a]-hPrimeB)+(s.h[b]-hPrimeA) > 0 {
		s.owner[a], s.owner[b] = s.owner[b], s.owner[a]
		s.h[a], s.h[b] = hPrimeB, hPrimeA
	}
}

// hasMatchingStrokeNeighbor reports whether any of position p's 4
// grid-neighbors shares wantStroke, which is never satisfied for the
// "no stroke" id (0).
func hasMatchingStrokeNeighbor(p, wantStroke, s int, strokeIDs []int) bool {
	if wantStroke == 0 {
		return false
	}
	x, y := p%s, p/s
	neighbors := [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
	for _, nb := range neighbors {
		if nb[0] < 0 || nb[0] >= s || nb[1] < 0 || nb[1] >= s {
			continue
		}
		if strokeIDs[nb[1]*s+nb[0]] == wantStroke {
			return true
		}
	}
	return false
}

// Assignments returns the solver's current permutation. Safe to call
// between Run generations (e.g. from the message emitted on each
// KindUpdateAssignments); Run itself never calls it concurrently with a
// caller's read since Go slices aren't torn, only potentially stale.
func (s *Solver) Assignments() []int {
	return append([]int(nil), s.owner...)
}

func emitUpdate(updates chan<- assignment.Message, owner []int) {
	if updates == nil {
		return
	}
	updates <- assignment.Message{
		Kind:        assignment.KindUpdateAssignments,
		Assignments: append([]int(nil), owner...),
	}
}

func emitCancelled(updates chan<- assignment.Message) {
	if updates == nil {
		return
	}
	updates <- assignment.Message{Kind: assignment.KindCancelled}
}

package assignment

import (
	"context"
	"math"

	"github.com/obamify/pixelmorph/imagekit"
	"github.com/obamify/pixelmorph/mathx"
)

// owner tracks, per target position, which source palette index currently
// fills it and the cached heuristic cost of that placement. Keeping the
// cost cached avoids recomputing h[a]/h[b] from scratch on every trial.
type owner struct {
	source int
	h      float64
}

// Genetic runs the stochastic hill-climbing swap search described in spec
// §4.C. It mutates nothing passed in; src, dst, and weights are read-only.
// progress, if non-nil, receives a KindProgress and a KindPreview message
// once per generation, and is closed by the caller, never by Genetic.
//
// Genetic blocks until termination (maxDist < 4 and fewer than 10 swaps
// were made in the last generation) or until ctx is cancelled, in which
// case it returns ctx.Err() after emitting a KindCancelled message.
func Genetic(
	ctx context.Context,
	src, dst []mathx.RGB,
	weights []float64,
	wSpatial int,
	seed string,
	progress chan<- Message,
) ([]int, error) {
	n := len(src)
	s := int(math.Sqrt(float64(n)))

	if err := validateInputs(src, dst, weights, s); err != nil {
		emitError(progress, err)
		return nil, err
	}

	rng := mathx.NewPRNG(seed)
	owners := make([]owner, n)
	for p := range owners {
		pt := pointAt(p, s)
		owners[p] = owner{
			source: p,
			h:      mathx.Heuristic(pt, pt, src[p], dst[p], weights[p], float64(wSpatial)),
		}
	}

	maxDist := float64(s)
	const checkEvery = 4096

	for {
		if ctx.Err() != nil {
			emitCancelled(progress)
			return nil, ctx.Err()
		}

		swapsMade := 0
		trials := 128 * n
		for i := 0; i < trials; i++ {
			if i%checkEvery == 0 && ctx.Err() != nil {
				emitCancelled(progress)
				return nil, ctx.Err()
			}

			a := rng.Range(0, n)
			ap := pointAt(a, s)

			bx := int(mathx.Clamp(ap.X+rng.RangeFloat(-maxDist, maxDist), 0, float64(s-1)))
			by := int(mathx.Clamp(ap.Y+rng.RangeFloat(-maxDist, maxDist), 0, float64(s-1)))
			b := by*s + bx
			bp := pointAt(b, s)

			hPrimeA := mathx.Heuristic(bp, ap, src[owners[a].source], dst[b], weights[b], float64(wSpatial))
			hPrimeB := mathx.Heuristic(ap, bp, src[owners[b].source], dst[a], weights[a], float64(wSpatial))

			if (owners[a].h-hPrimeB)+(owners[b].h-hPrimeA) > 0 {
				owners[a].source, owners[b].source = owners[b].source, owners[a].source
				owners[a].h, owners[b].h = hPrimeB, hPrimeA
				swapsMade++
			}
		}

		maxDist = math.Max(2, math.Floor(maxDist*0.99))
		emitGeneration(progress, owners, src, s, maxDist)

		if maxDist < 4 && swapsMade < 10 {
			break
		}
	}

	assignments := make([]int, n)
	for p, o := range owners {
		assignments[p] = o.source
	}

	emitDone(progress, src, s, assignments)
	return assignments, nil
}

func pointAt(p, s int) mathx.Point {
	return mathx.Point{X: float64(p % s), Y: float64(p / s)}
}

func currentAssignments(owners []owner) []int {
	assignments := make([]int, len(owners))
	for p, o := range owners {
		assignments[p] = o.source
	}
	return assignments
}

func emitGeneration(progress chan<- Message, owners []owner, src []mathx.RGB, s int, maxDist float64) {
	if progress == nil {
		return
	}
	progress <- Message{Kind: KindProgress, Progress: 1 - maxDist/float64(s)}

	assignments := currentAssignments(owners)
	progress <- Message{
		Kind:          KindPreview,
		PreviewWidth:  s,
		PreviewHeight: s,
		PreviewPixels: imagekit.ApplyAssignments(src, assignments),
	}
}

// emitDone sends the final permutation. Source is the cropped source image
// the caller passed in, unmodified: per spec, the cropped source is sent,
// not the original, so downstream consumers stay in the S x S frame.
func emitDone(progress chan<- Message, src []mathx.RGB, s int, assignments []int) {
	if progress == nil {
		return
	}
	progress <- Message{
		Kind: KindDone,
		Done: &Result{
			Source:      src,
			Width:       s,
			Height:      s,
			Assignments: assignments,
		},
	}
}

func emitError(progress chan<- Message, err error) {
	if progress == nil {
		return
	}
	progress <- Message{Kind: KindError, Err: err.Error()}
}

func emitCancelled(progress chan<- Message) {
	if progress == nil {
		return
	}
	progress <- Message{Kind: KindCancelled}
}

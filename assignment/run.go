package assignment

import (
	"context"
	"fmt"

	"github.com/obamify/pixelmorph/imagekit"
	"github.com/obamify/pixelmorph/mathx"
)

// Run prepares source and target palettes per settings (cropping/scaling
// each to Sidelen) and dispatches to the selected solver. target may be
// nil, in which case the source is its own target (the self-transform
// case); weights may be nil, in which case every target pixel gets a
// weight of 255, matching spec's "for custom targets weights are uniformly
// 255" and extending the same default to the no-custom-target case, since
// nothing else in the protocol specifies where a non-uniform weight map
// would come from absent a custom target.
func Run(
	ctx context.Context,
	settings GenerationSettings,
	source []mathx.RGB, sourceW, sourceH int,
	target []mathx.RGB, targetW, targetH int,
	weights []float64,
	progress chan<- Message,
) ([]int, error) {
	settings = settings.WithDefaults()
	s := settings.Sidelen

	croppedSrc := imagekit.CropAndScale(source, sourceW, sourceH, s,
		settings.SourceCropScale.Scale, settings.SourceCropScale.X, settings.SourceCropScale.Y)

	var croppedDst []mathx.RGB
	if target == nil {
		croppedDst = croppedSrc
	} else {
		croppedDst = imagekit.CropAndScale(target, targetW, targetH, s,
			settings.TargetCropScale.Scale, settings.TargetCropScale.X, settings.TargetCropScale.Y)
	}

	if weights == nil {
		weights = make([]float64, s*s)
		for i := range weights {
			weights[i] = 255
		}
	}

	switch settings.Algorithm {
	case AlgorithmOptimal:
		return Greedy(ctx, croppedSrc, croppedDst, weights, settings.ProximityImportance, progress)
	case AlgorithmGenetic, "":
		return Genetic(ctx, croppedSrc, croppedDst, weights, settings.ProximityImportance, settings.ID, progress)
	default:
		err := fmt.Errorf("assignment: unknown algorithm %q", settings.Algorithm)
		emitError(progress, err)
		return nil, err
	}
}

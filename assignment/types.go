// Package assignment implements the two pixel-permutation solvers: the
// randomized local-search Genetic solver and the deterministic Greedy
// matcher. Both consume the same inputs and emit the same tagged-union
// Message stream, so the orchestrator can swap one for the other without
// caring which produced a given permutation.
package assignment

import "github.com/obamify/pixelmorph/mathx"

// Kind tags a Message's payload. Modeled as a plain enum with an
// exhaustive switch at the consumer, not an interface hierarchy: there is
// no open-world extension point here, just a fixed handful of variants.
type Kind int

const (
	KindProgress Kind = iota
	KindPreview
	KindUpdateAssignments
	KindDone
	KindError
	KindCancelled
)

// Message is the worker->UI protocol response (see spec §6). Exactly one
// field group is populated per Kind; callers switch on Kind rather than
// probing fields for nil-ness.
type Message struct {
	Kind Kind

	// KindProgress
	Progress float64

	// KindPreview
	PreviewWidth, PreviewHeight int
	PreviewPixels               []mathx.RGB

	// KindUpdateAssignments (drawing solver only)
	Assignments []int

	// KindDone
	Done *Result

	// KindError
	Err string
}

// Result is the payload of a KindDone message: the cropped source (not the
// original) and the resulting permutation, so downstream consumers work
// entirely in the S x S frame.
type Result struct {
	Source      []mathx.RGB
	Width       int
	Height      int
	Assignments []int
}

// Algorithm selects which solver Run invokes.
type Algorithm string

const (
	AlgorithmGenetic Algorithm = "genetic"
	AlgorithmOptimal Algorithm = "optimal"
)

// GenerationSettings carries every tunable named in spec §6's configuration
// table. ID is the only required field: it seeds the PRNG and is the sole
// determinant of determinism for a given (source, target) pair.
type GenerationSettings struct {
	ID                  string    `mapstructure:"id" yaml:"id"`
	Name                string    `mapstructure:"name" yaml:"name"`
	ProximityImportance int       `mapstructure:"proximityImportance" yaml:"proximityImportance"`
	Algorithm           Algorithm `mapstructure:"algorithm" yaml:"algorithm"`
	Sidelen             int       `mapstructure:"sidelen" yaml:"sidelen"`
	SourceCropScale     CropScale `mapstructure:"sourceCropScale" yaml:"sourceCropScale"`
	TargetCropScale     CropScale `mapstructure:"targetCropScale" yaml:"targetCropScale"`
}

// CropScale bundles the three crop-and-scale parameters from spec §4.B.
type CropScale struct {
	Scale float64 `mapstructure:"scale" yaml:"scale"`
	X     float64 `mapstructure:"x" yaml:"x"`
	Y     float64 `mapstructure:"y" yaml:"y"`
}

// DefaultCropScale is the identity crop: no zoom, centered.
var DefaultCropScale = CropScale{Scale: 1, X: 0, Y: 0}

// WithDefaults fills zero-valued optional fields with spec-documented
// defaults. ID is left untouched; callers must supply it.
func (s GenerationSettings) WithDefaults() GenerationSettings {
	if s.ProximityImportance == 0 {
		s.ProximityImportance = 13
	}
	if s.Algorithm == "" {
		s.Algorithm = AlgorithmGenetic
	}
	if s.Sidelen == 0 {
		s.Sidelen = 256
	}
	if s.SourceCropScale == (CropScale{}) {
		s.SourceCropScale = DefaultCropScale
	}
	if s.TargetCropScale == (CropScale{}) {
		s.TargetCropScale = DefaultCropScale
	}
	return s
}

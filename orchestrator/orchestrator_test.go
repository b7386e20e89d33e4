package orchestrator

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/obamify/pixelmorph/mathx"
)

func identityPreset(s int) Preset {
	n := s * s
	src := make([]mathx.RGB, n)
	assignments := make([]int, n)
	for i := range src {
		src[i] = mathx.RGB{uint8(i % 256), uint8((i * 2) % 256), uint8((i * 5) % 256)}
		assignments[i] = i
	}
	return Preset{Name: "identity", S: s, Source: src, Assignments: assignments}
}

func TestLoadPresetAndStep(t *testing.T) {
	Convey("Given an orchestrator with a loaded identity preset", t, func() {
		o := New(nil)
		o.LoadPreset(identityPreset(8))

		Convey("Step and Rasterize run without panicking and return a full-size image", func() {
			o.Step()
			img := o.Rasterize()
			So(img, ShouldNotBeNil)
			So(img.Bounds().Dx(), ShouldEqual, 8)
			So(img.Bounds().Dy(), ShouldEqual, 8)
		})
	})
}

func TestSetPlayDirectionIsReversible(t *testing.T) {
	Convey("Given a loaded preset with a non-identity permutation", t, func() {
		o := New(nil)
		p := identityPreset(4)
		for i := range p.Assignments {
			p.Assignments[i] = (i + 1) % len(p.Assignments)
		}
		o.LoadPreset(p)

		originalSrc := append([]mathx.Point(nil), cellSources(o)...)

		Convey("Reversing twice restores the original per-cell source positions", func() {
			o.SetPlayDirection(true)
			o.SetPlayDirection(false)
			So(cellSources(o), ShouldResemble, originalSrc)
		})
	})
}

func cellSources(o *Orchestrator) []mathx.Point {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]mathx.Point, len(o.sim.Cells))
	for i, c := range o.sim.Cells {
		out[i] = c.Src
	}
	return out
}

func TestSetModeDrawStartsAndCancelsSolver(t *testing.T) {
	Convey("Given an orchestrator switched into draw mode", t, func() {
		o := New(nil)
		o.LoadPreset(identityPreset(4))

		weights := make([]float64, 16)
		for i := range weights {
			weights[i] = 255
		}

		Convey("Switching back out of draw mode increments currentID", func() {
			before := o.currentID
			o.SetMode(ModeDraw, weights, 13, "orchestrator-test", nil)
			afterEnter := o.currentID
			So(afterEnter, ShouldBeGreaterThan, before)

			// Give the background solver a moment to take its first snapshot
			// before superseding it.
			time.Sleep(5 * time.Millisecond)

			o.SetMode(ModeTransform, weights, 13, "orchestrator-test", nil)
			So(o.currentID, ShouldBeGreaterThan, afterEnter)
		})
	})
}

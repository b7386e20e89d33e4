package server

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/obamify/pixelmorph/mathx"
	"github.com/obamify/pixelmorph/orchestrator"
)

func TestPresetRoundTrip(t *testing.T) {
	Convey("Given a preset saved to a temp directory", t, func() {
		s := 4
		n := s * s
		src := make([]mathx.RGB, n)
		assignments := make([]int, n)
		for i := range src {
			src[i] = mathx.RGB{uint8(i * 7), uint8(i * 11), uint8(i * 13)}
			assignments[i] = (i + 1) % n
		}
		want := orchestrator.Preset{Name: "roundtrip", S: s, Source: src, Assignments: assignments}

		dir := filepath.Join(t.TempDir(), want.Name)
		So(SavePreset(dir, want), ShouldBeNil)

		Convey("Reloading it reproduces (W, H, source, assignments) exactly", func() {
			got, err := LoadPreset(dir)
			So(err, ShouldBeNil)
			So(got.S, ShouldEqual, want.S)
			So(got.Source, ShouldResemble, want.Source)
			So(got.Assignments, ShouldResemble, want.Assignments)
		})
	})
}

func TestLoadPresetStoreFallsBackToDefaultNames(t *testing.T) {
	Convey("Given a preset directory with no index.json but a 'default' preset present", t, func() {
		root := t.TempDir()
		s := 2
		src := []mathx.RGB{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}
		assignments := []int{0, 1, 2, 3}
		So(SavePreset(filepath.Join(root, "default"), orchestrator.Preset{
			Name: "default", S: s, Source: src, Assignments: assignments,
		}), ShouldBeNil)

		Convey("LoadPresetStore finds it via the default-name probe", func() {
			presets, err := LoadPresetStore(root)
			So(err, ShouldBeNil)
			So(len(presets), ShouldEqual, 1)
			So(presets[0].Name, ShouldEqual, "default")
		})
	})
}

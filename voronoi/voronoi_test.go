package voronoi

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/obamify/pixelmorph/mathx"
)

func randomSeeds(n, s int, seedStr string) []Seed {
	rng := mathx.NewPRNG(seedStr)
	seeds := make([]Seed, n)
	for i := range seeds {
		seeds[i] = Seed{
			Pos: mathx.Point{
				X: rng.RangeFloat(0, float64(s)),
				Y: rng.RangeFloat(0, float64(s)),
			},
			Color: [3]float64{rng.Float64(), rng.Float64(), rng.Float64()},
		}
	}
	return seeds
}

func TestRasterizerAgreement(t *testing.T) {
	Convey("Given 1024 random seeds over a 256x256 arena", t, func() {
		s := 256
		seeds := randomSeeds(1024, s, "rasterizer-agreement")

		brute := RenderBrute(seeds, s)
		grid := RenderGrid(seeds, s)

		Convey("The grid and brute rasterizers agree on at least 99.5% of pixels", func() {
			total := s * s
			matches := 0
			for y := 0; y < s; y++ {
				for x := 0; x < s; x++ {
					if brute.RGBAAt(x, y) == grid.RGBAAt(x, y) {
						matches++
					}
				}
			}
			agreement := float64(matches) / float64(total)
			So(agreement, ShouldBeGreaterThanOrEqualTo, 0.995)
		})
	})
}

func TestRenderGridEmptySeeds(t *testing.T) {
	Convey("Given no seeds", t, func() {
		img := RenderGrid(nil, 16)

		Convey("RenderGrid returns a blank image without panicking", func() {
			So(img.Bounds().Dx(), ShouldEqual, 16)
		})
	})
}

func TestNearestSeedWins(t *testing.T) {
	Convey("Given two seeds far apart with distinct colors", t, func() {
		s := 32
		seeds := []Seed{
			{Pos: mathx.Point{X: 2, Y: 2}, Color: [3]float64{1, 0, 0}},
			{Pos: mathx.Point{X: 30, Y: 30}, Color: [3]float64{0, 0, 1}},
		}
		img := RenderGrid(seeds, s)

		Convey("A pixel near the first seed gets its color", func() {
			r, g, b, _ := img.At(2, 2).RGBA()
			So(r>>8, ShouldEqual, uint32(255))
			So(g>>8, ShouldEqual, uint32(0))
			So(b>>8, ShouldEqual, uint32(0))
		})

		Convey("A pixel near the second seed gets its color", func() {
			r, g, b, _ := img.At(30, 30).RGBA()
			So(r>>8, ShouldEqual, uint32(0))
			So(g>>8, ShouldEqual, uint32(0))
			So(b>>8, ShouldEqual, uint32(255))
		})
	})
}

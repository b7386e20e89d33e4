package mathx

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHeuristic(t *testing.T) {
	Convey("Given identical position and color", t, func() {
		p := Point{X: 3, Y: 4}
		rgb := RGB{10, 20, 30}

		Convey("The heuristic is zero regardless of weights", func() {
			So(Heuristic(p, p, rgb, rgb, 255, 13), ShouldEqual, 0.0)
		})
	})

	Convey("Given a pure color mismatch at the same position", t, func() {
		p := Point{X: 0, Y: 0}
		a := RGB{0, 0, 0}
		b := RGB{10, 0, 0}

		Convey("The cost is the weighted squared channel distance", func() {
			got := Heuristic(p, p, a, b, 2, 13)
			So(got, ShouldEqual, float64(100*2))
		})
	})

	Convey("Given a pure spatial mismatch with matching color", t, func() {
		a := Point{X: 0, Y: 0}
		b := Point{X: 3, Y: 4}
		rgb := RGB{5, 5, 5}

		Convey("The spatial term is weighted then squared again", func() {
			got := Heuristic(a, b, rgb, rgb, 255, 2)
			spatial := 25.0 // 3^2 + 4^2
			want := (spatial * 2) * (spatial * 2)
			So(got, ShouldEqual, want)
		})
	})
}

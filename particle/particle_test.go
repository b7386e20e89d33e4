package particle

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/obamify/pixelmorph/mathx"
)

func TestApplyDestinationForcePullsTowardDst(t *testing.T) {
	Convey("Given a cell far from its destination with nonzero dstForce and age", t, func() {
		c := Cell{
			Src:      mathx.Point{X: 0, Y: 0},
			Dst:      mathx.Point{X: 100, Y: 0},
			Age:      120,
			DstForce: 0.5,
		}
		pos := mathx.Point{X: 0, Y: 0}

		Convey("Acceleration points toward the destination", func() {
			ApplyDestinationForce(&c, pos, 256)
			So(c.Ax, ShouldBeGreaterThan, 0)
			So(c.Ay, ShouldEqual, 0)
		})
	})
}

func TestApplyNeighborForceRepels(t *testing.T) {
	Convey("Given two cells closer than personal space", t, func() {
		c := Cell{}
		pos := mathx.Point{X: 10, Y: 10}
		otherPos := mathx.Point{X: 10.1, Y: 10}
		rng := mathx.NewPRNG("jitter")

		Convey("The cell accelerates away from the neighbor", func() {
			w := ApplyNeighborForce(&c, pos, otherPos, 1.0, rng)
			So(w, ShouldBeGreaterThan, 0)
			So(c.Ax, ShouldBeLessThan, 0)
		})
	})

	Convey("Given two cells far enough apart", t, func() {
		c := Cell{}
		pos := mathx.Point{X: 0, Y: 0}
		otherPos := mathx.Point{X: 1000, Y: 1000}
		rng := mathx.NewPRNG("far")

		Convey("No force is applied", func() {
			w := ApplyNeighborForce(&c, pos, otherPos, 1.0, rng)
			So(w, ShouldEqual, 0.0)
			So(c.Ax, ShouldEqual, 0.0)
			So(c.Ay, ShouldEqual, 0.0)
		})
	})
}

func TestApplyWallForcePushesInward(t *testing.T) {
	Convey("Given a cell very close to the left wall", t, func() {
		c := Cell{}
		pos := mathx.Point{X: 0.01, Y: 50}

		Convey("It accelerates toward positive X", func() {
			ApplyWallForce(&c, pos, 256, 1.0)
			So(c.Ax, ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a cell well within the arena", t, func() {
		c := Cell{}
		pos := mathx.Point{X: 128, Y: 128}

		Convey("No wall force applies", func() {
			ApplyWallForce(&c, pos, 256, 1.0)
			So(c.Ax, ShouldEqual, 0.0)
			So(c.Ay, ShouldEqual, 0.0)
		})
	})
}

func TestIntegrateClampsVelocity(t *testing.T) {
	Convey("Given a cell with a huge acceleration", t, func() {
		c := Cell{Ax: 1000, Ay: 0}
		pos := mathx.Point{X: 0, Y: 0}

		Convey("Integrate never lets velocity exceed MaxVelocity", func() {
			Integrate(&c, &pos)
			So(c.Vx, ShouldBeLessThanOrEqualTo, MaxVelocity+1e-9)
			So(c.Ax, ShouldEqual, 0.0)
			So(c.Age, ShouldEqual, 1)
		})
	})
}

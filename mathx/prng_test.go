package mathx

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPRNGDeterminism(t *testing.T) {
	Convey("Given two PRNGs seeded with the same string", t, func() {
		a := NewPRNG("session-42")
		b := NewPRNG("session-42")

		Convey("They produce identical sequences", func() {
			for i := 0; i < 100; i++ {
				So(a.Range(0, 1000), ShouldEqual, b.Range(0, 1000))
			}
		})
	})

	Convey("Given two PRNGs seeded with different strings", t, func() {
		a := NewPRNG("session-42")
		b := NewPRNG("session-43")

		Convey("Their sequences diverge", func() {
			same := true
			for i := 0; i < 20; i++ {
				if a.Range(0, 1<<30) != b.Range(0, 1<<30) {
					same = false
					break
				}
			}
			So(same, ShouldBeFalse)
		})
	})

	Convey("Given a range query", t, func() {
		p := NewPRNG("bounds")

		Convey("Range never returns a value outside [lo, hi)", func() {
			for i := 0; i < 1000; i++ {
				v := p.Range(5, 9)
				So(v, ShouldBeGreaterThanOrEqualTo, 5)
				So(v, ShouldBeLessThan, 9)
			}
		})
	})
}

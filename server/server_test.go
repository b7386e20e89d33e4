package server

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/obamify/pixelmorph/assignment"
	"github.com/obamify/pixelmorph/mathx"
)

func TestFlattenRGB(t *testing.T) {
	Convey("Given a small RGB buffer", t, func() {
		pixels := []mathx.RGB{{1, 2, 3}, {4, 5, 6}}

		Convey("flattenRGB packs it into W*H*3 raw bytes in order", func() {
			So(flattenRGB(pixels), ShouldResemble, []byte{1, 2, 3, 4, 5, 6})
		})
	})
}

func TestEventFromMessage(t *testing.T) {
	Convey("Given each assignment.Message variant", t, func() {
		Convey("KindProgress becomes a \"progress\" event carrying the value", func() {
			evt := eventFromMessage(assignment.Message{Kind: assignment.KindProgress, Progress: 0.5})
			So(evt.Kind, ShouldEqual, "progress")
			So(evt.Progress, ShouldEqual, 0.5)
		})

		Convey("KindDone becomes a \"done\" event carrying the result", func() {
			result := &assignment.Result{Width: 4, Height: 4, Assignments: []int{0, 1, 2, 3}}
			evt := eventFromMessage(assignment.Message{Kind: assignment.KindDone, Done: result})
			So(evt.Kind, ShouldEqual, "done")
			So(evt.Done, ShouldEqual, result)
		})

		Convey("KindError becomes an \"error\" event carrying the message string", func() {
			evt := eventFromMessage(assignment.Message{Kind: assignment.KindError, Err: "boom"})
			So(evt.Kind, ShouldEqual, "error")
			So(evt.Err, ShouldEqual, "boom")
		})

		Convey("KindCancelled becomes a bare \"cancelled\" event", func() {
			evt := eventFromMessage(assignment.Message{Kind: assignment.KindCancelled})
			So(evt.Kind, ShouldEqual, "cancelled")
		})
	})
}

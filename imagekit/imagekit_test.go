package imagekit

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/obamify/pixelmorph/mathx"
)

func solidGradient(s int) []mathx.RGB {
	pixels := make([]mathx.RGB, s*s)
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			pixels[Index(s, x, y)] = mathx.RGB{uint8(x % 256), uint8((y * 4) % 256), 128}
		}
	}
	return pixels
}

func TestCropAndScaleIdentity(t *testing.T) {
	Convey("Given an already-square image and an identity crop/scale", t, func() {
		s := 16
		pixels := solidGradient(s)

		Convey("CropAndScale(scale=1, x=0, y=0) approximates identity", func() {
			out := CropAndScale(pixels, s, s, s, 1, 0, 0)
			So(len(out), ShouldEqual, len(pixels))
			for i := range pixels {
				for k := 0; k < 3; k++ {
					diff := int(pixels[i][k]) - int(out[i][k])
					if diff < 0 {
						diff = -diff
					}
					So(diff, ShouldBeLessThanOrEqualTo, 2)
				}
			}
		})
	})
}

func TestApplyAssignmentsRoundTrip(t *testing.T) {
	Convey("Given a permutation and its inverse", t, func() {
		assignments := []int{2, 0, 3, 1}
		inverse := Invert(assignments)
		palette := []mathx.RGB{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}}

		Convey("Applying both in sequence restores the original palette", func() {
			once := ApplyAssignments(palette, assignments)
			twice := ApplyAssignments(once, inverse)
			So(twice, ShouldResemble, palette)
		})
	})
}

func TestValidateSquare(t *testing.T) {
	Convey("Given a buffer whose length is not a perfect square", t, func() {
		pixels := make([]mathx.RGB, 10)

		Convey("ValidateSquare reports the mismatch", func() {
			err := ValidateSquare(pixels, 4)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPNGRoundTrip(t *testing.T) {
	Convey("Given an encoded RGB buffer", t, func() {
		s := 8
		pixels := solidGradient(s)
		var buf bytes.Buffer
		So(EncodePNG(&buf, pixels, s, s), ShouldBeNil)

		Convey("Decoding it reproduces the same pixels", func() {
			got, w, h, err := DecodePNG(&buf)
			So(err, ShouldBeNil)
			So(w, ShouldEqual, s)
			So(h, ShouldEqual, s)
			So(got, ShouldResemble, pixels)
		})
	})
}

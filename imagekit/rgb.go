// Package imagekit holds the image-shaped pieces of the pipeline: pulling
// an RGB pixel buffer out of any decoded image, cropping and rescaling it
// to the optimizer's working side length, and projecting an assignment
// back into an image.
package imagekit

import (
	"fmt"
	"image"

	"github.com/obamify/pixelmorph/mathx"
)

// ExtractRGB reads img into a row-major, 8-bit RGB buffer. Grayscale and
// paletted sources are promoted by channel copy; alpha, if present, is
// dropped (the optimizer never reasons about transparency).
func ExtractRGB(img image.Image) (pixels []mathx.RGB, w, h int) {
	bounds := img.Bounds()
	w, h = bounds.Dx(), bounds.Dy()
	pixels = make([]mathx.RGB, w*h)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// image.Color.RGBA returns 16-bit-per-channel premultiplied
			// values; shift down to 8-bit.
			pixels[i] = mathx.RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			i++
		}
	}
	return
}

// At returns the pixel at (x, y) in a w-wide row-major buffer.
func At(pixels []mathx.RGB, w, x, y int) mathx.RGB {
	return pixels[y*w+x]
}

// Index returns the linear, row-major index of (x, y) in a buffer of width w.
func Index(w, x, y int) int {
	return y*w + x
}

// ValidateSquare checks that the buffer's length is exactly s*s, returning
// an error naming the mismatch instead of silently truncating or panicking
// downstream. This is the "W*H not a perfect square after resampling" input
// error named in the error taxonomy.
func ValidateSquare(pixels []mathx.RGB, s int) error {
	if want := s * s; len(pixels) != want {
		return fmt.Errorf("imagekit: expected %d (%d x %d) pixels, got %d", want, s, s, len(pixels))
	}
	return nil
}

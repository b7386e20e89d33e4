package imagekit

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/obamify/pixelmorph/mathx"
)

// DecodePNG reads a PNG and returns its RGB buffer alongside width/height.
// Any channel count is accepted: grayscale and palette images are promoted
// via ExtractRGB's channel copy.
func DecodePNG(r io.Reader) (pixels []mathx.RGB, w, h int, err error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("imagekit: decode png: %w", err)
	}
	pixels, w, h = ExtractRGB(img)
	return
}

// EncodePNG writes a w x h RGB buffer as a PNG.
func EncodePNG(wr io.Writer, pixels []mathx.RGB, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixels[Index(w, x, y)]
			img.SetRGBA(x, y, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	if err := png.Encode(wr, img); err != nil {
		return fmt.Errorf("imagekit: encode png: %w", err)
	}
	return nil
}

package imagekit

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/obamify/pixelmorph/mathx"
)

// CropAndScale turns a W x H RGB buffer into an S x S RGB buffer, per the
// crop-then-resample recipe: a square region is cut out of the source
// (sized and positioned by scale/x/y), then resampled to S x S.
//
//   - scale >= 1 shrinks the cropped region (zooms in); x, y in [-1, 1]
//     pan the crop window within the area the scale makes available.
//   - Resampling uses a high-quality kernel (bilinear for shrinking,
//     Catmull-Rom for enlarging) rather than nearest-neighbor; exact pixel
//     parity with any particular implementation is not required, only
//     that an identity crop/scale round-trips within a few levels per
//     channel (see imagekit_test.go).
func CropAndScale(pixels []mathx.RGB, w, h, s int, scale, x, y float64) []mathx.RGB {
	base := w
	if h < base {
		base = h
	}

	cropSide := int(mathx.Clamp(float64(base)/scale, 1, float64(base)))

	maxOffX := w - cropSide
	if maxOffX < 0 {
		maxOffX = 0
	}
	maxOffY := h - cropSide
	if maxOffY < 0 {
		maxOffY = 0
	}

	xn := mathx.Clamp(x, -1, 1)*0.5 + 0.5
	yn := mathx.Clamp(y, -1, 1)*0.5 + 0.5

	x0 := int(math.Floor(xn * float64(maxOffX)))
	y0 := int(math.Floor(yn * float64(maxOffY)))

	src := toImage(pixels, w, h)
	cropRect := image.Rect(x0, y0, x0+cropSide, y0+cropSide)

	dst := image.NewRGBA(image.Rect(0, 0, s, s))
	scaler := xdraw.BiLinear
	if s > cropSide {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), src, cropRect, xdraw.Over, nil)

	out, _, _ := ExtractRGB(dst)
	return out
}

func toImage(pixels []mathx.RGB, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixels[Index(w, x, y)]
			img.SetRGBA(x, y, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	return img
}

// Package voronoi rasterizes the moving particle system: each output pixel
// takes the color of its nearest seed (position, color) pair.
package voronoi

import (
	"image"
	"image/color"
	"math"

	"github.com/obamify/pixelmorph/mathx"
)

// Seed is one particle's (position, color) pair as the rasterizer sees it.
// Color channels are normalized floats in [0, 1].
type Seed struct {
	Pos   mathx.Point
	Color [3]float64
}

func toRGBA(c [3]float64) color.RGBA {
	return color.RGBA{
		R: uint8(mathx.Clamp(c[0]*255, 0, 255)),
		G: uint8(mathx.Clamp(c[1]*255, 0, 255)),
		B: uint8(mathx.Clamp(c[2]*255, 0, 255)),
		A: 255,
	}
}

func sqDist(a, b mathx.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

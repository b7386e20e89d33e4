package voronoi

import (
	"image"

	"github.com/obamify/pixelmorph/mathx"
)

// RenderBrute examines every seed for every pixel: the O(N) per-pixel
// reference implementation. Used only by tests to check the grid variant's
// agreement, since it is too slow for interactive frame rates at any
// realistic S.
func RenderBrute(seeds []Seed, s int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s, s))

	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			idx := nearestBrute(seeds, float64(x)+0.5, float64(y)+0.5)
			img.SetRGBA(x, y, toRGBA(seeds[idx].Color))
		}
	}
	return img
}

// nearestBrute returns the index of the seed closest to (px, py), breaking
// ties by smallest index.
func nearestBrute(seeds []Seed, px, py float64) int {
	best := -1
	bestDist := 0.0
	query := mathx.Point{X: px, Y: py}
	for i, seed := range seeds {
		d := sqDist(seed.Pos, query)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

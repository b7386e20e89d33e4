package voronoi

import (
	"image"
	"math"

	"github.com/obamify/pixelmorph/mathx"
)

// RenderGrid is the default rasterizer: seeds are bucketed by position
// into cells of side c = ceil(sqrt(S^2/N)), and each output pixel searches
// only the buckets within a radius-2 window around its own bucket. Falls
// back to RenderBrute's full scan for any pixel whose window turns up no
// seeds at all (can happen near the arena edges with a sparse seed set).
func RenderGrid(seeds []Seed, s int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	if len(seeds) == 0 {
		return img
	}

	cellSize := math.Ceil(math.Sqrt(float64(s*s) / float64(len(seeds))))
	if cellSize < 1 {
		cellSize = 1
	}
	gridSide := int(math.Ceil(float64(s) / cellSize))
	if gridSide < 1 {
		gridSide = 1
	}

	buckets := make([][]int, gridSide*gridSide)
	bucketOf := func(p float64) int {
		b := int(p / cellSize)
		if b < 0 {
			return 0
		}
		if b >= gridSide {
			return gridSide - 1
		}
		return b
	}
	for i, seed := range seeds {
		bx := bucketOf(seed.Pos.X)
		by := bucketOf(seed.Pos.Y)
		idx := by*gridSide + bx
		buckets[idx] = append(buckets[idx], i)
	}

	for y := 0; y < s; y++ {
		py := float64(y) + 0.5
		for x := 0; x < s; x++ {
			px := float64(x) + 0.5
			bx := bucketOf(px)
			by := bucketOf(py)

			best, ok := nearestInWindow(seeds, buckets, gridSide, bx, by, px, py)
			if !ok {
				best = nearestBrute(seeds, px, py)
			}
			img.SetRGBA(x, y, toRGBA(seeds[best].Color))
		}
	}
	return img
}

// nearestInWindow scans the radius-2 bucket neighborhood around (bx, by)
// and returns the closest seed's index, breaking ties by smallest index.
func nearestInWindow(
	seeds []Seed,
	buckets [][]int,
	gridSide, bx, by int,
	px, py float64,
) (best int, found bool) {
	bestDist := 0.0
	best = -1
	query := mathx.Point{X: px, Y: py}

	for dy := -2; dy <= 2; dy++ {
		ny := by + dy
		if ny < 0 || ny >= gridSide {
			continue
		}
		for dx := -2; dx <= 2; dx++ {
			nx := bx + dx
			if nx < 0 || nx >= gridSide {
				continue
			}
			for _, i := range buckets[ny*gridSide+nx] {
				d := sqDist(seeds[i].Pos, query)
				if best < 0 || d < bestDist || (d == bestDist && i < best) {
					best = i
					bestDist = d
				}
			}
		}
	}

	return best, best >= 0
}

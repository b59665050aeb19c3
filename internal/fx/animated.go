// Frame-counter driven filters
package fx

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

func (b *Bank) registerAnimated(r *Registry) {
	animated(r, "extreme_closeup", extremeCloseup)
	animated(r, "puzzle", puzzle)
	animated(r, "fast_zoom_in", fastZoom(true))
	animated(r, "fast_zoom_out", fastZoom(false))
	animated(r, "shake", shake)
	animated(r, "pulse", pulse)
	animated(r, "spiral_zoom", spiralZoom)
}

func extremeCloseup(src gocv.Mat, center image.Point, tick int64) (gocv.Mat, error) {
	scale := 2.2 + 0.25*math.Sin(float64(tick)*0.15)
	return scaleAbout(src, center, 0, scale), nil
}

// fastZoom ramps the zoom over a 20-frame cycle.
func fastZoom(in bool) func(gocv.Mat, image.Point, int64) (gocv.Mat, error) {
	const cycle = 20
	return func(src gocv.Mat, center image.Point, tick int64) (gocv.Mat, error) {
		phase := float64(tick%cycle) / cycle
		if !in {
			phase = 1 - phase
		}
		return scaleAbout(src, center, 0, 1+1.5*phase), nil
	}
}

func shake(src gocv.Mat, center image.Point, tick int64) (gocv.Mat, error) {
	t := float64(tick)
	amp := float64(src.Cols()) / 80
	moved := translate(src, amp*math.Sin(t*1.7), amp*math.Cos(t*2.3))
	defer moved.Close()
	return scaleAbout(moved, center, 0, 1.05), nil
}

func pulse(src gocv.Mat, center image.Point, tick int64) (gocv.Mat, error) {
	return scaleAbout(src, center, 0, 1.08+0.08*math.Sin(float64(tick)*0.3)), nil
}

func spiralZoom(src gocv.Mat, center image.Point, tick int64) (gocv.Mat, error) {
	t := float64(tick)
	return scaleAbout(src, center, math.Mod(t*6, 360), 1.3+0.2*math.Sin(t*0.1)), nil
}

// puzzle cuts the frame into a 4x4 grid and reshuffles the pieces every 15
// frames. The order depends only on the tick.
func puzzle(src gocv.Mat, _ image.Point, tick int64) (gocv.Mat, error) {
	const grid = 4
	w, h := src.Cols()/grid, src.Rows()/grid
	if w < 1 || h < 1 {
		return src.Clone(), nil
	}

	order := shuffled(grid*grid, uint64(tick/15)+1)
	out := src.Clone()
	for dst, from := range order {
		sr := image.Rect(from%grid*w, from/grid*h, from%grid*w+w, from/grid*h+h)
		dr := image.Rect(dst%grid*w, dst/grid*h, dst%grid*w+w, dst/grid*h+h)

		piece := src.Region(sr)
		target := out.Region(dr)
		piece.CopyTo(&target)
		target.Close()
		piece.Close()
	}
	return out, nil
}

// shuffled returns a permutation of [0, n) from a small LCG seeded with seed.
func shuffled(n int, seed uint64) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	state := seed
	for i := n - 1; i > 0; i-- {
		state = state*6364136223846793005 + 1442695040888963407
		j := int((state >> 33) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}
	return p
}

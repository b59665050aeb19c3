// Remap-based distortions
package fx

import (
	"fmt"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// sampler maps a destination pixel to the source position it reads from.
type sampler func(x, y, w, h float64) (sx, sy float64)

type tableKey struct {
	id   string
	w, h int
}

type remapTables struct {
	mapX, mapY gocv.Mat
}

func (t *remapTables) Close() {
	t.mapX.Close()
	t.mapY.Close()
}

func (b *Bank) registerWarps(r *Registry) {
	radials := map[string]func(rad, theta float64) (float64, float64){
		"bulge":           radius(func(rad float64) float64 { return math.Pow(rad, 1.6) }),
		"pinch":           radius(func(rad float64) float64 { return math.Pow(rad, 0.6) }),
		"fisheye":         radius(func(rad float64) float64 { return rad * rad }),
		"sphere":          radius(func(rad float64) float64 { return 1 - math.Sqrt(1-rad*rad) }),
		"concave":         radius(func(rad float64) float64 { return math.Pow(rad, 0.75) }),
		"convex":          radius(func(rad float64) float64 { return math.Pow(rad, 1.3) }),
		"barrel":          radius(func(rad float64) float64 { return rad * (1 - 0.25*(1-rad*rad)) }),
		"pincushion":      radius(func(rad float64) float64 { return rad * (1 + 0.25*(1-rad*rad)) }),
		"radial_stretch":  radius(func(rad float64) float64 { return rad * (0.6 + 0.4*rad) }),
		"radial_compress": radius(func(rad float64) float64 { return math.Min(1, rad*(1.4-0.4*rad)) }),
		"radial_zoom":     radius(func(rad float64) float64 { return rad * (0.7 + 0.3*rad*rad) }),
		"tunnel":          radius(func(rad float64) float64 { return math.Max(rad, 0.35) }),
		"ripple":          radius(func(rad float64) float64 { return rad + 0.03*math.Sin(rad*30) }),
		"water_ripple":    radius(func(rad float64) float64 { return rad + 0.02*math.Sin(rad*60)*(1-rad) }),
		"swirl":           angle(func(rad float64) float64 { return 2.5 * (1 - rad) }),
		"twirl":           angle(func(rad float64) float64 { return 4 * (1 - rad) * (1 - rad) }),
		"whirlpool":       angle(func(rad float64) float64 { return 6 * math.Pow(1-rad, 3) }),
		"spiral":          angle(func(rad float64) float64 { return 3 * rad * (1 - rad) }),
		"radial_wave":     angle(func(rad float64) float64 { return 0.06 * math.Sin(rad*20) }),
	}
	for id, fn := range radials {
		whole(r, id, b.remap(id, polar(fn)))
	}

	whole(r, "stretch", b.remap("stretch", func(x, y, w, h float64) (float64, float64) {
		return w/2 + (x-w/2)*0.6, y
	}))
	whole(r, "cylinder", b.remap("cylinder", func(x, y, w, h float64) (float64, float64) {
		nx := (x - w/2) / (w / 2)
		return w/2 + math.Asin(clampUnit(nx))*(w/2)*2/math.Pi, y
	}))
	whole(r, "wave", b.remap("wave", func(x, y, w, h float64) (float64, float64) {
		return x + 15*math.Sin(y/30), y + 15*math.Sin(x/30)
	}))
	whole(r, "vertical_wave", b.remap("vertical_wave", func(x, y, w, h float64) (float64, float64) {
		return x, y + 20*math.Sin(x/40)
	}))
	whole(r, "horizontal_wave", b.remap("horizontal_wave", func(x, y, w, h float64) (float64, float64) {
		return x + 20*math.Sin(y/40), y
	}))
	whole(r, "melt", b.remap("melt", func(x, y, w, h float64) (float64, float64) {
		drip := 0.5 + 0.5*math.Sin(x/17)*math.Cos(x/41)
		return x, y * (1 - 0.25*drip)
	}))
}

// polar turns a (radius, angle) mapping over the unit disc into a sampler.
// Points outside the disc are left where they are.
func polar(fn func(rad, theta float64) (float64, float64)) sampler {
	return func(x, y, w, h float64) (float64, float64) {
		cx, cy := w/2, h/2
		scale := math.Min(w, h) / 2
		dx, dy := (x-cx)/scale, (y-cy)/scale
		rad := math.Hypot(dx, dy)
		if rad >= 1 {
			return x, y
		}
		r2, t2 := fn(rad, math.Atan2(dy, dx))
		return cx + r2*math.Cos(t2)*scale, cy + r2*math.Sin(t2)*scale
	}
}

func radius(f func(rad float64) float64) func(rad, theta float64) (float64, float64) {
	return func(rad, theta float64) (float64, float64) { return f(rad), theta }
}

func angle(f func(rad float64) float64) func(rad, theta float64) (float64, float64) {
	return func(rad, theta float64) (float64, float64) { return rad, theta + f(rad) }
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// remap returns a transform sampling src through fn. Tables are built once
// per frame size and kept until the bank is closed.
func (b *Bank) remap(id string, fn sampler) transform {
	return func(src gocv.Mat) (gocv.Mat, error) {
		t, err := b.tablesFor(id, src.Cols(), src.Rows(), fn)
		if err != nil {
			return gocv.NewMat(), err
		}
		out := gocv.NewMat()
		gocv.Remap(src, &out, &t.mapX, &t.mapY, gocv.InterpolationLinear, gocv.BorderReflect, color.RGBA{})
		return out, nil
	}
}

func (b *Bank) tablesFor(id string, w, h int, fn sampler) (*remapTables, error) {
	key := tableKey{id: id, w: w, h: h}
	if t, ok := b.tables[key]; ok {
		return t, nil
	}

	xs := make([]float32, w*h)
	ys := make([]float32, w*h)
	fw, fh := float64(w), float64(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := fn(float64(x), float64(y), fw, fh)
			xs[y*w+x] = float32(sx)
			ys[y*w+x] = float32(sy)
		}
	}

	mapX, err := floatMat(h, w, xs)
	if err != nil {
		return nil, fmt.Errorf("%s: build x map: %w", id, err)
	}
	mapY, err := floatMat(h, w, ys)
	if err != nil {
		mapX.Close()
		return nil, fmt.Errorf("%s: build y map: %w", id, err)
	}

	t := &remapTables{mapX: mapX, mapY: mapY}
	b.tables[key] = t
	b.logger.WithField("filter", id).WithField("size", fmt.Sprintf("%dx%d", w, h)).Debug("Built remap tables")
	return t, nil
}

// Blur, edge and stylize filters
package fx

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

func (b *Bank) registerStylize(r *Registry) {
	whole(r, "blur", blur)
	whole(r, "sharpen", sharpen)
	whole(r, "emboss", emboss)
	whole(r, "edge_detect", edgeDetect)
	whole(r, "sketch", sketch)
	whole(r, "cartoon", cartoon)
	whole(r, "anime", anime)
	whole(r, "glow", glow)
	whole(r, "neon_glow", neonGlow)
	whole(r, "pixelate", pixelate(16))
	whole(r, "halftone", halftone)
	whole(r, "vhs", vhs)
	whole(r, "glitch", glitch)
	whole(r, "double_vision", doubleVision)
	whole(r, "zoom_blur", zoomBlur)
	whole(r, "radial_blur", radialBlur)
}

func blur(src gocv.Mat) (gocv.Mat, error) {
	out := gocv.NewMat()
	gocv.GaussianBlur(src, &out, image2(21), 0, 0, gocv.BorderDefault)
	return out, nil
}

func convolve(src gocv.Mat, k gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.Filter2D(src, &out, -1, k, image.Pt(-1, -1), 0, gocv.BorderDefault)
	return out
}

func sharpen(src gocv.Mat) (gocv.Mat, error) {
	k := kernel(
		[]float32{0, -1, 0},
		[]float32{-1, 5, -1},
		[]float32{0, -1, 0},
	)
	defer k.Close()
	return convolve(src, k), nil
}

func emboss(src gocv.Mat) (gocv.Mat, error) {
	k := kernel(
		[]float32{-2, -1, 0},
		[]float32{-1, 1, 1},
		[]float32{0, 1, 2},
	)
	defer k.Close()
	return convolve(src, k), nil
}

func edges(src gocv.Mat) gocv.Mat {
	gray := toGray(src)
	defer gray.Close()
	out := gocv.NewMat()
	gocv.Canny(gray, &out, 50, 150)
	return out
}

func edgeDetect(src gocv.Mat) (gocv.Mat, error) {
	e := edges(src)
	defer e.Close()
	return toBGR(e), nil
}

func sketch(src gocv.Mat) (gocv.Mat, error) {
	gray := toGray(src)
	defer gray.Close()
	gocv.MedianBlur(gray, &gray, 5)

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.AdaptiveThreshold(gray, &lines, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, 9, 2)
	return toBGR(lines), nil
}

// outlineMask is white where the image is flat and black along strong edges.
func outlineMask(src gocv.Mat) gocv.Mat {
	gray := toGray(src)
	defer gray.Close()
	gocv.MedianBlur(gray, &gray, 7)

	mask := gocv.NewMat()
	gocv.AdaptiveThreshold(gray, &mask, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, 9, 2)
	return mask
}

func cartoon(src gocv.Mat) (gocv.Mat, error) {
	smooth := gocv.NewMat()
	defer smooth.Close()
	gocv.BilateralFilter(src, &smooth, 9, 150, 150)

	mask := outlineMask(src)
	defer mask.Close()

	out := gocv.NewMatWithSize(src.Rows(), src.Cols(), src.Type())
	out.SetTo(gocv.NewScalar(0, 0, 0, 0))
	gocv.BitwiseAndWithMask(smooth, smooth, &out, mask)
	return out, nil
}

func anime(src gocv.Mat) (gocv.Mat, error) {
	flat, err := posterize(5)(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer flat.Close()
	return cartoon(flat)
}

func glow(src gocv.Mat) (gocv.Mat, error) {
	soft := gocv.NewMat()
	defer soft.Close()
	gocv.GaussianBlur(src, &soft, image2(31), 0, 0, gocv.BorderDefault)

	out := gocv.NewMat()
	gocv.AddWeighted(src, 1.0, soft, 0.6, 0, &out)
	return out, nil
}

func neonGlow(src gocv.Mat) (gocv.Mat, error) {
	e := edges(src)
	defer e.Close()

	k := gocv.GetStructuringElement(gocv.MorphRect, image2(3))
	defer k.Close()
	gocv.Dilate(e, &e, k)

	paint := solid(src, hsvColor(300, 1, 1))
	defer paint.Close()

	neon := gocv.NewMatWithSize(src.Rows(), src.Cols(), src.Type())
	defer neon.Close()
	neon.SetTo(gocv.NewScalar(0, 0, 0, 0))
	paint.CopyToWithMask(&neon, e)
	gocv.GaussianBlur(neon, &neon, image2(9), 0, 0, gocv.BorderDefault)

	out := gocv.NewMat()
	gocv.AddWeighted(src, 0.3, neon, 1.5, 0, &out)
	return out, nil
}

func pixelate(blocks int) transform {
	return func(src gocv.Mat) (gocv.Mat, error) {
		w := max(1, src.Cols()/blocks)
		h := max(1, src.Rows()/blocks)

		small := gocv.NewMat()
		defer small.Close()
		gocv.Resize(src, &small, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)

		out := gocv.NewMat()
		gocv.Resize(small, &out, image.Pt(src.Cols(), src.Rows()), 0, 0, gocv.InterpolationNearestNeighbor)
		return out, nil
	}
}

func halftone(src gocv.Mat) (gocv.Mat, error) {
	const cell = 10

	gray := toGray(src)
	defer gray.Close()

	cols := max(1, src.Cols()/cell)
	rows := max(1, src.Rows()/cell)
	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(gray, &small, image.Pt(cols, rows), 0, 0, gocv.InterpolationArea)

	out := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), src.Rows(), src.Cols(), src.Type())
	ink := color.RGBA{A: 255}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			darkness := 1 - float64(small.GetUCharAt(y, x))/255
			radius := int(darkness * cell / 2 * 1.2)
			if radius < 1 {
				continue
			}
			center := image.Pt(x*cell+cell/2, y*cell+cell/2)
			gocv.Circle(&out, center, radius, ink, -1)
		}
	}
	return out, nil
}

// translate shifts src by (dx, dy), reflecting at the borders.
func translate(src gocv.Mat, dx, dy float64) gocv.Mat {
	m := affine(1, 0, dx, 0, 1, dy)
	defer m.Close()

	out := gocv.NewMat()
	gocv.WarpAffineWithParams(src, &out, m, image.Pt(src.Cols(), src.Rows()),
		gocv.InterpolationLinear, gocv.BorderReflect, color.RGBA{})
	return out
}

// splitShift offsets the blue and red channels in opposite directions.
func splitShift(src gocv.Mat, dx int) gocv.Mat {
	channels := gocv.Split(src)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()

	blue := translate(channels[0], float64(-dx), 0)
	channels[0].Close()
	channels[0] = blue

	red := translate(channels[2], float64(dx), 0)
	channels[2].Close()
	channels[2] = red

	out := gocv.NewMat()
	gocv.Merge(channels, &out)
	return out
}

func vhs(src gocv.Mat) (gocv.Mat, error) {
	shifted := splitShift(src, 6)
	defer shifted.Close()

	out := gocv.NewMat()
	gocv.GaussianBlur(shifted, &out, image.Pt(5, 1), 0, 0, gocv.BorderDefault)

	scan := color.RGBA{R: 10, G: 10, B: 10, A: 255}
	for y := 0; y < out.Rows(); y += 4 {
		gocv.Line(&out, image.Pt(0, y), image.Pt(out.Cols(), y), scan, 1)
	}
	return out, nil
}

func glitch(src gocv.Mat) (gocv.Mat, error) {
	out := splitShift(src, max(4, src.Cols()/100))

	// fixed horizontal bands slid sideways
	bandH := max(2, src.Rows()/24)
	offsets := []float64{0.06, -0.04, 0.09, -0.07}
	for i, off := range offsets {
		y := (i*7 + 3) * src.Rows() / 32
		band := image.Rect(0, y, src.Cols(), min(src.Rows(), y+bandH))
		if band.Dy() < 1 {
			continue
		}
		roi := out.Region(band)
		moved := translate(roi, off*float64(src.Cols()), 0)
		moved.CopyTo(&roi)
		moved.Close()
		roi.Close()
	}
	return out, nil
}

func doubleVision(src gocv.Mat) (gocv.Mat, error) {
	ghost := translate(src, float64(src.Cols())/40, float64(src.Rows())/60)
	defer ghost.Close()
	return blend(src, 0.5, ghost), nil
}

// accumulate blends equally weighted copies of src produced by step.
func accumulate(src gocv.Mat, steps int, step func(i int) gocv.Mat) gocv.Mat {
	out := src.Clone()
	for i := 1; i < steps; i++ {
		layer := step(i)
		gocv.AddWeighted(out, float64(i)/float64(i+1), layer, 1/float64(i+1), 0, &out)
		layer.Close()
	}
	return out
}

func scaleAbout(src gocv.Mat, center image.Point, angle, scale float64) gocv.Mat {
	m := gocv.GetRotationMatrix2D(center, angle, scale)
	defer m.Close()

	out := gocv.NewMat()
	gocv.WarpAffineWithParams(src, &out, m, image.Pt(src.Cols(), src.Rows()),
		gocv.InterpolationLinear, gocv.BorderReflect, color.RGBA{})
	return out
}

func zoomBlur(src gocv.Mat) (gocv.Mat, error) {
	c := image.Pt(src.Cols()/2, src.Rows()/2)
	return accumulate(src, 6, func(i int) gocv.Mat {
		return scaleAbout(src, c, 0, 1+0.02*float64(i))
	}), nil
}

func radialBlur(src gocv.Mat) (gocv.Mat, error) {
	c := image.Pt(src.Cols()/2, src.Rows()/2)
	return accumulate(src, 6, func(i int) gocv.Mat {
		angle := 1.2 * float64(i)
		if i%2 == 0 {
			angle = -angle
		}
		return scaleAbout(src, c, angle, 1)
	}), nil
}

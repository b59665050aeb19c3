package fx

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// matFromBytes copies data into an OpenCV-owned Mat so the Go slice can be
// collected.
func matFromBytes(rows, cols int, mt gocv.MatType, data []byte) (gocv.Mat, error) {
	view, err := gocv.NewMatFromBytes(rows, cols, mt, data)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("wrap %dx%d buffer: %w", cols, rows, err)
	}
	defer view.Close()
	return view.Clone(), nil
}

func floatMat(rows, cols int, data []float32) (gocv.Mat, error) {
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return matFromBytes(rows, cols, gocv.MatTypeCV32F, buf)
}

// lookupTable builds a 1x256 table for gocv.LUT.
func lookupTable(f func(v int) uint8) (gocv.Mat, error) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = f(i)
	}
	return matFromBytes(1, 256, gocv.MatTypeCV8UC1, data)
}

func applyLUT(src gocv.Mat, f func(v int) uint8) (gocv.Mat, error) {
	table, err := lookupTable(f)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer table.Close()

	out := gocv.NewMat()
	gocv.LUT(src, table, &out)
	return out, nil
}

// kernel builds a small CV_32F matrix from rows of values.
func kernel(rows ...[]float32) gocv.Mat {
	k := gocv.NewMatWithSize(len(rows), len(rows[0]), gocv.MatTypeCV32F)
	for r, row := range rows {
		for c, v := range row {
			k.SetFloatAt(r, c, v)
		}
	}
	return k
}

// affine builds a 2x3 CV_64F transform matrix.
func affine(a, b, c, d, e, f float64) gocv.Mat {
	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	m.SetDoubleAt(0, 0, a)
	m.SetDoubleAt(0, 1, b)
	m.SetDoubleAt(0, 2, c)
	m.SetDoubleAt(1, 0, d)
	m.SetDoubleAt(1, 1, e)
	m.SetDoubleAt(1, 2, f)
	return m
}

// solid returns a frame-sized Mat filled with c.
func solid(like gocv.Mat, c color.RGBA) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		like.Rows(), like.Cols(), like.Type())
}

func toBGR(gray gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.CvtColor(gray, &out, gocv.ColorGrayToBGR)
	return out
}

func toGray(src gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.CvtColor(src, &out, gocv.ColorBGRToGray)
	return out
}

func blend(a gocv.Mat, alpha float64, b gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.AddWeighted(a, alpha, b, 1-alpha, 0, &out)
	return out
}

func clamp8(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

func image2(k int) image.Point { return image.Pt(k, k) }

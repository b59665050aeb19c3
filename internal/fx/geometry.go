// Flips, rotations, zooms and mirror tilings
package fx

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

func (b *Bank) registerGeometry(r *Registry) {
	whole(r, "flip_horizontal", flip(1))
	whole(r, "flip_vertical", flip(0))
	whole(r, "flip_both", flip(-1))
	whole(r, "rotate", rotate(15, 1.15))
	whole(r, "rotate_45", rotate(45, 1))
	whole(r, "rotate_90", rotate(90, 1))
	whole(r, "rotate_zoom", rotate(30, 1.4))
	whole(r, "zoom_in", zoom(1.6))
	whole(r, "zoom_out", zoom(0.6))
	whole(r, "skew_horizontal", skew(0.3, 0))
	whole(r, "skew_vertical", skew(0, 0.3))
	whole(r, "mirror", mirror)
	whole(r, "quad_mirror", quadMirror)
	whole(r, "kaleidoscope", kaleidoscope)
	whole(r, "tile", tile(2, false))
	whole(r, "radial_tile", tile(3, true))
}

func flip(code int) transform {
	return func(src gocv.Mat) (gocv.Mat, error) {
		out := gocv.NewMat()
		gocv.Flip(src, &out, code)
		return out, nil
	}
}

func rotate(angle, scale float64) transform {
	return func(src gocv.Mat) (gocv.Mat, error) {
		c := image.Pt(src.Cols()/2, src.Rows()/2)
		return scaleAbout(src, c, angle, scale), nil
	}
}

func zoom(scale float64) transform {
	return rotate(0, scale)
}

func skew(kx, ky float64) transform {
	return func(src gocv.Mat) (gocv.Mat, error) {
		w, h := float64(src.Cols()), float64(src.Rows())
		m := affine(1, kx, -kx*h/2, ky, 1, -ky*w/2)
		defer m.Close()

		out := gocv.NewMat()
		gocv.WarpAffineWithParams(src, &out, m, image.Pt(src.Cols(), src.Rows()),
			gocv.InterpolationLinear, gocv.BorderReflect, color.RGBA{})
		return out, nil
	}
}

// pasteFlipped copies the from-region of src, flipped by code, into the
// to-region of dst. Both regions must have the same size.
func pasteFlipped(src gocv.Mat, dst *gocv.Mat, from, to image.Rectangle, code int) {
	part := src.Region(from)
	defer part.Close()

	flipped := gocv.NewMat()
	defer flipped.Close()
	gocv.Flip(part, &flipped, code)

	target := dst.Region(to)
	defer target.Close()
	flipped.CopyTo(&target)
}

// mirror reflects the left half onto the right half.
func mirror(src gocv.Mat) (gocv.Mat, error) {
	w, h := src.Cols(), src.Rows()
	half := w / 2
	out := src.Clone()
	pasteFlipped(src, &out, image.Rect(0, 0, half, h), image.Rect(w-half, 0, w, h), 1)
	return out, nil
}

// quadMirror reflects the top-left quadrant into the other three.
func quadMirror(src gocv.Mat) (gocv.Mat, error) {
	w, h := src.Cols(), src.Rows()
	hw, hh := w/2, h/2
	q := image.Rect(0, 0, hw, hh)

	out := src.Clone()
	pasteFlipped(src, &out, q, image.Rect(w-hw, 0, w, hh), 1)
	pasteFlipped(src, &out, q, image.Rect(0, h-hh, hw, h), 0)
	pasteFlipped(src, &out, q, image.Rect(w-hw, h-hh, w, h), -1)
	return out, nil
}

// kaleidoscope mirrors the quadrant just up-left of centre around the centre.
func kaleidoscope(src gocv.Mat) (gocv.Mat, error) {
	w, h := src.Cols(), src.Rows()
	hw, hh := w/2, h/2
	core := image.Rect(w/4, h/4, w/4+hw/2*2, h/4+hh/2*2)

	crop := src.Region(core)
	defer crop.Close()
	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(crop, &scaled, image.Pt(hw, hh), 0, 0, gocv.InterpolationLinear)

	staged := src.Clone()
	defer staged.Close()
	tl := staged.Region(image.Rect(0, 0, hw, hh))
	scaled.CopyTo(&tl)
	tl.Close()

	return quadMirror(staged)
}

// tile shrinks the frame and repeats it n x n. With alternate set, every other
// tile is mirrored so edges meet.
func tile(n int, alternate bool) transform {
	return func(src gocv.Mat) (gocv.Mat, error) {
		w, h := src.Cols(), src.Rows()
		tw, th := w/n, h/n
		if tw < 1 || th < 1 {
			return src.Clone(), nil
		}

		small := gocv.NewMat()
		defer small.Close()
		gocv.Resize(src, &small, image.Pt(tw, th), 0, 0, gocv.InterpolationArea)

		out := src.Clone()
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				cell := image.Rect(col*tw, row*th, (col+1)*tw, (row+1)*th)
				code := 2 // no flip
				if alternate {
					switch {
					case row%2 == 1 && col%2 == 1:
						code = -1
					case row%2 == 1:
						code = 0
					case col%2 == 1:
						code = 1
					}
				}
				target := out.Region(cell)
				if code == 2 {
					small.CopyTo(&target)
				} else {
					flipped := gocv.NewMat()
					gocv.Flip(small, &flipped, code)
					flipped.CopyTo(&target)
					flipped.Close()
				}
				target.Close()
			}
		}
		return out, nil
	}
}

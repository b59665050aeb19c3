// Face-anchored filters
package fx

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

func (b *Bank) registerFace(r *Registry) {
	r.Register("sam_reich", Op{Region: b.tattoo})
	r.Register("sam_face_mask", Op{Faces: b.faceMask})
	r.Register("face_pixelate", Op{Region: regional("face_pixelate", pixelate(8))})
}

// tattoo writes the configured text across the forehead of face.
func (b *Bank) tattoo(frame gocv.Mat, face image.Rectangle) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), fmt.Errorf("sam_reich: input frame is empty")
	}
	face = face.Intersect(FullFrame(frame))
	if face.Empty() {
		return gocv.NewMat(), fmt.Errorf("sam_reich: face %v outside frame", face)
	}

	const font = gocv.FontHersheyDuplex
	thickness := max(1, face.Dx()/90)
	size := gocv.GetTextSize(b.opts.TattooText, font, 1.0, thickness)
	if size.X == 0 {
		return gocv.NewMat(), fmt.Errorf("sam_reich: empty tattoo text")
	}
	scale := 0.8 * float64(face.Dx()) / float64(size.X)

	textW := int(float64(size.X) * scale)
	org := image.Pt(centerOf(face).X-textW/2, face.Min.Y+int(float64(face.Dy())*0.28))

	out := frame.Clone()
	ink := color.RGBA{R: 25, G: 25, B: 40, A: 255}
	gocv.PutText(&out, b.opts.TattooText, org, font, scale, color.RGBA{R: 200, G: 190, B: 180, A: 255}, thickness+2)
	gocv.PutText(&out, b.opts.TattooText, org, font, scale, ink, thickness)
	return out, nil
}

// faceMask pastes the mask image over every face inside an elliptical mask,
// or pixelates the faces when no image was loaded.
func (b *Bank) faceMask(frame gocv.Mat, faces []image.Rectangle) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), fmt.Errorf("sam_face_mask: input frame is empty")
	}

	out := frame.Clone()
	bounds := FullFrame(frame)
	for _, f := range faces {
		f = f.Intersect(bounds)
		if f.Dx() < 2 || f.Dy() < 2 {
			continue
		}
		if err := b.maskOne(&out, f); err != nil {
			out.Close()
			return gocv.NewMat(), err
		}
	}
	return out, nil
}

func (b *Bank) maskOne(out *gocv.Mat, f image.Rectangle) error {
	target := out.Region(f)
	defer target.Close()

	var patch gocv.Mat
	if b.mask.Empty() {
		p, err := pixelate(10)(target)
		if err != nil {
			return err
		}
		patch = p
	} else {
		patch = gocv.NewMat()
		gocv.Resize(b.mask, &patch, image.Pt(f.Dx(), f.Dy()), 0, 0, gocv.InterpolationLinear)
	}
	defer patch.Close()

	oval := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), f.Dy(), f.Dx(), gocv.MatTypeCV8UC1)
	defer oval.Close()
	gocv.Ellipse(&oval, image.Pt(f.Dx()/2, f.Dy()/2), image.Pt(f.Dx()/2, f.Dy()/2), 0, 0, 360,
		color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	patch.CopyToWithMask(&target, oval)
	return nil
}

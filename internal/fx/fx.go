// Filter operations and their registry
package fx

import (
	"fmt"
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// RegionFunc transforms the part of frame inside region. Full-image filters get
// a region covering the whole frame.
type RegionFunc func(frame gocv.Mat, region image.Rectangle) (gocv.Mat, error)

// AnimatedFunc is a region filter driven by a monotonically increasing frame
// counter.
type AnimatedFunc func(frame gocv.Mat, region image.Rectangle, tick int64) (gocv.Mat, error)

// FacesFunc transforms every detected face at once.
type FacesFunc func(frame gocv.Mat, faces []image.Rectangle) (gocv.Mat, error)

// Op holds exactly one of the three shapes. Every op returns a new Mat owned
// by the caller and leaves its input untouched.
type Op struct {
	Region   RegionFunc
	Animated AnimatedFunc
	Faces    FacesFunc
}

// Registry maps filter identifiers to operations.
type Registry struct {
	ops map[string]Op
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Op)}
}

func (r *Registry) Register(id string, op Op) {
	r.ops[id] = op
}

func (r *Registry) Lookup(id string) (Op, bool) {
	op, ok := r.ops[id]
	return op, ok
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ops))
	for id := range r.ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FullFrame is the region spanning all of m.
func FullFrame(m gocv.Mat) image.Rectangle {
	return image.Rect(0, 0, m.Cols(), m.Rows())
}

// transform is a whole-image filter body. It must return a Mat with the same
// size and type as src.
type transform func(src gocv.Mat) (gocv.Mat, error)

// regional lifts a whole-image transform to a RegionFunc: the transform runs on
// the region and the result is pasted into a copy of the frame.
func regional(name string, fn transform) RegionFunc {
	return func(frame gocv.Mat, region image.Rectangle) (gocv.Mat, error) {
		if frame.Empty() {
			return gocv.NewMat(), fmt.Errorf("%s: input frame is empty", name)
		}

		bounds := FullFrame(frame)
		region = region.Intersect(bounds)
		if region.Dx() < 2 || region.Dy() < 2 {
			return gocv.NewMat(), fmt.Errorf("%s: region %v outside frame %v", name, region, bounds)
		}
		if region == bounds {
			return fn(frame)
		}

		roi := frame.Region(region)
		defer roi.Close()

		patch, err := fn(roi)
		if err != nil {
			return gocv.NewMat(), err
		}
		defer patch.Close()

		out := frame.Clone()
		dst := out.Region(region)
		defer dst.Close()
		patch.CopyTo(&dst)
		return out, nil
	}
}

// centerOf returns the middle of r.
func centerOf(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

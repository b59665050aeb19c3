package fx

import (
	"image"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Options configures the operations that depend on user assets.
type Options struct {
	TattooText string
	MaskImage  string
}

// Bank owns the resources shared by the built-in operations: the face mask
// image and cached remap tables. It is used from the viewer loop only.
type Bank struct {
	opts   Options
	logger logrus.FieldLogger
	mask   gocv.Mat
	tables map[tableKey]*remapTables
}

// NewBank loads the optional mask image. A mask that cannot be loaded is
// logged and the mask filter falls back to pixelating faces.
func NewBank(opts Options, logger logrus.FieldLogger) *Bank {
	if opts.TattooText == "" {
		opts.TattooText = "SAM REICH"
	}
	b := &Bank{
		opts:   opts,
		logger: logger,
		mask:   gocv.NewMat(),
		tables: make(map[tableKey]*remapTables),
	}
	if opts.MaskImage != "" {
		mask, err := NewAssetLoader(logger).Load(opts.MaskImage)
		if err != nil {
			logger.WithError(err).Warn("Face mask image unavailable, faces will be pixelated")
		} else {
			b.mask = mask
		}
	}
	return b
}

// Close releases the mask and every cached table.
func (b *Bank) Close() error {
	for k, t := range b.tables {
		t.Close()
		delete(b.tables, k)
	}
	return b.mask.Close()
}

// Registry returns a registry holding every built-in operation.
func (b *Bank) Registry() *Registry {
	r := NewRegistry()
	b.registerColor(r)
	b.registerStylize(r)
	b.registerGeometry(r)
	b.registerWarps(r)
	b.registerAnimated(r)
	b.registerFace(r)
	return r
}

func whole(r *Registry, id string, fn transform) {
	r.Register(id, Op{Region: regional(id, fn)})
}

func animated(r *Registry, id string, fn func(src gocv.Mat, center image.Point, tick int64) (gocv.Mat, error)) {
	r.Register(id, Op{Animated: func(frame gocv.Mat, region image.Rectangle, tick int64) (gocv.Mat, error) {
		return regional(id, func(src gocv.Mat) (gocv.Mat, error) {
			return fn(src, image.Pt(src.Cols()/2, src.Rows()/2), tick)
		})(frame, region)
	}})
}

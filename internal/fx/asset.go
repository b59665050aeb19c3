// Image assets used by face filters
package fx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var supportedAssetFormats = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

// AssetLoader reads overlay images from disk.
type AssetLoader struct {
	logger logrus.FieldLogger
}

func NewAssetLoader(logger logrus.FieldLogger) *AssetLoader {
	return &AssetLoader{logger: logger}
}

// Load reads a colour image. The caller owns the returned Mat.
func (l *AssetLoader) Load(path string) (gocv.Mat, error) {
	l.logger.WithField("path", path).Debug("Loading asset")

	if !IsSupportedAsset(path) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", path)
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  mat.Cols(),
		"height": mat.Rows(),
	}).Info("Asset loaded")

	return mat, nil
}

// IsSupportedAsset reports whether the file extension is one OpenCV reads.
func IsSupportedAsset(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range supportedAssetFormats {
		if ext == f {
			return true
		}
	}
	return false
}

package opencv

import (
	"fmt"
	"image"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/kozaktomas/face-attendance/internal/config"
)

// Locations searched when the configured cascade file cannot be loaded.
var cascadeDirs = []string{
	"/usr/local/share/opencv4/haarcascades",
	"/usr/share/opencv4/haarcascades",
	"/opt/homebrew/share/opencv4/haarcascades",
}

// CascadeDetector finds frontal faces with a Haar cascade classifier.
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	params     config.DetectionTuning
}

// NewCascadeDetector loads the cascade at path, falling back to the usual
// OpenCV install locations for the same file name.
func NewCascadeDetector(path string, params config.DetectionTuning) (*CascadeDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if classifier.Load(path) {
		return &CascadeDetector{classifier: classifier, params: params}, nil
	}

	name := filepath.Base(path)
	for _, dir := range cascadeDirs {
		if classifier.Load(filepath.Join(dir, name)) {
			return &CascadeDetector{classifier: classifier, params: params}, nil
		}
	}

	classifier.Close()
	return nil, fmt.Errorf("failed to load face cascade classifier from %s or alternative paths", path)
}

// DetectFaces returns face rectangles in detection order.
func (d *CascadeDetector) DetectFaces(frame *image.Gray) []image.Rectangle {
	mat, err := gocv.ImageGrayToMatGray(frame)
	if err != nil {
		return nil
	}
	defer mat.Close()

	minSize := image.Pt(d.params.MinFaceSize, d.params.MinFaceSize)
	return d.classifier.DetectMultiScaleWithParams(
		mat,
		d.params.ScaleFactor,
		d.params.MinNeighbors,
		0,
		minSize,
		image.Point{},
	)
}

// Close releases the classifier.
func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}

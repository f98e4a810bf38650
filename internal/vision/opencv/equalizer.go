package opencv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/kozaktomas/face-attendance/internal/vision"
)

// HistogramEqualizer equalizes face samples with OpenCV's equalizeHist.
type HistogramEqualizer struct{}

// Equalize returns an equalized copy of src.
func (HistogramEqualizer) Equalize(src *image.Gray) (*image.Gray, error) {
	in, err := gocv.ImageGrayToMatGray(src)
	if err != nil {
		return nil, fmt.Errorf("convert sample: %w", err)
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.EqualizeHist(in, &out)

	img, err := out.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert equalized sample: %w", err)
	}
	return vision.ToGray(img), nil
}

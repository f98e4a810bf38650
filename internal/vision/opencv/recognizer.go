package opencv

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// LBPHRecognizer wraps OpenCV's Local Binary Patterns Histograms recognizer.
// The native object is not safe for concurrent use, so calls are serialized.
type LBPHRecognizer struct {
	mu sync.Mutex
	fr *contrib.LBPHFaceRecognizer
}

// NewLBPHRecognizer creates an untrained recognizer with OpenCV defaults.
func NewLBPHRecognizer() *LBPHRecognizer {
	return &LBPHRecognizer{fr: contrib.NewLBPHFaceRecognizer()}
}

// Train replaces the recognizer state with the given samples.
func (r *LBPHRecognizer) Train(samples []*image.Gray, labels []int) error {
	if len(samples) != len(labels) {
		return fmt.Errorf("samples and labels differ in length: %d vs %d", len(samples), len(labels))
	}
	if len(samples) == 0 {
		return errors.New("no samples to train on")
	}

	mats := make([]gocv.Mat, 0, len(samples))
	defer func() {
		for _, m := range mats {
			m.Close()
		}
	}()
	for i, s := range samples {
		m, err := gocv.ImageGrayToMatGray(s)
		if err != nil {
			return fmt.Errorf("convert sample %d: %w", i, err)
		}
		mats = append(mats, m)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fr.Train(mats, labels)
	return nil
}

// Predict returns the nearest label and its chi-square histogram distance.
func (r *LBPHRecognizer) Predict(sample *image.Gray) (int, float64, error) {
	m, err := gocv.ImageGrayToMatGray(sample)
	if err != nil {
		return 0, 0, fmt.Errorf("convert sample: %w", err)
	}
	defer m.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	resp := r.fr.PredictExtendedResponse(m)
	return int(resp.Label), float64(resp.Confidence), nil
}

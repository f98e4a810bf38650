// Package recognition maps registered students to recognizer labels and
// answers "who is this face" queries.
package recognition

import (
	"errors"
	"fmt"
	"image"

	"github.com/kozaktomas/face-attendance/internal/vision"
)

var (
	// ErrNotTrained is returned by Predict before a successful Train.
	ErrNotTrained = errors.New("recognition model is not trained")
	// ErrNoTrainingData is returned by Train when there is nothing to learn.
	ErrNoTrainingData = errors.New("no training data")
)

// Model tracks whether the wrapped recognizer holds a usable training state.
type Model struct {
	recognizer vision.Recognizer
	trained    bool
}

// NewModel wraps r. The model starts untrained.
func NewModel(r vision.Recognizer) *Model {
	return &Model{recognizer: r}
}

// Train replaces the model state. With no samples the recognizer is left
// alone and the model becomes untrained.
func (m *Model) Train(images []*image.Gray, labels []int) error {
	if len(images) != len(labels) {
		return fmt.Errorf("train: %d images but %d labels", len(images), len(labels))
	}
	if len(images) == 0 {
		m.trained = false
		return ErrNoTrainingData
	}
	if err := m.recognizer.Train(images, labels); err != nil {
		m.trained = false
		return fmt.Errorf("train recognizer: %w", err)
	}
	m.trained = true
	return nil
}

// Predict returns the closest label and its distance.
func (m *Model) Predict(img *image.Gray) (int, float64, error) {
	if !m.trained {
		return 0, 0, ErrNotTrained
	}
	label, distance, err := m.recognizer.Predict(img)
	if err != nil {
		return 0, 0, fmt.Errorf("predict: %w", err)
	}
	return label, distance, nil
}

// Trained reports whether Predict can be called.
func (m *Model) Trained() bool {
	return m.trained
}

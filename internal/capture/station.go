package capture

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/recognition"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// Identifier answers who a cropped face sample shows.
type Identifier interface {
	Identify(img *image.Gray) (recognition.Match, error)
}

// Station owns the camera, the detector and the recognizer. At most one
// session runs at a time.
type Station struct {
	mu         sync.Mutex
	cameras    vision.CameraOpener
	detector   vision.Detector
	equalizer  vision.Equalizer
	identifier Identifier
	threshold  float64
	faceSize   int
	sleep      func(ctx context.Context, d time.Duration) error
}

// StationOption customizes a Station.
type StationOption func(*Station)

// WithSleep replaces the pause used between frames and samples.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) StationOption {
	return func(s *Station) {
		s.sleep = sleep
	}
}

// NoSleep skips pauses but still reports a cancelled context.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// NewStation creates a station using the recognition threshold and face size
// from tuning.
func NewStation(cameras vision.CameraOpener, detector vision.Detector, equalizer vision.Equalizer,
	identifier Identifier, tuning config.RecognitionTuning, opts ...StationOption) *Station {
	s := &Station{
		cameras:    cameras,
		detector:   detector,
		equalizer:  equalizer,
		identifier: identifier,
		threshold:  tuning.Threshold,
		faceSize:   tuning.FaceSize,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin claims the station and opens the camera. It fails with ErrBusy
// without waiting when another session is active.
func (s *Station) Begin() (*Session, error) {
	if !s.mu.TryLock() {
		return nil, ErrBusy
	}

	cam, err := s.cameras.OpenCamera()
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	return &Session{station: s, camera: cam, state: Armed}, nil
}

// Threshold is the distance below which a prediction counts as confident.
func (s *Station) Threshold() float64 {
	return s.threshold
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

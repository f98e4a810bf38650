// Package vision defines the capabilities the attendance system borrows from
// a computer-vision library: a frame source, a face detector, a histogram
// equalizer and a trainable face recognizer. Frames and face samples are plain *image.Gray values so the
// capture and recognition logic stays independent of the backing library.
package vision

import (
	"errors"
	"image"
)

// ErrFrameUnavailable is returned by a Camera when no frame can be read
// (device unplugged, end of a video file).
var ErrFrameUnavailable = errors.New("frame unavailable")

// Camera yields grayscale frames from a video source.
type Camera interface {
	ReadFrame() (*image.Gray, error)
	Close() error
}

// CameraOpener opens the video source for one capture session.
type CameraOpener interface {
	OpenCamera() (Camera, error)
}

// Detector locates face bounding boxes in a grayscale frame, in detection order.
type Detector interface {
	DetectFaces(frame *image.Gray) []image.Rectangle
}

// Equalizer spreads the intensity histogram of a face sample. It returns a
// new image and leaves src untouched.
type Equalizer interface {
	Equalize(src *image.Gray) (*image.Gray, error)
}

// Recognizer is an appearance-based classifier trained on labelled face samples.
// Train replaces any previous state. Predict returns the closest label and its
// distance, lower meaning more similar.
type Recognizer interface {
	Train(samples []*image.Gray, labels []int) error
	Predict(sample *image.Gray) (label int, distance float64, err error)
}

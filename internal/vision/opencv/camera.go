// Package opencv implements the vision capabilities on top of OpenCV via gocv.
package opencv

import (
	"fmt"
	"image"
	"strconv"

	"gocv.io/x/gocv"

	"github.com/kozaktomas/face-attendance/internal/vision"
)

// CameraSource opens a webcam by index, or a video file / stream URL.
type CameraSource struct {
	Device string
}

// OpenCamera opens the configured device. Numeric devices are treated as
// webcam indices.
func (s CameraSource) OpenCamera() (vision.Camera, error) {
	var device any = s.Device
	if idx, err := strconv.Atoi(s.Device); err == nil {
		device = idx
	}

	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open video capture %q: %w", s.Device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("video capture %q is not opened", s.Device)
	}
	return &camera{capture: capture, frame: gocv.NewMat(), gray: gocv.NewMat()}, nil
}

type camera struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	gray    gocv.Mat
}

// ReadFrame grabs the next frame and converts it to grayscale.
func (c *camera) ReadFrame() (*image.Gray, error) {
	if ok := c.capture.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, vision.ErrFrameUnavailable
	}

	if c.frame.Channels() == 1 {
		c.frame.CopyTo(&c.gray)
	} else {
		gocv.CvtColor(c.frame, &c.gray, gocv.ColorBGRToGray)
	}

	img, err := c.gray.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return vision.ToGray(img), nil
}

func (c *camera) Close() error {
	c.frame.Close()
	c.gray.Close()
	return c.capture.Close()
}

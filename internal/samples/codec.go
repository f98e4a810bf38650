// Package samples persists the face samples captured at registration and
// loads them back for training.
package samples

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"errors"
	"fmt"
	"image"
)

// ErrCorruptFaceData is returned when a stored face blob cannot be decoded.
var ErrCorruptFaceData = errors.New("corrupt face data")

type encodedImage struct {
	Width  int
	Height int
	Pix    []byte
}

// Encode serializes grayscale images into a single base64 text field.
func Encode(images []*image.Gray) (string, error) {
	payload := make([]encodedImage, 0, len(images))
	for _, img := range images {
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()
		pix := make([]byte, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			start := img.PixOffset(b.Min.X, y)
			pix = append(pix, img.Pix[start:start+w]...)
		}
		payload = append(payload, encodedImage{Width: w, Height: h, Pix: pix})
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode face data: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode. An empty string decodes to no images.
func Decode(data string) ([]*image.Gray, error) {
	if data == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrCorruptFaceData, err)
	}

	var payload []encodedImage
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: gob: %v", ErrCorruptFaceData, err)
	}

	images := make([]*image.Gray, 0, len(payload))
	for i, e := range payload {
		if e.Width <= 0 || e.Height <= 0 || len(e.Pix) != e.Width*e.Height {
			return nil, fmt.Errorf("%w: image %d has %d pixels for %dx%d",
				ErrCorruptFaceData, i, len(e.Pix), e.Width, e.Height)
		}
		images = append(images, &image.Gray{
			Pix:    e.Pix,
			Stride: e.Width,
			Rect:   image.Rect(0, 0, e.Width, e.Height),
		})
	}
	return images, nil
}

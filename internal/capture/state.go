// Package capture drives the camera for verification and registration
// sessions. A Station serializes sessions so only one owns the camera.
package capture

import "errors"

var (
	// ErrBusy is returned when another session holds the station.
	ErrBusy = errors.New("camera is busy with another session")
	// ErrCameraUnavailable is returned when the camera cannot be opened.
	ErrCameraUnavailable = errors.New("camera unavailable")
	// ErrInsufficientSamples is returned when registration captured too few faces.
	ErrInsufficientSamples = errors.New("insufficient face samples captured")
	// ErrSessionEnded is returned when a session is used after End.
	ErrSessionEnded = errors.New("capture session ended")
)

// State is the position of a verification session in its lifecycle.
type State int

const (
	Idle State = iota
	Armed
	Sampling
	Accepted
	Rejected
	TimedOut
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Sampling:
		return "sampling"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s >= Accepted
}

// Rejection reasons.
const (
	ReasonMismatch    = "Face does not match roll number"
	ReasonUnknownFace = "Unknown face"
)

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/kozaktomas/face-attendance/internal/vision"
)

// Session is one exclusive use of the station.
type Session struct {
	station *Station
	camera  vision.Camera
	state   State
	endOnce sync.Once
	ended   bool
}

// VerifyOptions bound a verification attempt.
type VerifyOptions struct {
	MaxFrames     int
	FrameInterval time.Duration
	// Observer, when set, is called after every processed frame with the
	// frame number and the number of faces found in it.
	Observer func(frame, faces int)
}

// Outcome is the terminal result of a verification session.
type Outcome struct {
	State       State
	ClaimedRoll string
	Roll        string // detected roll, set for Accepted and mismatches
	Name        string
	Distance    float64
	Confidence  float64
	Reason      string
	Frames      int
}

// Verified reports whether the claimed identity was confirmed.
func (o *Outcome) Verified() bool {
	return o.State == Accepted
}

// CollectOptions bound a registration capture.
type CollectOptions struct {
	Samples        int
	MinSamples     int
	EqualizeEvery  int
	MaxFrames      int
	SampleInterval time.Duration
	// Progress, when set, is called after each captured sample.
	Progress func(captured, target int)
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// End releases the camera and the station. A session ended before it
// reached a terminal state is Cancelled. It is safe to call twice.
func (s *Session) End() {
	s.endOnce.Do(func() {
		s.ended = true
		if !s.state.Terminal() {
			s.state = Cancelled
		}
		if err := s.camera.Close(); err != nil {
			slog.Warn("closing camera", "error", err)
		}
		s.station.mu.Unlock()
	})
}

// Verify samples frames until the claimed roll is confirmed, a confident
// match to someone else is seen, the frame budget runs out, or ctx ends.
// Faces at or above the threshold are soft rejections: sampling continues,
// and an exhausted budget then ends as Rejected instead of TimedOut.
func (s *Session) Verify(ctx context.Context, claimed string, opts VerifyOptions) (*Outcome, error) {
	if s.ended {
		return nil, ErrSessionEnded
	}

	st := s.station
	out := &Outcome{ClaimedRoll: claimed}
	finish := func(state State) (*Outcome, error) {
		s.state = state
		out.State = state
		return out, nil
	}

	s.state = Sampling
	softRejected := false

	for out.Frames < opts.MaxFrames {
		if ctx.Err() != nil {
			return finish(Cancelled)
		}

		frame, err := s.camera.ReadFrame()
		if err != nil {
			slog.Warn("reading frame", "error", err, "frame", out.Frames)
			break
		}
		out.Frames++

		faces := st.detector.DetectFaces(frame)
		for _, region := range faces {
			sample, err := vision.CropFace(frame, region, st.faceSize)
			if err != nil {
				continue
			}
			match, err := st.identifier.Identify(sample)
			if err != nil {
				slog.Debug("recognition failed", "error", err, "frame", out.Frames)
				continue
			}

			if match.Known && match.Distance < st.threshold {
				out.Roll = match.Roll
				out.Name = match.Name
				out.Distance = match.Distance
				out.Confidence = 100 - match.Distance
				if match.Roll == claimed {
					return finish(Accepted)
				}
				out.Reason = ReasonMismatch
				return finish(Rejected)
			}

			softRejected = true
			out.Distance = match.Distance
		}

		if opts.Observer != nil {
			opts.Observer(out.Frames, len(faces))
		}

		if err := st.sleep(ctx, opts.FrameInterval); err != nil {
			return finish(Cancelled)
		}
	}

	if softRejected {
		out.Reason = ReasonUnknownFace
		return finish(Rejected)
	}
	return finish(TimedOut)
}

// CollectSamples captures opts.Samples face crops, one per frame, equalizing
// the first sample and every EqualizeEvery-th one after it. It fails with ErrInsufficientSamples when
// fewer than MinSamples were captured before the frame budget ran out or
// the camera stopped.
func (s *Session) CollectSamples(ctx context.Context, opts CollectOptions) ([]*image.Gray, error) {
	if s.ended {
		return nil, ErrSessionEnded
	}

	st := s.station
	s.state = Sampling
	collected := make([]*image.Gray, 0, opts.Samples)

	for frames := 0; len(collected) < opts.Samples && frames < opts.MaxFrames; frames++ {
		if err := ctx.Err(); err != nil {
			s.state = Cancelled
			return nil, err
		}

		frame, err := s.camera.ReadFrame()
		if err != nil {
			slog.Warn("reading frame", "error", err, "frame", frames)
			break
		}

		faces := st.detector.DetectFaces(frame)
		if len(faces) == 0 {
			continue
		}
		sample, err := vision.CropFace(frame, faces[0], st.faceSize)
		if err != nil {
			continue
		}
		if opts.EqualizeEvery > 0 && len(collected)%opts.EqualizeEvery == 0 {
			if eq, err := st.equalizer.Equalize(sample); err != nil {
				slog.Warn("equalizing sample", "error", err, "sample", len(collected))
			} else {
				sample = eq
			}
		}
		collected = append(collected, sample)

		if opts.Progress != nil {
			opts.Progress(len(collected), opts.Samples)
		}

		if len(collected) < opts.Samples {
			if err := st.sleep(ctx, opts.SampleInterval); err != nil {
				s.state = Cancelled
				return nil, err
			}
		}
	}

	if len(collected) < opts.MinSamples {
		s.state = Rejected
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrInsufficientSamples, len(collected), opts.MinSamples)
	}
	s.state = Accepted
	return collected, nil
}

// IsCancelled reports whether err came from an ended context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

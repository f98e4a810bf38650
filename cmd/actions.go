package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/database"
)

// registerStudent runs an interactive registration with a progress bar.
func registerStudent(ctx context.Context, svc *attendance.Service, rollNumber, name string, samples int) error {
	opts := svc.InteractiveRegisterOptions()
	if samples > 0 {
		opts.Samples = samples
	}
	bar := newSampleBar(opts.Samples)
	opts.Progress = func(captured, _ int) {
		_ = bar.Set(captured)
	}

	fmt.Printf("Look at the camera. Capturing %d samples for %s...\n", opts.Samples, name)
	res, err := svc.Register(ctx, rollNumber, name, opts)
	_ = bar.Finish()
	fmt.Println()
	if err != nil {
		switch {
		case errors.Is(err, database.ErrConflict):
			return fmt.Errorf("roll number %s is already registered", rollNumber)
		case capture.IsCancelled(err):
			return errors.New("registration cancelled")
		}
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Registered %s (%s) with %d samples\n", res.Name, res.RollNumber, res.SamplesCaptured)
	return nil
}

// verifyStudent runs an interactive verification and prints the outcome.
func verifyStudent(ctx context.Context, svc *attendance.Service, rollNumber string, frames int) error {
	opts := svc.InteractiveVerifyOptions()
	if frames > 0 {
		opts.MaxFrames = frames
	}

	fmt.Printf("Look at the camera. Verifying %s (Ctrl+C to cancel)...\n", rollNumber)
	res, err := svc.Verify(ctx, rollNumber, opts)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNoProfiles):
			return errors.New("no students registered yet")
		case errors.Is(err, attendance.ErrUnknownStudent):
			return fmt.Errorf("roll number %s is not registered", rollNumber)
		}
		return fmt.Errorf("verification failed: %w", err)
	}

	printVerifyResult(res)
	return nil
}

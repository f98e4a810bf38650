package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/recognition"
	"github.com/kozaktomas/face-attendance/internal/samples"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// Service is the facade shared by the interactive CLI and the HTTP API.
type Service struct {
	store   *samples.Store
	engine  *recognition.Engine
	station *capture.Station
	ledger  *Ledger
	tuning  config.TuningConfig
}

// NewService wires the service components.
func NewService(store *samples.Store, engine *recognition.Engine, station *capture.Station, ledger *Ledger, tuning config.TuningConfig) *Service {
	return &Service{
		store:   store,
		engine:  engine,
		station: station,
		ledger:  ledger,
		tuning:  tuning,
	}
}

// RegisterOptions control a registration capture.
type RegisterOptions struct {
	Samples  int
	Progress func(captured, target int)
}

// RegisterResult describes a completed registration.
type RegisterResult struct {
	RollNumber      string
	Name            string
	SamplesCaptured int
}

// VerifyOptions control a verification attempt.
type VerifyOptions struct {
	MaxFrames int
	Observer  func(frame, faces int)
}

// VerifyResult is a verification outcome plus the attendance write it caused.
type VerifyResult struct {
	*capture.Outcome
	Attendance MarkStatus // empty unless the outcome was Accepted
}

// Status summarizes the service for health reporting.
type Status struct {
	StudentsLoaded int
	ModelTrained   bool
	StoreConnected bool
}

// InteractiveRegisterOptions returns the sample count used by the CLI.
func (s *Service) InteractiveRegisterOptions() RegisterOptions {
	return RegisterOptions{Samples: s.tuning.Register.InteractiveSamples}
}

// ServiceRegisterOptions returns the sample count used by the HTTP API.
func (s *Service) ServiceRegisterOptions() RegisterOptions {
	return RegisterOptions{Samples: s.tuning.Register.ServiceSamples}
}

// InteractiveVerifyOptions returns the frame budget used by the CLI.
func (s *Service) InteractiveVerifyOptions() VerifyOptions {
	return VerifyOptions{MaxFrames: s.tuning.Verify.InteractiveMaxFrames}
}

// ServiceVerifyOptions converts an API timeout into a frame budget.
func (s *Service) ServiceVerifyOptions(timeoutSeconds int) VerifyOptions {
	return VerifyOptions{MaxFrames: s.tuning.Verify.ServiceMaxFrames(timeoutSeconds)}
}

// Reload retrains the recognizer from the store.
func (s *Service) Reload(ctx context.Context) (recognition.LoadReport, error) {
	if !database.IsInitialized() {
		return recognition.LoadReport{}, ErrStoreUnavailable
	}
	report, err := s.engine.Reload(ctx, s.store)
	if err != nil {
		return report, fmt.Errorf("reload face profiles: %w", storeError(err))
	}
	return report, nil
}

// Register captures face samples for a new student and stores them.
// It returns database.ErrConflict when the roll number is already taken.
func (s *Service) Register(ctx context.Context, rollNumber, name string, opts RegisterOptions) (*RegisterResult, error) {
	rollNumber = strings.TrimSpace(rollNumber)
	name = strings.TrimSpace(name)
	if rollNumber == "" || name == "" {
		return nil, fmt.Errorf("%w: roll number and name are required", ErrInvalidInput)
	}
	if !database.IsInitialized() {
		return nil, ErrStoreUnavailable
	}

	exists, err := s.store.Exists(ctx, rollNumber)
	if err != nil {
		return nil, storeError(err)
	}
	if exists {
		return nil, fmt.Errorf("roll number %s: %w", rollNumber, database.ErrConflict)
	}

	sess, err := s.station.Begin()
	if err != nil {
		return nil, err
	}
	defer sess.End()

	reg := s.tuning.Register
	images, err := sess.CollectSamples(ctx, capture.CollectOptions{
		Samples:        opts.Samples,
		MinSamples:     reg.MinSamples,
		EqualizeEvery:  reg.EqualizeEvery,
		MaxFrames:      reg.MaxFrames,
		SampleInterval: reg.SampleInterval(),
		Progress:       opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	// The capture is done; a client going away must not lose the student.
	ctx = context.WithoutCancel(ctx)
	if err := s.store.Save(ctx, rollNumber, name, images); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, fmt.Errorf("roll number %s: %w", rollNumber, err)
		}
		return nil, err
	}
	slog.Info("student registered", "roll_number", rollNumber, "samples", len(images))

	if _, err := s.engine.Reload(ctx, s.store); err != nil {
		slog.Error("reloading face profiles after registration", "error", err)
	}

	return &RegisterResult{RollNumber: rollNumber, Name: name, SamplesCaptured: len(images)}, nil
}

// Verify checks that the person in front of the camera is rollNumber and
// marks attendance when they are.
func (s *Service) Verify(ctx context.Context, rollNumber string, opts VerifyOptions) (*VerifyResult, error) {
	rollNumber = strings.TrimSpace(rollNumber)
	if rollNumber == "" {
		return nil, fmt.Errorf("%w: roll number is required", ErrInvalidInput)
	}
	if s.engine.StudentCount() == 0 {
		return nil, ErrNoProfiles
	}
	if !s.engine.Known(rollNumber) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, rollNumber)
	}

	sess, err := s.station.Begin()
	if err != nil {
		return nil, err
	}
	outcome, err := sess.Verify(ctx, rollNumber, capture.VerifyOptions{
		MaxFrames:     opts.MaxFrames,
		FrameInterval: s.tuning.Verify.FrameInterval(),
		Observer:      opts.Observer,
	})
	sess.End()
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Outcome: outcome}
	slog.Info("verification finished", "roll_number", rollNumber, "state", outcome.State.String(),
		"frames", outcome.Frames, "distance", outcome.Distance)

	if outcome.State == capture.Accepted {
		status, err := s.ledger.Mark(context.WithoutCancel(ctx), outcome.Roll, outcome.Name)
		if err != nil {
			slog.Error("marking attendance", "roll_number", outcome.Roll, "error", err)
		}
		result.Attendance = status
	}
	return result, nil
}

// Students lists registered students whose name or roll number matches
// query. An empty query lists everyone.
func (s *Service) Students(ctx context.Context, query string) ([]database.StoredStudent, error) {
	reader, err := database.GetStudentReader(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	students, err := reader.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return students, nil
	}

	var filtered []database.StoredStudent
	for _, st := range students {
		if vision.NameMatches(st.Name, query) || strings.Contains(strings.ToLower(st.RollNumber), strings.ToLower(strings.TrimSpace(query))) {
			filtered = append(filtered, st)
		}
	}
	return filtered, nil
}

// Student returns one registered student. It fails with ErrUnknownStudent
// when the roll number is not registered.
func (s *Service) Student(ctx context.Context, rollNumber string) (*database.StoredStudent, error) {
	rollNumber = strings.TrimSpace(rollNumber)
	if rollNumber == "" {
		return nil, fmt.Errorf("%w: roll number is required", ErrInvalidInput)
	}
	reader, err := database.GetStudentReader(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	st, err := reader.GetStudent(ctx, rollNumber)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, rollNumber)
	}
	return st, nil
}

// Report returns the attendance for date, or today when date is empty.
func (s *Service) Report(ctx context.Context, date string) (string, []database.AttendanceRecord, error) {
	if date == "" {
		date = s.ledger.Today()
	}
	records, err := s.ledger.Report(ctx, date)
	return date, records, err
}

// Status reports loaded profiles and store connectivity.
func (s *Service) Status() Status {
	return Status{
		StudentsLoaded: s.engine.StudentCount(),
		ModelTrained:   s.engine.Trained(),
		StoreConnected: database.IsInitialized(),
	}
}

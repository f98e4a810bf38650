package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/blob"
	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/database/postgres"
	"github.com/kozaktomas/face-attendance/internal/recognition"
	"github.com/kozaktomas/face-attendance/internal/samples"
	"github.com/kozaktomas/face-attendance/internal/vision"
	"github.com/kozaktomas/face-attendance/internal/vision/opencv"
)

// app holds the wired components shared by all commands.
type app struct {
	cfg      *config.Config
	svc      *attendance.Service
	pool     *postgres.Pool
	detector *opencv.CascadeDetector
}

// registerBackends registers the PostgreSQL repositories as the database backend.
func registerBackends(pool *postgres.Pool) {
	studentRepo := postgres.NewStudentRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	database.RegisterPostgresBackend(
		func() database.StudentWriter { return studentRepo },
		func() database.AttendanceWriter { return attendanceRepo },
	)
}

// connectStore opens the PostgreSQL pool and registers the repositories.
// Without DATABASE_URL it fails unless allowDegraded is set, in which case
// persistence stays disabled.
func (a *app) connectStore(allowDegraded bool) error {
	if a.cfg.Database.URL == "" {
		if !allowDegraded {
			return errors.New("DATABASE_URL environment variable is required")
		}
		slog.Warn("DATABASE_URL not set, running without a student store")
		return nil
	}

	fmt.Printf("Connecting to PostgreSQL database...\n")
	pool, err := postgres.Initialize(&a.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	a.pool = pool
	registerBackends(pool)
	return nil
}

// newStoreApp wires a service for store-only queries (students, reports).
// It does not touch the camera or train the recognizer.
func newStoreApp(cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}
	if err := a.connectStore(false); err != nil {
		return nil, err
	}
	engine := recognition.NewEngine(func() vision.Recognizer { return opencv.NewLBPHRecognizer() })
	a.svc = attendance.NewService(samples.NewStore(nil), engine, nil, attendance.NewLedger(), cfg.Tuning)
	return a, nil
}

// newApp connects to the store, loads the cascade and trains the recognizer
// from the stored samples.
func newApp(ctx context.Context, cfg *config.Config, allowDegraded bool) (*app, error) {
	a := &app{cfg: cfg}
	if err := a.connectStore(allowDegraded); err != nil {
		return nil, err
	}

	blobs, err := blob.New(cfg.Blob)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	detector, err := opencv.NewCascadeDetector(cfg.Camera.CascadePath, cfg.Tuning.Detection)
	if err != nil {
		a.close()
		return nil, err
	}
	a.detector = detector

	engine := recognition.NewEngine(func() vision.Recognizer { return opencv.NewLBPHRecognizer() })
	station := capture.NewStation(opencv.CameraSource{Device: cfg.Camera.Device}, detector,
		opencv.HistogramEqualizer{}, engine, cfg.Tuning.Recognition)
	a.svc = attendance.NewService(samples.NewStore(blobs), engine, station, attendance.NewLedger(), cfg.Tuning)

	if database.IsInitialized() {
		report, err := a.svc.Reload(ctx)
		if err != nil {
			a.close()
			return nil, err
		}
		fmt.Printf("Loaded %d face profiles (%d samples)\n", report.Students, report.Samples)
		for _, w := range report.Warnings {
			fmt.Printf("Warning: %v\n", w)
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			slog.Warn("closing face detector", "error", err)
		}
	}
	if a.pool != nil {
		if err := a.pool.Close(); err != nil {
			slog.Warn("closing database pool", "error", err)
		}
	}
}

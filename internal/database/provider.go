package database

import (
	"context"
	"fmt"
	"sync"
)

var (
	providerMu               sync.RWMutex
	postgresStudentWriter    func() StudentWriter
	postgresAttendanceWriter func() AttendanceWriter
	postgresInitialized      bool
)

// RegisterPostgresBackend registers PostgreSQL repository constructors.
// This is called by the command wiring to avoid import cycles.
func RegisterPostgresBackend(
	studentWriter func() StudentWriter,
	attendanceWriter func() AttendanceWriter,
) {
	providerMu.Lock()
	defer providerMu.Unlock()
	postgresStudentWriter = studentWriter
	postgresAttendanceWriter = attendanceWriter
	postgresInitialized = true
}

// ResetForTesting clears all registered backends.
func ResetForTesting() {
	providerMu.Lock()
	defer providerMu.Unlock()
	postgresStudentWriter = nil
	postgresAttendanceWriter = nil
	postgresInitialized = false
}

// IsInitialized returns whether the PostgreSQL backend has been initialized.
func IsInitialized() bool {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return postgresInitialized
}

// GetStudentReader returns a StudentReader from the PostgreSQL backend
func GetStudentReader(ctx context.Context) (StudentReader, error) {
	return GetStudentWriter(ctx)
}

// GetStudentWriter returns a StudentWriter from the PostgreSQL backend
func GetStudentWriter(ctx context.Context) (StudentWriter, error) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	if !postgresInitialized {
		return nil, ErrNotInitialized
	}
	if postgresStudentWriter == nil {
		return nil, fmt.Errorf("PostgreSQL student writer not registered")
	}
	return postgresStudentWriter(), nil
}

// GetAttendanceReader returns an AttendanceReader from the PostgreSQL backend
func GetAttendanceReader(ctx context.Context) (AttendanceReader, error) {
	return GetAttendanceWriter(ctx)
}

// GetAttendanceWriter returns an AttendanceWriter from the PostgreSQL backend
func GetAttendanceWriter(ctx context.Context) (AttendanceWriter, error) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	if !postgresInitialized {
		return nil, ErrNotInitialized
	}
	if postgresAttendanceWriter == nil {
		return nil, fmt.Errorf("PostgreSQL attendance writer not registered")
	}
	return postgresAttendanceWriter(), nil
}

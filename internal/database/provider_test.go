package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/database/mock"
)

func TestProvider_NotInitialized(t *testing.T) {
	database.ResetForTesting()
	ctx := context.Background()

	if database.IsInitialized() {
		t.Fatal("expected backend to be uninitialized")
	}
	if _, err := database.GetStudentReader(ctx); !errors.Is(err, database.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := database.GetAttendanceWriter(ctx); !errors.Is(err, database.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestProvider_RegisteredBackend(t *testing.T) {
	t.Cleanup(database.ResetForTesting)
	ctx := context.Background()

	students := mock.NewMockStudentWriter()
	attendance := mock.NewMockAttendanceWriter(students)
	mock.Register(students, attendance)

	if !database.IsInitialized() {
		t.Fatal("expected backend to be initialized")
	}

	w, err := database.GetStudentWriter(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.CreateStudent(ctx, database.StoredStudent{RollNumber: "S1", Name: "Alice"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	r, err := database.GetStudentReader(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := r.HasStudent(ctx, "S1"); !ok {
		t.Error("expected student written through the writer to be visible through the reader")
	}

	aw, err := database.GetAttendanceWriter(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := aw.RecordAttendance(ctx, database.AttendanceRecord{RollNumber: "ghost", Date: "2024-05-01"}); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown student, got %v", err)
	}
}

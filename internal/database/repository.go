package database

import (
	"context"
)

// StudentReader provides read-only access to student records
type StudentReader interface {
	// GetStudent retrieves a student by roll number, returns nil if not found
	GetStudent(ctx context.Context, rollNumber string) (*StoredStudent, error)
	// HasStudent checks if a student with the given roll number exists
	HasStudent(ctx context.Context, rollNumber string) (bool, error)
	// ListStudents returns all students ordered by roll number
	ListStudents(ctx context.Context) ([]StoredStudent, error)
}

// StudentWriter provides write access to student records
type StudentWriter interface {
	StudentReader

	// CreateStudent inserts a new student. Returns ErrConflict if the roll
	// number is already registered; the existing record is left untouched.
	CreateStudent(ctx context.Context, student StoredStudent) error
}

// AttendanceReader provides read-only access to the attendance ledger
type AttendanceReader interface {
	// GetAttendanceByDate returns all records for a date (YYYY-MM-DD) ordered by time of day
	GetAttendanceByDate(ctx context.Context, date string) ([]AttendanceRecord, error)
}

// AttendanceWriter provides write access to the attendance ledger
type AttendanceWriter interface {
	AttendanceReader

	// RecordAttendance appends a record and increments the student's
	// attendance counter in one transaction. Returns false without writing
	// when a record for the same roll number and date already exists.
	// Returns ErrNotFound if the student does not exist.
	RecordAttendance(ctx context.Context, record AttendanceRecord) (bool, error)
}

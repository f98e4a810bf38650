// Package mock provides mock implementations of database interfaces for testing.
// Like a database driver, lists and writes fail once their context is done.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/kozaktomas/face-attendance/internal/database"
)

// MockStudentWriter is a mock implementation of database.StudentWriter
type MockStudentWriter struct {
	mu       sync.RWMutex
	students map[string]*database.StoredStudent

	// Error injection
	GetError    error
	HasError    error
	ListError   error
	CreateError error
}

// NewMockStudentWriter creates a new mock student writer
func NewMockStudentWriter() *MockStudentWriter {
	return &MockStudentWriter{
		students: make(map[string]*database.StoredStudent),
	}
}

// AddStudent adds a student to the mock store, replacing any existing one
func (m *MockStudentWriter) AddStudent(s database.StoredStudent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[s.RollNumber] = &s
}

// GetStudent retrieves a student by roll number
func (m *MockStudentWriter) GetStudent(ctx context.Context, rollNumber string) (*database.StoredStudent, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.students[rollNumber]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// HasStudent checks if a student exists
func (m *MockStudentWriter) HasStudent(ctx context.Context, rollNumber string) (bool, error) {
	if m.HasError != nil {
		return false, m.HasError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.students[rollNumber]
	return ok, nil
}

// ListStudents returns all students ordered by roll number
func (m *MockStudentWriter) ListStudents(ctx context.Context) ([]database.StoredStudent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]database.StoredStudent, 0, len(m.students))
	for _, s := range m.students {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RollNumber < result[j].RollNumber })
	return result, nil
}

// CreateStudent inserts a new student or returns database.ErrConflict
func (m *MockStudentWriter) CreateStudent(ctx context.Context, s database.StoredStudent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[s.RollNumber]; ok {
		return database.ErrConflict
	}
	m.students[s.RollNumber] = &s
	return nil
}

// bumpAttendance increments the counter of an existing student.
func (m *MockStudentWriter) bumpAttendance(rec database.AttendanceRecord) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[rec.RollNumber]
	if !ok {
		return false
	}
	s.TotalAttendance++
	ts := rec.Timestamp
	s.LastAttendance = &ts
	return true
}

// MockAttendanceWriter is a mock implementation of database.AttendanceWriter.
// When Students is set, recording checks student existence and updates the
// student's counters like the PostgreSQL backend does.
type MockAttendanceWriter struct {
	mu      sync.RWMutex
	records []database.AttendanceRecord

	Students *MockStudentWriter

	// Error injection
	GetError    error
	RecordError error
}

// NewMockAttendanceWriter creates a new mock attendance writer
func NewMockAttendanceWriter(students *MockStudentWriter) *MockAttendanceWriter {
	return &MockAttendanceWriter{Students: students}
}

// GetAttendanceByDate returns records for the date ordered by time of day
func (m *MockAttendanceWriter) GetAttendanceByDate(ctx context.Context, date string) ([]database.AttendanceRecord, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []database.AttendanceRecord
	for _, r := range m.records {
		if r.Date == date {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Time < result[j].Time })
	return result, nil
}

func (m *MockAttendanceWriter) hasLocked(rollNumber, date string) bool {
	for _, r := range m.records {
		if r.RollNumber == rollNumber && r.Date == date {
			return true
		}
	}
	return false
}

// RecordAttendance appends the record unless one exists for the same day
func (m *MockAttendanceWriter) RecordAttendance(ctx context.Context, rec database.AttendanceRecord) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if m.RecordError != nil {
		return false, m.RecordError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasLocked(rec.RollNumber, rec.Date) {
		return false, nil
	}
	if m.Students != nil && !m.Students.bumpAttendance(rec) {
		return false, database.ErrNotFound
	}
	m.records = append(m.records, rec)
	return true, nil
}

// Records returns a copy of all stored records
func (m *MockAttendanceWriter) Records() []database.AttendanceRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]database.AttendanceRecord(nil), m.records...)
}

// Register installs both mocks as the active database backend.
func Register(students *MockStudentWriter, attendance *MockAttendanceWriter) {
	database.RegisterPostgresBackend(
		func() database.StudentWriter { return students },
		func() database.AttendanceWriter { return attendance },
	)
}

// Verify interface compliance
var (
	_ database.StudentWriter    = (*MockStudentWriter)(nil)
	_ database.AttendanceWriter = (*MockAttendanceWriter)(nil)
)

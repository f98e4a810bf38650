package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kozaktomas/face-attendance/internal/database"
)

// StudentRepository provides PostgreSQL-backed student storage
type StudentRepository struct {
	pool *Pool
}

// NewStudentRepository creates a new PostgreSQL student repository
func NewStudentRepository(pool *Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `roll_number, name, face_data, sample_count, created_at, total_attendance, last_attendance`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*database.StoredStudent, error) {
	var s database.StoredStudent
	var last sql.NullTime
	if err := row.Scan(&s.RollNumber, &s.Name, &s.FaceData, &s.SampleCount,
		&s.CreatedAt, &s.TotalAttendance, &last); err != nil {
		return nil, err
	}
	if last.Valid {
		t := last.Time
		s.LastAttendance = &t
	}
	return &s, nil
}

// GetStudent retrieves a student by roll number, returns nil if not found
func (r *StudentRepository) GetStudent(ctx context.Context, rollNumber string) (*database.StoredStudent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE roll_number = $1`, rollNumber)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get student %s: %w", rollNumber, err)
	}
	return s, nil
}

// HasStudent checks if a student with the given roll number exists
func (r *StudentRepository) HasStudent(ctx context.Context, rollNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE roll_number = $1)`, rollNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check student %s: %w", rollNumber, err)
	}
	return exists, nil
}

// ListStudents returns all students ordered by roll number
func (r *StudentRepository) ListStudents(ctx context.Context) ([]database.StoredStudent, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY roll_number`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []database.StoredStudent
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

// CreateStudent inserts a new student, returning database.ErrConflict when
// the roll number is taken.
func (r *StudentRepository) CreateStudent(ctx context.Context, student database.StoredStudent) error {
	createdAt := student.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := r.pool.Exec(ctx, `
		INSERT INTO students (roll_number, name, face_data, sample_count, created_at, total_attendance)
		VALUES ($1, $2, $3, $4, $5, 0)
		ON CONFLICT (roll_number) DO NOTHING
	`, student.RollNumber, student.Name, student.FaceData, student.SampleCount, createdAt)
	if err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			return database.ErrConflict
		}
		return fmt.Errorf("create student %s: %w", student.RollNumber, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create student %s: %w", student.RollNumber, err)
	}
	if affected == 0 {
		return database.ErrConflict
	}
	return nil
}

// Verify interface compliance
var _ database.StudentWriter = (*StudentRepository)(nil)

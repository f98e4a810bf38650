package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/database"
)

// AttendanceRepository provides PostgreSQL-backed attendance storage
type AttendanceRepository struct {
	pool *Pool
}

// NewAttendanceRepository creates a new PostgreSQL attendance repository
func NewAttendanceRepository(pool *Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// GetAttendanceByDate returns all records for a date ordered by time of day
func (r *AttendanceRepository) GetAttendanceByDate(ctx context.Context, date string) ([]database.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, roll_number, name, recorded_at, date, time, status
		FROM attendance
		WHERE date = $1
		ORDER BY time, roll_number
	`, date)
	if err != nil {
		return nil, fmt.Errorf("get attendance for %s: %w", date, err)
	}
	defer rows.Close()

	var records []database.AttendanceRecord
	for rows.Next() {
		var rec database.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.RollNumber, &rec.Name, &rec.Timestamp,
			&rec.Date, &rec.Time, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return records, nil
}

// RecordAttendance inserts the record and bumps the student's counters in
// one transaction. A second record for the same day is a no-op.
func (r *AttendanceRepository) RecordAttendance(ctx context.Context, rec database.AttendanceRecord) (bool, error) {
	inserted := false
	err := r.pool.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO attendance (id, roll_number, name, recorded_at, date, time, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (roll_number, date) DO NOTHING
		`, rec.ID, rec.RollNumber, rec.Name, rec.Timestamp, rec.Date, rec.Time, rec.Status)
		if err != nil {
			if pqErrorCode(err) == pqForeignKeyViolation {
				return database.ErrNotFound
			}
			return fmt.Errorf("insert attendance: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
		if affected == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE students
			SET total_attendance = total_attendance + 1, last_attendance = $2
			WHERE roll_number = $1
		`, rec.RollNumber, rec.Timestamp); err != nil {
			return fmt.Errorf("update attendance counter: %w", err)
		}
		inserted = true
		return nil
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("record attendance for %s: %w", rec.RollNumber, err)
	}
	return inserted, nil
}

// Verify interface compliance
var _ database.AttendanceWriter = (*AttendanceRepository)(nil)

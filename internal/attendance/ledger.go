package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/database"
)

// MarkStatus is the result of recording a check-in.
type MarkStatus string

const (
	MarkMarked        MarkStatus = "marked"
	MarkAlreadyMarked MarkStatus = "already_marked"
	MarkFailed        MarkStatus = "failed"
)

// Ledger records at most one check-in per student per day.
type Ledger struct {
	now   func() time.Time
	newID func() string
}

// NewLedger creates a ledger using the local clock.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now, newID: uuid.NewString}
}

// Today returns the current date in report format.
func (l *Ledger) Today() string {
	return l.now().Format(constants.DateLayout)
}

// Mark records that roll checked in now. A second check-in on the same day
// returns MarkAlreadyMarked and writes nothing.
func (l *Ledger) Mark(ctx context.Context, rollNumber, name string) (MarkStatus, error) {
	writer, err := database.GetAttendanceWriter(ctx)
	if err != nil {
		return MarkFailed, storeError(err)
	}

	now := l.now()
	inserted, err := writer.RecordAttendance(ctx, database.AttendanceRecord{
		ID:         l.newID(),
		RollNumber: rollNumber,
		Name:       name,
		Timestamp:  now,
		Date:       now.Format(constants.DateLayout),
		Time:       now.Format(constants.TimeLayout),
		Status:     constants.StatusPresent,
	})
	if err != nil {
		return MarkFailed, fmt.Errorf("mark attendance for %s: %w", rollNumber, err)
	}
	if !inserted {
		return MarkAlreadyMarked, nil
	}
	return MarkMarked, nil
}

// Report returns the check-ins for date ordered by time of day, ties broken
// by roll number.
func (l *Ledger) Report(ctx context.Context, date string) ([]database.AttendanceRecord, error) {
	if !isDateShaped(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	reader, err := database.GetAttendanceReader(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	records, err := reader.GetAttendanceByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("attendance report for %s: %w", date, err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Time != records[j].Time {
			return records[i].Time < records[j].Time
		}
		return records[i].RollNumber < records[j].RollNumber
	})
	return records, nil
}

// isDateShaped reports whether s looks like YYYY-MM-DD. Calendar validity is
// not checked; an impossible date simply has no records.
func isDateShaped(s string) bool {
	if len(s) != len(constants.DateLayout) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 4 || i == 7 {
			if c != '-' {
				return false
			}
		} else if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

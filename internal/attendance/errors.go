// Package attendance ties registration, verification and the attendance
// ledger together behind one service used by the CLI and the HTTP API.
package attendance

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/database"
)

var (
	// ErrStoreUnavailable is returned when no database backend is configured.
	ErrStoreUnavailable = errors.New("student store is not connected")
	// ErrNoProfiles is returned by Verify when no student can be recognized.
	ErrNoProfiles = errors.New("no registered face profiles")
	// ErrUnknownStudent is returned by Verify for a roll number without samples.
	ErrUnknownStudent = errors.New("student is not registered")
	// ErrInvalidInput is returned for missing roll numbers or names.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDate is returned for report dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

func storeError(err error) error {
	if errors.Is(err, database.ErrNotInitialized) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

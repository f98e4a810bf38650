package database

import (
	"time"
)

// StoredStudent represents a registered student.
// FaceData holds the encoded face samples (see package samples); it is empty
// for students registered without usable images.
type StoredStudent struct {
	RollNumber      string
	Name            string
	FaceData        string
	SampleCount     int
	CreatedAt       time.Time
	TotalAttendance int
	LastAttendance  *time.Time
}

// HasFaceData reports whether the student carries encoded face samples.
func (s *StoredStudent) HasFaceData() bool {
	return s.FaceData != ""
}

// AttendanceRecord represents one check-in. At most one record exists per
// (RollNumber, Date).
type AttendanceRecord struct {
	ID         string
	RollNumber string
	Name       string
	Timestamp  time.Time
	Date       string // YYYY-MM-DD
	Time       string // HH:MM:SS
	Status     string
}

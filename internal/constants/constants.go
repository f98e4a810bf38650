// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Storage layout constants
const (
	// StudentPhotoPrefix is the blob key prefix for representative student photos
	StudentPhotoPrefix = "student_photos/"

	// StudentPhotoExt is the extension (and format) of stored student photos
	StudentPhotoExt = ".jpg"

	// StudentPhotoContentType is the MIME type used when uploading student photos
	StudentPhotoContentType = "image/jpeg"

	// JPEGQuality is the encoder quality used for student photos
	JPEGQuality = 90
)

// Attendance constants
const (
	// StatusPresent is the only status written by face check-ins
	StatusPresent = "present"

	// DateLayout is the calendar date format used in attendance records and reports
	DateLayout = "2006-01-02"

	// TimeLayout is the time-of-day format used in attendance records
	TimeLayout = "15:04:05"
)

// StudentPhotoKey returns the blob key for a student's representative photo.
func StudentPhotoKey(rollNumber string) string {
	return StudentPhotoPrefix + rollNumber + StudentPhotoExt
}

package samples

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/kozaktomas/face-attendance/internal/blob"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// Record is a student together with the decoded face samples.
type Record struct {
	RollNumber string
	Name       string
	Images     []*image.Gray
}

// DecodeError reports a student whose stored samples could not be decoded.
type DecodeError struct {
	RollNumber string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("student %s: %v", e.RollNumber, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Store reads and writes face samples through the registered database
// backend. Photos go to blobs when it is non-nil.
type Store struct {
	blobs blob.Store
	now   func() time.Time
}

// NewStore creates a sample store. blobs may be nil.
func NewStore(blobs blob.Store) *Store {
	return &Store{blobs: blobs, now: time.Now}
}

// Load returns every student ordered by roll number. Students whose samples
// fail to decode are skipped and reported as *DecodeError warnings.
func (s *Store) Load(ctx context.Context) ([]Record, []error, error) {
	reader, err := database.GetStudentReader(ctx)
	if err != nil {
		return nil, nil, err
	}

	students, err := reader.ListStudents(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load students: %w", err)
	}

	records := make([]Record, 0, len(students))
	var warnings []error
	for _, st := range students {
		images, err := Decode(st.FaceData)
		if err != nil {
			warnings = append(warnings, &DecodeError{RollNumber: st.RollNumber, Err: err})
			continue
		}
		records = append(records, Record{RollNumber: st.RollNumber, Name: st.Name, Images: images})
	}
	return records, warnings, nil
}

// Exists reports whether the roll number is already registered.
func (s *Store) Exists(ctx context.Context, rollNumber string) (bool, error) {
	reader, err := database.GetStudentReader(ctx)
	if err != nil {
		return false, err
	}
	return reader.HasStudent(ctx, rollNumber)
}

// Save creates the student record. It returns database.ErrConflict when the
// roll number is taken. The first sample is uploaded as the student photo;
// upload failures are logged and do not fail the save.
func (s *Store) Save(ctx context.Context, rollNumber, name string, images []*image.Gray) error {
	writer, err := database.GetStudentWriter(ctx)
	if err != nil {
		return err
	}

	faceData, err := Encode(images)
	if err != nil {
		return err
	}

	err = writer.CreateStudent(ctx, database.StoredStudent{
		RollNumber:  rollNumber,
		Name:        name,
		FaceData:    faceData,
		SampleCount: len(images),
		CreatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return err
		}
		return fmt.Errorf("save student %s: %w", rollNumber, err)
	}

	if s.blobs != nil && len(images) > 0 {
		if err := s.uploadPhoto(ctx, rollNumber, images[0]); err != nil {
			slog.Warn("student photo upload failed", "roll_number", rollNumber, "error", err)
		}
	}
	return nil
}

func (s *Store) uploadPhoto(ctx context.Context, rollNumber string, img *image.Gray) error {
	data, err := vision.EncodeJPEG(img, constants.JPEGQuality)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, constants.StudentPhotoKey(rollNumber), data, constants.StudentPhotoContentType)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-attendance/internal/database"
)

// StudentsHandler lists registered students.
type StudentsHandler struct {
	svc Service
}

// NewStudentsHandler creates a new students handler
func NewStudentsHandler(svc Service) *StudentsHandler {
	return &StudentsHandler{svc: svc}
}

// StudentResponse is a student without the stored face samples.
type StudentResponse struct {
	RollNumber      string     `json:"roll_number"`
	Name            string     `json:"name"`
	SampleCount     int        `json:"sample_count"`
	CreatedAt       time.Time  `json:"created_at"`
	TotalAttendance int        `json:"total_attendance"`
	LastAttendance  *time.Time `json:"last_attendance,omitempty"`
}

func studentToResponse(s database.StoredStudent) StudentResponse {
	return StudentResponse{
		RollNumber:      s.RollNumber,
		Name:            s.Name,
		SampleCount:     s.SampleCount,
		CreatedAt:       s.CreatedAt,
		TotalAttendance: s.TotalAttendance,
		LastAttendance:  s.LastAttendance,
	}
}

// List handles GET /students?q=.
func (h *StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.Students(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	result := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		result = append(result, studentToResponse(s))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"count":    len(result),
		"students": result,
	})
}

// Get handles GET /students/{roll_number}.
func (h *StudentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Student(r.Context(), chi.URLParam(r, "roll_number"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"student": studentToResponse(*st),
	})
}

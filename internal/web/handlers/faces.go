package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/recognition"
)

// FacesHandler handles face verification and registration.
type FacesHandler struct {
	svc Service
}

// NewFacesHandler creates a new faces handler
func NewFacesHandler(svc Service) *FacesHandler {
	return &FacesHandler{svc: svc}
}

// VerifyRequest is the body of POST /verify-face.
type VerifyRequest struct {
	RollNumber     string `json:"roll_number"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// VerifiedResponse is returned when the claimed student was recognized.
type VerifiedResponse struct {
	Success    bool    `json:"success"`
	Verified   bool    `json:"verified"`
	RollNumber string  `json:"roll_number"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Attendance string  `json:"attendance,omitempty"`
}

// RejectedResponse is returned when a different or unknown face was seen.
type RejectedResponse struct {
	Success      bool   `json:"success"`
	Verified     bool   `json:"verified"`
	ExpectedRoll string `json:"expected_roll"`
	DetectedRoll string `json:"detected_roll"`
	DetectedName string `json:"detected_name"`
	Reason       string `json:"reason"`
}

// Verify handles POST /verify-face.
func (h *FacesHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	req.RollNumber = strings.TrimSpace(req.RollNumber)
	if req.RollNumber == "" {
		respondError(w, http.StatusBadRequest, "roll_number is required")
		return
	}
	timeout := min(req.TimeoutSeconds, constants.MaxVerifyTimeoutSeconds)

	res, err := h.svc.Verify(r.Context(), req.RollNumber, h.svc.ServiceVerifyOptions(timeout))
	if err != nil {
		slog.Warn("verify-face failed", "roll_number", sanitizeForLog(req.RollNumber), "error", err)
		respondServiceError(w, err)
		return
	}

	switch res.State {
	case capture.Accepted:
		respondJSON(w, http.StatusOK, VerifiedResponse{
			Success:    true,
			Verified:   true,
			RollNumber: res.Roll,
			Name:       res.Name,
			Confidence: res.Confidence,
			Attendance: string(res.Attendance),
		})
	case capture.Rejected:
		detectedRoll, detectedName := res.Roll, res.Name
		if detectedRoll == "" {
			detectedRoll, detectedName = recognition.UnknownRoll, recognition.UnknownRoll
		}
		respondJSON(w, http.StatusOK, RejectedResponse{
			Success:      true,
			Verified:     false,
			ExpectedRoll: req.RollNumber,
			DetectedRoll: detectedRoll,
			DetectedName: detectedName,
			Reason:       res.Reason,
		})
	case capture.Cancelled:
		respondError(w, http.StatusRequestTimeout, "verification cancelled")
	default:
		respondError(w, http.StatusRequestTimeout, "verification timeout: no matching face detected")
	}
}

// RegisterRequest is the body of POST /register-student.
type RegisterRequest struct {
	RollNumber string `json:"roll_number"`
	Name       string `json:"name"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Success         bool   `json:"success"`
	RollNumber      string `json:"roll_number"`
	Name            string `json:"name"`
	SamplesCaptured int    `json:"samples_captured"`
}

// Register handles POST /register-student.
func (h *FacesHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	req.RollNumber = strings.TrimSpace(req.RollNumber)
	req.Name = strings.TrimSpace(req.Name)
	if req.RollNumber == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "roll_number and name are required")
		return
	}

	res, err := h.svc.Register(r.Context(), req.RollNumber, req.Name, h.svc.ServiceRegisterOptions())
	if err != nil {
		slog.Warn("register-student failed", "roll_number", sanitizeForLog(req.RollNumber), "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RegisterResponse{
		Success:         true,
		RollNumber:      res.RollNumber,
		Name:            res.Name,
		SamplesCaptured: res.SamplesCaptured,
	})
}

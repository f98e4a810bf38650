// Package handlers implements the HTTP endpoints of the attendance service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/database"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// Service is the part of attendance.Service the handlers use.
type Service interface {
	Register(ctx context.Context, rollNumber, name string, opts attendance.RegisterOptions) (*attendance.RegisterResult, error)
	Verify(ctx context.Context, rollNumber string, opts attendance.VerifyOptions) (*attendance.VerifyResult, error)
	ServiceRegisterOptions() attendance.RegisterOptions
	ServiceVerifyOptions(timeoutSeconds int) attendance.VerifyOptions
	Students(ctx context.Context, query string) ([]database.StoredStudent, error)
	Student(ctx context.Context, rollNumber string) (*database.StoredStudent, error)
	Report(ctx context.Context, date string) (string, []database.AttendanceRecord, error)
	Status() attendance.Status
}

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, attendance.ErrInvalidInput), errors.Is(err, attendance.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, attendance.ErrNoProfiles), errors.Is(err, attendance.ErrUnknownStudent):
		return http.StatusNotFound
	case errors.Is(err, capture.ErrBusy), errors.Is(err, database.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, capture.ErrInsufficientSamples):
		return http.StatusUnprocessableEntity
	case errors.Is(err, capture.ErrCameraUnavailable), errors.Is(err, attendance.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError sends err with the status errorStatus picks.
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, errorStatus(err), err.Error())
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

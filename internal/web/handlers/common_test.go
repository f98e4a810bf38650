package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/database"
)

func TestRespondJSON_SetsContentTypeAndStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondJSON(recorder, http.StatusCreated, map[string]string{"status": "ok"})

	if recorder.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}
	if recorder.Body.String() != "{\"status\":\"ok\"}\n" {
		t.Errorf("unexpected body %q", recorder.Body.String())
	}
}

func TestRespondJSON_NilData(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondJSON(recorder, http.StatusOK, nil)

	if recorder.Body.Len() != 0 {
		t.Errorf("expected empty body for nil data, got '%s'", recorder.Body.String())
	}
}

func TestRespondError_Shape(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, http.StatusBadRequest, "something went wrong")

	assertJSONError(t, recorder, http.StatusBadRequest)
	if got := decodeBody(t, recorder)["error"]; got != "something went wrong" {
		t.Errorf("unexpected error message %v", got)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{attendance.ErrInvalidInput, http.StatusBadRequest},
		{attendance.ErrInvalidDate, http.StatusBadRequest},
		{attendance.ErrNoProfiles, http.StatusNotFound},
		{fmt.Errorf("%w: S9", attendance.ErrUnknownStudent), http.StatusNotFound},
		{capture.ErrBusy, http.StatusConflict},
		{fmt.Errorf("roll number S1: %w", database.ErrConflict), http.StatusConflict},
		{capture.ErrInsufficientSamples, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: no device", capture.ErrCameraUnavailable), http.StatusServiceUnavailable},
		{attendance.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{context.Canceled, http.StatusRequestTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			if got := errorStatus(tc.err); got != tc.want {
				t.Errorf("errorStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestDecodeJSON_RejectsOversizedBody(t *testing.T) {
	body := `{"roll_number":"` + strings.Repeat("x", 70<<10) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/verify-face", strings.NewReader(body))
	var dst VerifyRequest
	if err := decodeJSON(httptest.NewRecorder(), req, &dst); err == nil {
		t.Error("expected error for oversized body")
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("S1\r\nfake log line"); got != "S1fake log line" {
		t.Errorf("unexpected sanitized value %q", got)
	}
}

func TestHealthCheck(t *testing.T) {
	recorder := httptest.NewRecorder()
	HealthCheck(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK || decodeBody(t, recorder)["status"] != "ok" {
		t.Errorf("unexpected health response %d %s", recorder.Code, recorder.Body.String())
	}
}

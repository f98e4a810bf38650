package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/database"
)

type stubService struct{}

func (stubService) Register(context.Context, string, string, attendance.RegisterOptions) (*attendance.RegisterResult, error) {
	return nil, attendance.ErrStoreUnavailable
}

func (stubService) Verify(context.Context, string, attendance.VerifyOptions) (*attendance.VerifyResult, error) {
	return nil, attendance.ErrNoProfiles
}

func (stubService) ServiceRegisterOptions() attendance.RegisterOptions {
	return attendance.RegisterOptions{Samples: 50}
}

func (stubService) ServiceVerifyOptions(int) attendance.VerifyOptions {
	return attendance.VerifyOptions{MaxFrames: 150}
}

func (stubService) Students(context.Context, string) ([]database.StoredStudent, error) {
	return nil, nil
}

func (stubService) Student(context.Context, string) (*database.StoredStudent, error) {
	return nil, attendance.ErrStoreUnavailable
}

func (stubService) Report(context.Context, string) (string, []database.AttendanceRecord, error) {
	return "2024-05-01", nil, nil
}

func (stubService) Status() attendance.Status {
	return attendance.Status{StudentsLoaded: 0, StoreConnected: false}
}

func testServer() *Server {
	cfg := &config.Config{Web: config.WebConfig{Host: "127.0.0.1", Port: 0}}
	return NewServer(cfg, stubService{})
}

func TestRoutes(t *testing.T) {
	router := testServer().Router()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"status", http.MethodGet, "/status", "", http.StatusOK},
		{"students", http.MethodGet, "/students", "", http.StatusOK},
		{"student degraded", http.MethodGet, "/students/S1", "", http.StatusServiceUnavailable},
		{"attendance", http.MethodGet, "/attendance", "", http.StatusOK},
		{"verify without profiles", http.MethodPost, "/verify-face", `{"roll_number":"S1"}`, http.StatusNotFound},
		{"verify missing roll", http.MethodPost, "/verify-face", `{}`, http.StatusBadRequest},
		{"register degraded", http.MethodPost, "/register-student", `{"roll_number":"S1","name":"Alice"}`, http.StatusServiceUnavailable},
		{"wrong method", http.MethodGet, "/verify-face", "", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRoutes_StatusDegraded(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if body["status"] != "running" || body["firebase_connected"] != false {
		t.Errorf("unexpected degraded status %v", body)
	}
}

func TestRoutes_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/verify-face", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	testServer().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected preflight 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("missing CORS header: %v", rec.Header())
	}
}

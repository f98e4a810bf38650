package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/database"
)

// fakeService is a configurable Service for handler tests.
type fakeService struct {
	registerResult *attendance.RegisterResult
	registerErr    error
	verifyResult   *attendance.VerifyResult
	verifyErr      error
	students       []database.StoredStudent
	studentsErr    error
	student        *database.StoredStudent
	studentErr     error
	reportDate     string
	records        []database.AttendanceRecord
	reportErr      error
	status         attendance.Status

	// recorded arguments
	gotRoll     string
	gotName     string
	gotQuery    string
	gotDate     string
	gotTimeout  int
	gotSamples  int
	gotMaxFrame int
}

func (f *fakeService) Register(ctx context.Context, roll, name string, opts attendance.RegisterOptions) (*attendance.RegisterResult, error) {
	f.gotRoll, f.gotName, f.gotSamples = roll, name, opts.Samples
	return f.registerResult, f.registerErr
}

func (f *fakeService) Verify(ctx context.Context, roll string, opts attendance.VerifyOptions) (*attendance.VerifyResult, error) {
	f.gotRoll, f.gotMaxFrame = roll, opts.MaxFrames
	return f.verifyResult, f.verifyErr
}

func (f *fakeService) ServiceRegisterOptions() attendance.RegisterOptions {
	return attendance.RegisterOptions{Samples: 50}
}

func (f *fakeService) ServiceVerifyOptions(timeoutSeconds int) attendance.VerifyOptions {
	f.gotTimeout = timeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}
	return attendance.VerifyOptions{MaxFrames: timeoutSeconds * 10}
}

func (f *fakeService) Students(ctx context.Context, query string) ([]database.StoredStudent, error) {
	f.gotQuery = query
	return f.students, f.studentsErr
}

func (f *fakeService) Student(ctx context.Context, roll string) (*database.StoredStudent, error) {
	f.gotRoll = roll
	return f.student, f.studentErr
}

func (f *fakeService) Report(ctx context.Context, date string) (string, []database.AttendanceRecord, error) {
	f.gotDate = date
	if date == "" {
		date = f.reportDate
	}
	return date, f.records, f.reportErr
}

func (f *fakeService) Status() attendance.Status {
	return f.status
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody decodes the recorder body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", rec.Body.String(), err)
	}
	return result
}

// assertJSONError checks status code and the {success:false, error} shape.
func assertJSONError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Errorf("expected status %d, got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	result := decodeBody(t, rec)
	if result["success"] != false {
		t.Errorf("expected success=false, got %v", result["success"])
	}
	if msg, _ := result["error"].(string); msg == "" {
		t.Error("expected a non-empty error message")
	}
}

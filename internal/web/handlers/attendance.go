package handlers

import (
	"net/http"
	"time"
)

// AttendanceHandler serves attendance reports.
type AttendanceHandler struct {
	svc Service
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(svc Service) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// AttendanceRecordResponse is one check-in in a report.
type AttendanceRecordResponse struct {
	ID         string    `json:"id"`
	RollNumber string    `json:"roll_number"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     string    `json:"status"`
}

// ReportResponse is the body of GET /attendance.
type ReportResponse struct {
	Success bool                       `json:"success"`
	Date    string                     `json:"date"`
	Count   int                        `json:"count"`
	Records []AttendanceRecordResponse `json:"records"`
}

// Report handles GET /attendance?date=YYYY-MM-DD (default today).
func (h *AttendanceHandler) Report(w http.ResponseWriter, r *http.Request) {
	date, records, err := h.svc.Report(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := ReportResponse{
		Success: true,
		Date:    date,
		Count:   len(records),
		Records: make([]AttendanceRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, AttendanceRecordResponse{
			ID:         rec.ID,
			RollNumber: rec.RollNumber,
			Name:       rec.Name,
			Timestamp:  rec.Timestamp,
			Date:       rec.Date,
			Time:       rec.Time,
			Status:     rec.Status,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

package handlers

import (
	"net/http"
)

// StatusHandler reports service state.
type StatusHandler struct {
	svc Service
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(svc Service) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// StatusResponse represents the status response. FirebaseConnected reports
// the backing store connection; the key is kept for existing kiosk clients.
type StatusResponse struct {
	Status            string `json:"status"`
	StudentsLoaded    int    `json:"students_loaded"`
	ModelTrained      bool   `json:"model_trained"`
	FirebaseConnected bool   `json:"firebase_connected"`
}

// Get handles GET /status.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Status()
	respondJSON(w, http.StatusOK, StatusResponse{
		Status:            "running",
		StudentsLoaded:    st.StudentsLoaded,
		ModelTrained:      st.ModelTrained,
		FirebaseConnected: st.StoreConnected,
	})
}

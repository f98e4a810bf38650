package web

import (
	"github.com/kozaktomas/face-attendance/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	facesHandler := handlers.NewFacesHandler(s.svc)
	statusHandler := handlers.NewStatusHandler(s.svc)
	studentsHandler := handlers.NewStudentsHandler(s.svc)
	attendanceHandler := handlers.NewAttendanceHandler(s.svc)

	s.router.Get("/health", handlers.HealthCheck)
	s.router.Get("/status", statusHandler.Get)

	// Kiosk endpoints
	s.router.Post("/verify-face", facesHandler.Verify)
	s.router.Post("/register-student", facesHandler.Register)

	// Read-only views
	s.router.Get("/students", studentsHandler.List)
	s.router.Get("/students/{roll_number}", studentsHandler.Get)
	s.router.Get("/attendance", attendanceHandler.Report)
}

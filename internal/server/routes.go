package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Generation
	mux.HandleFunc("/api/generate", s.app.GenerateHandler.GenerateHandler) // POST
	mux.HandleFunc("/api/result", s.handleResultRoute)                     // GET, DELETE
	mux.HandleFunc("/api/export", s.app.ExportHandler.ExportPDFHandler)    // GET [?id=]

	// History
	mux.HandleFunc("/api/history", s.app.HistoryHandler.ListHandler) // GET ?limit=
	mux.HandleFunc("/api/history/", s.handleHistoryRoutes)           // GET/DELETE /{id}

	// Housekeeping jobs
	mux.HandleFunc("/api/jobs", s.app.SchedulerHandler.ListJobsHandler)
	mux.HandleFunc("/api/jobs/", s.handleJobRoutes) // POST /{name}/trigger

	// System
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	if s.app.WSHandler != nil {
		mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)
	}

	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleResultRoute routes /api/result requests
func (s *Server) handleResultRoute(w http.ResponseWriter, r *http.Request) {
	RouteByMethod(w, r, MethodRouter{
		http.MethodGet:    s.app.GenerateHandler.CurrentResultHandler,
		http.MethodDelete: s.app.GenerateHandler.ClearResultHandler,
	})
}

// handleHistoryRoutes routes /api/history/{id} requests
func (s *Server) handleHistoryRoutes(w http.ResponseWriter, r *http.Request) {
	RouteByMethod(w, r, MethodRouter{
		http.MethodGet:    s.app.HistoryHandler.GetHandler,
		http.MethodDelete: s.app.HistoryHandler.DeleteHandler,
	})
}

// handleJobRoutes routes /api/jobs/{name}/trigger requests
func (s *Server) handleJobRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/trigger") {
		s.app.SchedulerHandler.TriggerJobHandler(w, r)
		return
	}
	s.app.APIHandler.NotFoundHandler(w, r)
}

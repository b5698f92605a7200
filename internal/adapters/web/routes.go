package web

import "net/http"

// registerRoutes wires up the dashboard endpoints on the given ServeMux.
func registerRoutes(mux *http.ServeMux, s *Server) {
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/health", s.handleHealth)
}

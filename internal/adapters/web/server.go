// Package web serves the dashboard. Each incoming page or API request
// drives one poll tick through the tracker; there is no background timer.
package web

import (
	"log"
	"net/http"

	"github.com/bnema/modelwatch/internal/application"
	"github.com/bnema/modelwatch/internal/ports"
)

// Server is the HTTP dashboard for the session tracker.
type Server struct {
	tracker *application.Tracker
	clock   ports.Clock
	addr    string
}

func NewServer(tracker *application.Tracker, clock ports.Clock, addr string) *Server {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Server{
		tracker: tracker,
		clock:   clock,
		addr:    addr,
	}
}

// Start registers routes and serves until the listener fails (blocking).
func (s *Server) Start() error {
	mux := http.NewServeMux()
	registerRoutes(mux, s)

	log.Printf("modelwatch: serving dashboard on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

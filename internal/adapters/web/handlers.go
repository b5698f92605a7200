package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/bnema/modelwatch/internal/application"
	"github.com/bnema/modelwatch/internal/domain"
	"github.com/bnema/modelwatch/internal/format"
)

type modelPayload struct {
	Name          string `json:"name"`
	Families      string `json:"families"`
	ParameterSize string `json:"parameter_size"`
	Size          string `json:"size"`
	CPUGPUSplit   string `json:"cpu_gpu_split"`
	ExpiresLocal  string `json:"expires_local,omitempty"`
	ExpiresIn     string `json:"expires_in,omitempty"`
}

type sessionPayload struct {
	ModelName     string  `json:"model_name"`
	StartedAt     string  `json:"started_at"`
	EndedAt       *string `json:"ended_at"`
	Families      string  `json:"families"`
	ParameterSize string  `json:"parameter_size"`
	Size          string  `json:"size"`
	CPUGPUSplit   string  `json:"cpu_gpu_split"`
	Duration      string  `json:"duration"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("modelwatch: write JSON response: %v", err)
	}
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorPayload{Error: msg})
}

// displayError maps a fetch failure to the message shown on the dashboard.
func displayError(err error) string {
	switch {
	case errors.Is(err, domain.ErrDaemonUnreachable):
		return "Could not connect to the model daemon. Please ensure it is running and accessible."
	case errors.Is(err, domain.ErrMalformedResponse):
		return "The model daemon returned an unexpected response."
	default:
		return "Error fetching models: " + err.Error()
	}
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.tracker.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, displayError(err))
		return
	}

	writeJSON(w, http.StatusOK, toModelPayloads(models))
}

// handleHistory serves the session history. It triggers a refresh so a
// lone history request still advances the session lifecycle, but serves
// the stored sessions even when the daemon is down.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := s.tracker.Refresh(r.Context()); err != nil {
		log.Printf("modelwatch: refresh before history read: %v", err)
	}

	writeJSON(w, http.StatusOK, toSessionPayloads(s.tracker.History(r.Context())))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{
		GeneratedAt: format.DateTime(s.clock.Now(), time.Local),
	}

	models, err := s.tracker.Refresh(r.Context())
	if err != nil {
		data.Error = displayError(err)
	} else {
		data.Models = toModelPayloads(models)
	}

	history := s.tracker.History(r.Context())
	for i := len(history) - 1; i >= 0; i-- {
		data.Sessions = append(data.Sessions, toSessionPayload(history[i]))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		log.Printf("modelwatch: render dashboard: %v", err)
	}
}

func toModelPayloads(models []domain.ModelDescriptor) []modelPayload {
	payloads := make([]modelPayload, 0, len(models))
	for _, model := range models {
		payload := modelPayload{
			Name:          model.Name,
			Families:      model.Families,
			ParameterSize: model.ParameterSize,
			Size:          model.Size,
			CPUGPUSplit:   model.CPUGPUSplit,
		}
		if model.ExpiresAt != nil {
			payload.ExpiresLocal = model.ExpiresAt.Local
			payload.ExpiresIn = model.ExpiresAt.Relative
		}
		payloads = append(payloads, payload)
	}

	return payloads
}

func toSessionPayloads(views []application.SessionView) []sessionPayload {
	payloads := make([]sessionPayload, 0, len(views))
	for _, view := range views {
		payloads = append(payloads, toSessionPayload(view))
	}

	return payloads
}

func toSessionPayload(view application.SessionView) sessionPayload {
	payload := sessionPayload{
		ModelName:     view.ModelName,
		StartedAt:     view.StartedAt.Format(time.RFC3339),
		Families:      view.Families,
		ParameterSize: view.ParameterSize,
		Size:          view.Size,
		CPUGPUSplit:   view.CPUGPUSplit,
		Duration:      view.Duration,
	}

	if view.EndedAt != nil {
		ended := view.EndedAt.Format(time.RFC3339)
		payload.EndedAt = &ended
	}

	return payload
}

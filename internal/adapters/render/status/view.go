package status

import (
	"fmt"
	"time"

	"github.com/bnema/modelwatch/internal/application"
	"github.com/bnema/modelwatch/internal/domain"
	"github.com/bnema/modelwatch/internal/format"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now  time.Time
	Zone *time.Location
}

func renderModelsView(models []domain.ModelDescriptor, s styles) string {
	lines := []string{
		s.title.Render("Running Models"),
		s.header.Render(fmt.Sprintf("models: %d", len(models))),
	}

	if len(models) == 0 {
		lines = append(lines, s.empty.Render("No models are currently running."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, model := range models {
		lines = append(lines, s.section.Render(renderModel(model, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderModel(model domain.ModelDescriptor, s styles) string {
	parts := []string{
		s.model.Render(model.Name),
		s.detail.Render(fmt.Sprintf("  families: %s  parameters: %s  size: %s",
			orDash(model.Families), orDash(model.ParameterSize), orDash(model.Size))),
		s.detail.Render(fmt.Sprintf("  memory: %s", orDash(model.CPUGPUSplit))),
	}

	if model.ExpiresAt != nil {
		parts = append(parts, s.meta.Render(fmt.Sprintf("  expires: %s (%s)",
			model.ExpiresAt.Local, model.ExpiresAt.Relative)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHistoryView(sessions []application.SessionView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Model Session History"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No sessions recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	// Newest first for the terminal, storage stays chronological.
	for i := len(sessions) - 1; i >= 0; i-- {
		lines = append(lines, s.section.Render(renderSession(sessions[i], opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session application.SessionView, opts RenderOptions, s styles) string {
	state := s.running.Render("running")
	ended := "still running"
	if session.EndedAt != nil {
		state = s.closed.Render("ended " + format.TimeAgo(*session.EndedAt, opts.Now) + " ago")
		ended = format.DateTime(*session.EndedAt, opts.Zone)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", s.model.Render(session.ModelName), state),
		s.detail.Render(fmt.Sprintf("  started: %s  ended: %s",
			format.DateTime(session.StartedAt, opts.Zone), ended)),
		s.meta.Render(fmt.Sprintf("  duration: %s  size: %s  memory: %s",
			session.Duration, orDash(session.Size), orDash(session.CPUGPUSplit))),
	)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

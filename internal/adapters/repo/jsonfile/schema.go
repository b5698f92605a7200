package jsonfile

import (
	"time"

	"github.com/bnema/modelwatch/internal/domain"
)

// sessionSchema is the on-disk shape of one session. The history file is a
// JSON array of these, ordered by started_at ascending; ended_at is null
// while the session is open.
type sessionSchema struct {
	ModelName     string  `json:"model_name"`
	StartedAt     string  `json:"started_at"`
	EndedAt       *string `json:"ended_at"`
	Families      string  `json:"families"`
	ParameterSize string  `json:"parameter_size"`
	Size          string  `json:"size"`
	CPUGPUSplit   string  `json:"cpu_gpu_split"`
}

// legacyEntrySchema matches the retired snapshot-per-poll format. A file in
// that shape is treated as empty history rather than corruption.
type legacyEntrySchema struct {
	Timestamp *string          `json:"timestamp"`
	Models    []map[string]any `json:"models"`
}

func toSchema(session domain.Session) sessionSchema {
	entry := sessionSchema{
		ModelName:     session.ModelName,
		StartedAt:     session.StartedAt.Format(time.RFC3339),
		Families:      session.Families,
		ParameterSize: session.ParameterSize,
		Size:          session.Size,
		CPUGPUSplit:   session.CPUGPUSplit,
	}

	if session.EndedAt != nil {
		ended := session.EndedAt.Format(time.RFC3339)
		entry.EndedAt = &ended
	}

	return entry
}

func fromSchema(entry sessionSchema) (domain.Session, error) {
	startedAt, err := time.Parse(time.RFC3339, entry.StartedAt)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		ModelName:     entry.ModelName,
		StartedAt:     startedAt,
		Families:      entry.Families,
		ParameterSize: entry.ParameterSize,
		Size:          entry.Size,
		CPUGPUSplit:   entry.CPUGPUSplit,
	}

	if entry.EndedAt != nil {
		endedAt, err := time.Parse(time.RFC3339, *entry.EndedAt)
		if err != nil {
			return domain.Session{}, err
		}
		session.EndedAt = &endedAt
	}

	return session, nil
}

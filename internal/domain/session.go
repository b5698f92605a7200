package domain

import "time"

// Session is one contiguous interval during which a model was reported as
// running. Descriptive fields are captured when the session opens and stay
// frozen even if the daemon later reports the model with changed attributes.
type Session struct {
	ModelName     string
	StartedAt     time.Time
	EndedAt       *time.Time
	Families      string
	ParameterSize string
	Size          string
	CPUGPUSplit   string
}

func (s Session) Open() bool {
	return s.EndedAt == nil
}

// Duration reports the elapsed time of the session, using now as the end
// for a session that is still open.
func (s Session) Duration(now time.Time) time.Duration {
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}

	d := end.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Reconcile diffs a snapshot of running models against the session list:
// open sessions whose model is gone are closed at now, models with no open
// session get a new one appended. Sessions already open for a live model are
// left untouched. Duplicate names in the snapshot are ignored after the
// first occurrence. The returned flag reports whether anything changed.
func Reconcile(sessions []Session, snapshot []ModelDescriptor, now time.Time) ([]Session, bool) {
	live := make(map[string]ModelDescriptor, len(snapshot))
	order := make([]string, 0, len(snapshot))
	for _, descriptor := range snapshot {
		if _, ok := live[descriptor.Name]; ok {
			continue
		}
		live[descriptor.Name] = descriptor
		order = append(order, descriptor.Name)
	}

	open := make(map[string]struct{}, len(sessions))
	changed := false

	for i := range sessions {
		if !sessions[i].Open() {
			continue
		}
		if _, ok := live[sessions[i].ModelName]; ok {
			open[sessions[i].ModelName] = struct{}{}
			continue
		}

		ended := now
		sessions[i].EndedAt = &ended
		changed = true
	}

	for _, name := range order {
		if _, ok := open[name]; ok {
			continue
		}

		descriptor := live[name]
		sessions = append(sessions, Session{
			ModelName:     descriptor.Name,
			StartedAt:     now,
			Families:      descriptor.Families,
			ParameterSize: descriptor.ParameterSize,
			Size:          descriptor.Size,
			CPUGPUSplit:   descriptor.CPUGPUSplit,
		})
		changed = true
	}

	return sessions, changed
}

// Prune drops closed sessions whose end time is older than the retention
// window. Open sessions are kept regardless of age. Order is preserved.
func Prune(sessions []Session, now time.Time, retention time.Duration) []Session {
	kept := make([]Session, 0, len(sessions))
	for _, session := range sessions {
		if session.EndedAt != nil && now.Sub(*session.EndedAt) > retention {
			continue
		}
		kept = append(kept, session)
	}

	return kept
}

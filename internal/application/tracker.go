// Package application wires the snapshot source, the session history and
// the clock into the tracker service the CLI and the web server share.
package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/bnema/modelwatch/internal/domain"
	"github.com/bnema/modelwatch/internal/format"
	"github.com/bnema/modelwatch/internal/ports"
)

// Tracker owns the in-memory session list and keeps it mirrored to the
// repository. A single mutex covers reconcile and save as one unit, so
// concurrent dashboard reads never observe a half-applied snapshot.
type Tracker struct {
	source ports.ModelSource
	repo   ports.SessionRepository
	clock  ports.Clock
	logf   func(format string, args ...any)

	mu       sync.Mutex
	sessions []domain.Session
	loaded   bool
}

func NewTracker(source ports.ModelSource, repo ports.SessionRepository, clock ports.Clock) *Tracker {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Tracker{
		source: source,
		repo:   repo,
		clock:  clock,
		logf:   log.Printf,
	}
}

// Refresh performs one poll tick: fetch the current snapshot, reconcile it
// against the session list, and persist when something changed. The fetched
// descriptors are returned for rendering. Fetch failures surface to the
// caller untouched; persistence failures are logged and swallowed, leaving
// the in-memory list as the source of truth for the tick.
func (t *Tracker) Refresh(ctx context.Context) ([]domain.ModelDescriptor, error) {
	snapshot, err := t.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch running models: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureLoaded(ctx)

	sessions, changed := domain.Reconcile(t.sessions, snapshot, t.clock.Now())
	t.sessions = sessions

	if changed {
		if err := t.repo.Save(ctx, t.sessions); err != nil {
			t.logf("modelwatch: save session history: %v", err)
		}
	}

	return snapshot, nil
}

// SessionView is a session with its display duration attached.
type SessionView struct {
	domain.Session
	Duration string
}

// History returns the retained sessions in storage order (chronological by
// start), each with a duration computed against now for open sessions.
func (t *Tracker) History(ctx context.Context) []SessionView {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureLoaded(ctx)

	now := t.clock.Now()
	views := make([]SessionView, 0, len(t.sessions))
	for _, session := range t.sessions {
		views = append(views, SessionView{
			Session:  session,
			Duration: format.Duration(session.Duration(now)),
		})
	}

	return views
}

// ensureLoaded lazily loads the persisted history on first use. Corruption
// is surfaced as a warning and the tracker starts over with empty history
// rather than taking the service down. Callers must hold the mutex.
func (t *Tracker) ensureLoaded(ctx context.Context) {
	if t.loaded {
		return
	}

	sessions, err := t.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptHistory) {
			t.logf("modelwatch: %v, starting with empty history", err)
			t.loaded = true
			return
		}
		t.logf("modelwatch: load session history: %v", err)
		return
	}

	t.sessions = sessions
	t.loaded = true
}

package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/modelwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snapshot []domain.ModelDescriptor
	err      error
}

func (s *fakeSource) Fetch(_ context.Context) ([]domain.ModelDescriptor, error) {
	return s.snapshot, s.err
}

type fakeRepo struct {
	sessions  []domain.Session
	loadErr   error
	saveErr   error
	saveCalls int
}

func (r *fakeRepo) Load(_ context.Context) ([]domain.Session, error) {
	return r.sessions, r.loadErr
}

func (r *fakeRepo) Save(_ context.Context, sessions []domain.Session) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions = append([]domain.Session(nil), sessions...)
	return nil
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func newTestTracker(source *fakeSource, repo *fakeRepo, clock *stepClock) *Tracker {
	tracker := NewTracker(source, repo, clock)
	tracker.logf = func(string, ...any) {}
	return tracker
}

func TestRefreshTracksSessionLifecycle(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{}
	repo := &fakeRepo{}
	clock := &stepClock{now: start}
	tracker := newTestTracker(source, repo, clock)

	source.snapshot = []domain.ModelDescriptor{{Name: "a"}}
	_, err := tracker.Refresh(context.Background())
	require.NoError(t, err)

	clock.now = start.Add(5 * time.Minute)
	source.snapshot = []domain.ModelDescriptor{{Name: "a"}, {Name: "b"}}
	_, err = tracker.Refresh(context.Background())
	require.NoError(t, err)

	clock.now = start.Add(10 * time.Minute)
	source.snapshot = []domain.ModelDescriptor{{Name: "b"}}
	_, err = tracker.Refresh(context.Background())
	require.NoError(t, err)

	clock.now = start.Add(15 * time.Minute)
	source.snapshot = nil
	_, err = tracker.Refresh(context.Background())
	require.NoError(t, err)

	history := tracker.History(context.Background())
	require.Len(t, history, 2)

	assert.Equal(t, "a", history[0].ModelName)
	assert.Equal(t, start, history[0].StartedAt)
	require.NotNil(t, history[0].EndedAt)
	assert.Equal(t, start.Add(10*time.Minute), *history[0].EndedAt)

	assert.Equal(t, "b", history[1].ModelName)
	assert.Equal(t, start.Add(5*time.Minute), history[1].StartedAt)
	require.NotNil(t, history[1].EndedAt)
	assert.Equal(t, start.Add(15*time.Minute), *history[1].EndedAt)
}

func TestRefreshSavesOnlyOnChange(t *testing.T) {
	t.Parallel()

	source := &fakeSource{snapshot: []domain.ModelDescriptor{{Name: "a"}}}
	repo := &fakeRepo{}
	clock := &stepClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	tracker := newTestTracker(source, repo, clock)

	_, err := tracker.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saveCalls)

	_, err = tracker.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saveCalls, "unchanged snapshot must not rewrite the file")
}

func TestRefreshSurfacesFetchErrors(t *testing.T) {
	t.Parallel()

	source := &fakeSource{err: domain.ErrDaemonUnreachable}
	tracker := newTestTracker(source, &fakeRepo{}, &stepClock{now: time.Now()})

	_, err := tracker.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDaemonUnreachable))
	assert.Empty(t, tracker.History(context.Background()))
}

func TestRefreshSurvivesSaveFailure(t *testing.T) {
	t.Parallel()

	source := &fakeSource{snapshot: []domain.ModelDescriptor{{Name: "a"}}}
	repo := &fakeRepo{saveErr: fmt.Errorf("disk full")}
	tracker := newTestTracker(source, repo, &stepClock{now: time.Now()})

	_, err := tracker.Refresh(context.Background())
	require.NoError(t, err)

	history := tracker.History(context.Background())
	require.Len(t, history, 1)
	assert.Equal(t, "a", history[0].ModelName)
}

func TestTrackerResumesOpenSessionsFromRepository(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{sessions: []domain.Session{
		{ModelName: "a", StartedAt: start.Add(-time.Hour)},
	}}
	source := &fakeSource{}
	clock := &stepClock{now: start}
	tracker := newTestTracker(source, repo, clock)

	_, err := tracker.Refresh(context.Background())
	require.NoError(t, err)

	history := tracker.History(context.Background())
	require.Len(t, history, 1)
	assert.Equal(t, start.Add(-time.Hour), history[0].StartedAt)
	require.NotNil(t, history[0].EndedAt, "open session must close once the model is gone")
	assert.Equal(t, start, *history[0].EndedAt)
}

func TestTrackerStartsEmptyOnCorruptHistory(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{loadErr: fmt.Errorf("%w: bad json", domain.ErrCorruptHistory)}
	source := &fakeSource{snapshot: []domain.ModelDescriptor{{Name: "a"}}}
	tracker := newTestTracker(source, repo, &stepClock{now: time.Now()})

	var warned bool
	tracker.logf = func(string, ...any) { warned = true }

	_, err := tracker.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, warned, "corruption must be surfaced as a warning")

	history := tracker.History(context.Background())
	require.Len(t, history, 1)
}

func TestHistoryAttachesDurations(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ended := start.Add(2*time.Hour + 15*time.Minute)
	repo := &fakeRepo{sessions: []domain.Session{
		{ModelName: "closed", StartedAt: start, EndedAt: &ended},
		{ModelName: "open", StartedAt: start},
	}}
	clock := &stepClock{now: start.Add(3 * time.Hour)}
	tracker := newTestTracker(&fakeSource{}, repo, clock)

	history := tracker.History(context.Background())
	require.Len(t, history, 2)
	assert.Equal(t, "2 hours, 15 minutes", history[0].Duration)
	assert.Equal(t, "3 hours", history[1].Duration)
}

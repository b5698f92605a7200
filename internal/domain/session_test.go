package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(minutes int) time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}

func descriptor(name string) ModelDescriptor {
	return ModelDescriptor{
		Name:          name,
		Families:      "llama",
		ParameterSize: "8.0B",
		Size:          "4.9 GB",
		CPUGPUSplit:   "4.9 GB (100% GPU)",
	}
}

func TestReconcileOpensAndClosesSessions(t *testing.T) {
	t.Parallel()

	sessions, changed := Reconcile(nil, []ModelDescriptor{descriptor("a")}, at(0))
	require.True(t, changed)
	require.Len(t, sessions, 1)
	assert.Equal(t, "a", sessions[0].ModelName)
	assert.Equal(t, at(0), sessions[0].StartedAt)
	assert.True(t, sessions[0].Open())

	sessions, changed = Reconcile(sessions, []ModelDescriptor{descriptor("a"), descriptor("b")}, at(5))
	require.True(t, changed)
	require.Len(t, sessions, 2)
	assert.Equal(t, at(0), sessions[0].StartedAt)
	assert.True(t, sessions[0].Open())
	assert.Equal(t, "b", sessions[1].ModelName)
	assert.Equal(t, at(5), sessions[1].StartedAt)

	sessions, changed = Reconcile(sessions, []ModelDescriptor{descriptor("b")}, at(10))
	require.True(t, changed)
	require.NotNil(t, sessions[0].EndedAt)
	assert.Equal(t, at(10), *sessions[0].EndedAt)
	assert.True(t, sessions[1].Open())

	sessions, changed = Reconcile(sessions, nil, at(15))
	require.True(t, changed)
	require.NotNil(t, sessions[1].EndedAt)
	assert.Equal(t, at(15), *sessions[1].EndedAt)

	for _, session := range sessions {
		assert.False(t, session.StartedAt.After(*session.EndedAt))
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	t.Parallel()

	snapshot := []ModelDescriptor{descriptor("a"), descriptor("b")}

	sessions, changed := Reconcile(nil, snapshot, at(0))
	require.True(t, changed)

	sessions, changed = Reconcile(sessions, snapshot, at(0))
	assert.False(t, changed)
	assert.Len(t, sessions, 2)
}

func TestReconcileFreezesAttributesAtSessionStart(t *testing.T) {
	t.Parallel()

	sessions, _ := Reconcile(nil, []ModelDescriptor{descriptor("a")}, at(0))

	updated := descriptor("a")
	updated.ParameterSize = "70B"
	sessions, changed := Reconcile(sessions, []ModelDescriptor{updated}, at(5))

	assert.False(t, changed)
	require.Len(t, sessions, 1)
	assert.Equal(t, "8.0B", sessions[0].ParameterSize)
}

func TestReconcileNeverDoubleOpens(t *testing.T) {
	t.Parallel()

	var sessions []Session
	snapshots := [][]ModelDescriptor{
		{descriptor("a")},
		{descriptor("a"), descriptor("b")},
		nil,
		{descriptor("a")},
		{descriptor("a")},
		{descriptor("b")},
	}

	for i, snapshot := range snapshots {
		sessions, _ = Reconcile(sessions, snapshot, at(i))

		openByName := map[string]int{}
		for _, session := range sessions {
			if session.Open() {
				openByName[session.ModelName]++
			}
		}
		for name, count := range openByName {
			assert.Equalf(t, 1, count, "model %s has %d open sessions after snapshot %d", name, count, i)
		}
	}
}

func TestReconcileFirstDuplicateNameWins(t *testing.T) {
	t.Parallel()

	first := descriptor("a")
	second := descriptor("a")
	second.Size = "9.8 GB"

	sessions, changed := Reconcile(nil, []ModelDescriptor{first, second}, at(0))
	require.True(t, changed)
	require.Len(t, sessions, 1)
	assert.Equal(t, "4.9 GB", sessions[0].Size)
}

func TestPruneDropsOnlyExpiredClosedSessions(t *testing.T) {
	t.Parallel()

	oldEnd := at(0)
	recentEnd := at(50)
	sessions := []Session{
		{ModelName: "ancient-open", StartedAt: at(-10000)},
		{ModelName: "expired", StartedAt: at(-5), EndedAt: &oldEnd},
		{ModelName: "recent", StartedAt: at(40), EndedAt: &recentEnd},
	}

	kept := Prune(sessions, at(60), 30*time.Minute)

	require.Len(t, kept, 2)
	assert.Equal(t, "ancient-open", kept[0].ModelName)
	assert.Equal(t, "recent", kept[1].ModelName)
}

func TestSessionDuration(t *testing.T) {
	t.Parallel()

	end := at(90)
	closed := Session{StartedAt: at(0), EndedAt: &end}
	assert.Equal(t, 90*time.Minute, closed.Duration(at(500)))

	open := Session{StartedAt: at(0)}
	assert.Equal(t, 15*time.Minute, open.Duration(at(15)))

	future := Session{StartedAt: at(10)}
	assert.Equal(t, time.Duration(0), future.Duration(at(5)))
}

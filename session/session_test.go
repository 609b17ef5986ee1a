package session

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/assess/config"
	"github.com/hireflow/assess/database"
	"github.com/hireflow/assess/model"
	"github.com/hireflow/assess/store"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(config.Config{
		DBUrl: fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestCandidate(t *testing.T, db *sql.DB) int {
	t.Helper()

	id, err := store.RegisterCandidate(context.Background(), db, model.Candidate{
		Name: "Ana", Email: "ana@example.com", Doc: "CC-1",
	})
	require.NoError(t, err)
	return id
}

func TestStartSeedsFromDrafts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	candidateID := newTestCandidate(t, db)

	require.NoError(t, store.SaveDrafts(ctx, db, candidateID, map[int]string{1: "B", 101: "SUM(A1)"}))

	m := NewManager(db)
	s, err := m.Start(ctx, candidateID)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "B", 101: "SUM(A1)"}, s.Snapshot())
	assert.False(t, s.StartedAt.IsZero())
}

func TestStartIsIdempotentPerCandidate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	candidateID := newTestCandidate(t, db)

	m := NewManager(db)
	first, err := m.Start(ctx, candidateID)
	require.NoError(t, err)

	first.Set(1, "A")
	again, err := m.Start(ctx, candidateID)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, map[int]string{1: "A"}, again.Snapshot())
}

func TestEditsStayInMemoryUntilFlush(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	candidateID := newTestCandidate(t, db)

	m := NewManager(db)
	s, err := m.Start(ctx, candidateID)
	require.NoError(t, err)

	s.Set(1, "B")
	s.SetAll(map[int]string{2: "A", 101: "SUM( A1 )"})

	drafts, err := store.LoadDrafts(ctx, db, candidateID)
	require.NoError(t, err)
	assert.Empty(t, drafts)

	require.NoError(t, m.Flush(ctx, candidateID))
	drafts, err = store.LoadDrafts(ctx, db, candidateID)
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), drafts)
}

func TestFlushWithoutStart(t *testing.T) {
	m := NewManager(openTestDB(t))
	assert.ErrorIs(t, m.Flush(context.Background(), 99), ErrNotStarted)
}

func TestFailedFlushKeepsBuffer(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	candidateID := newTestCandidate(t, db)

	m := NewManager(db)
	s, err := m.Start(ctx, candidateID)
	require.NoError(t, err)
	s.Set(1, "B")

	// storage gone: flush fails, the in-memory answers survive for a retry
	db.Close()
	assert.Error(t, m.Flush(ctx, candidateID))
	assert.Equal(t, map[int]string{1: "B"}, s.Snapshot())
}

func TestSnapshotIsACopy(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	candidateID := newTestCandidate(t, db)

	m := NewManager(db)
	s, err := m.Start(ctx, candidateID)
	require.NoError(t, err)
	s.Set(1, "A")

	snap := s.Snapshot()
	snap[1] = "Z"
	assert.Equal(t, map[int]string{1: "A"}, s.Snapshot())
}

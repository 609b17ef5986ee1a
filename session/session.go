package session

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/hireflow/assess/store"
)

var ErrNotStarted = errors.New("session not started")

// Session is the in-memory answer buffer for one candidate attempt. Edits
// mutate the buffer only; nothing is persisted until an explicit Flush.
// Abandoning a session without flushing loses unsaved edits by design.
type Session struct {
	CandidateID int
	StartedAt   time.Time

	mu     sync.Mutex
	buffer map[int]string
}

func (s *Session) Set(questionID int, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer[questionID] = response
}

func (s *Session) SetAll(answers map[int]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for questionID, response := range answers {
		s.buffer[questionID] = response
	}
}

// Snapshot returns a copy of the buffer, safe to hand to scoring or storage.
func (s *Session) Snapshot() map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[int]string, len(s.buffer))
	for questionID, response := range s.buffer {
		snapshot[questionID] = response
	}
	return snapshot
}

// Manager holds one live session per candidate. The single-writer-per-candidate
// assumption means no finer locking than the manager mutex is needed.
type Manager struct {
	db *sql.DB

	mu       sync.Mutex
	sessions map[int]*Session
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db, sessions: map[int]*Session{}}
}

// Start creates the candidate's session, seeded once from saved drafts, or
// returns the already-running one on resume within the same process.
func (m *Manager) Start(ctx context.Context, candidateID int) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[candidateID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	drafts, err := store.LoadDrafts(ctx, m.db, candidateID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[candidateID]; ok {
		return s, nil
	}
	s := &Session{
		CandidateID: candidateID,
		StartedAt:   time.Now(),
		buffer:      drafts,
	}
	m.sessions[candidateID] = s
	return s, nil
}

func (m *Manager) Get(candidateID int) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[candidateID]
	return s, ok
}

// Flush writes the whole buffer to the draft store. On failure the buffer is
// untouched, so the candidate can retry the save.
func (m *Manager) Flush(ctx context.Context, candidateID int) error {
	s, ok := m.Get(candidateID)
	if !ok {
		return ErrNotStarted
	}
	return store.SaveDrafts(ctx, m.db, candidateID, s.Snapshot())
}

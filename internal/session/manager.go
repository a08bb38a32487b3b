// Package session manages independent predictor sessions. Each session owns
// one predictor behind an exclusive lock, so a decay-and-record cycle is
// atomic with respect to concurrent prediction reads.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MJE43/roulette-edge-go/internal/predict"
)

// ErrNotFound is returned when a session ID is unknown.
var ErrNotFound = errors.New("session not found")

// Session is one independent statistical session. No state is shared between
// sessions.
type Session struct {
	ID        string
	CreatedAt time.Time
	seq       int // creation order, for stable listings

	mu        sync.Mutex
	predictor *predict.Predictor
}

// Record adds one spin under the session lock.
func (s *Session) Record(position int, dealer string) (spinCount int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.predictor.AddSpin(position, dealer); err != nil {
		return 0, err
	}
	return s.predictor.SpinCount(), nil
}

// Predict assembles a report under the session lock. The predictor call is
// read-only, but the lock keeps readers from observing a half-decayed set of
// tables mid-Record.
func (s *Session) Predict(n int, dealer string) (*predict.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.predictor.TopN(n, dealer)
}

// SpinCount returns the session's total recorded spins.
func (s *Session) SpinCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.predictor.SpinCount()
}

// Summary is a point-in-time view of a session for listings.
type Summary struct {
	ID        string    `json:"id"`
	SpinCount int       `json:"spin_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager is the registry of live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	defaults predict.Options
	nextSeq  int
}

// NewManager creates a registry whose sessions default to the given
// predictor options.
func NewManager(defaults predict.Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		defaults: defaults,
	}
}

// Create registers a new session. Zero fields in opts fall back to the
// manager defaults.
func (m *Manager) Create(opts predict.Options) *Session {
	if opts.DecayFactor == 0 {
		opts.DecayFactor = m.defaults.DecayFactor
	}
	if opts.PruneEpsilon == 0 {
		opts.PruneEpsilon = m.defaults.PruneEpsilon
	}
	if opts.MaxHistory == 0 {
		opts.MaxHistory = m.defaults.MaxHistory
	}

	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		predictor: predict.New(opts),
	}

	m.mu.Lock()
	s.seq = m.nextSeq
	m.nextSeq++
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// List returns summaries of all sessions in creation order.
func (m *Manager) List() []Summary {
	m.mu.RLock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.RUnlock()

	sort.Slice(live, func(i, j int) bool { return live[i].seq < live[j].seq })

	out := make([]Summary, 0, len(live))
	for _, s := range live {
		out = append(out, Summary{ID: s.ID, SpinCount: s.SpinCount(), CreatedAt: s.CreatedAt})
	}
	return out
}

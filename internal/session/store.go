package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sanfeliz/internal/catalog"
	"sanfeliz/internal/order"
)

var ErrNotFound = errors.New("session not found")

// SubmissionState tracks the checkout call, outside the engine.
type SubmissionState string

const (
	SubmissionIdle      SubmissionState = "idle"
	SubmissionPending   SubmissionState = "pending"
	SubmissionSucceeded SubmissionState = "succeeded"
	SubmissionFailed    SubmissionState = "failed"
)

// Session is one customer configuring one product.
type Session struct {
	ID        string
	Engine    *order.Engine
	CreatedAt time.Time
	LastSeen  time.Time // guarded by the store lock

	Submission   SubmissionState
	SubmitError  string
	PreferenceID string

	// OrderID is set once the WhatsApp hand-off has been recorded.
	OrderID string

	// mu serialises requests touching the same session.
	mu sync.Mutex
}

// Do runs fn with the session locked.
func (s *Session) Do(fn func(s *Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

type Store struct {
	mu       sync.Mutex
	cfg      order.Config
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore keeps open sessions until they sit idle for ttl; zero means forever.
func NewStore(cfg order.Config, ttl time.Duration) *Store {
	return &Store{
		cfg:      cfg,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Open starts a fresh configuration for product.
func (st *Store) Open(product catalog.Product) *Session {
	now := st.now()
	s := &Session{
		ID:         uuid.New().String(),
		Engine:     order.New(product, st.cfg),
		CreatedAt:  now,
		LastSeen:   now,
		Submission: SubmissionIdle,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get returns the session and marks it as seen, pushing back its expiry.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if st.expired(s) {
		delete(st.sessions, id)
		return nil, ErrNotFound
	}
	s.LastSeen = st.now()
	return s, nil
}

// Close discards the session state. Unknown or already closed sessions
// return ErrNotFound.
func (st *Store) Close(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.Do(func(s *Session) { s.Engine.Close() })
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) expired(s *Session) bool {
	return st.ttl > 0 && st.now().Sub(s.LastSeen) > st.ttl
}

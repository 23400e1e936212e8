package assistant

import (
	"errors"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/phrases"
)

var (
	ErrAlreadyListening = errors.New("session is already listening")
	ErrNotListening     = errors.New("session is not listening")
	ErrCommandInFlight  = errors.New("a command is already in flight for this session")
)

// SessionState is the externally visible state of one session.
type SessionState struct {
	ID             string           `json:"id"`
	Listening      bool             `json:"listening"`
	InFlight       bool             `json:"in_flight"`
	Language       phrases.Language `json:"language"`
	Interim        string           `json:"interim,omitempty"`
	LastTranscript string           `json:"last_transcript,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// session holds the mutable voice state for one owner's session. Every field
// is guarded by mu.
type session struct {
	mu sync.Mutex

	id             string
	ownerID        uuid.UUID
	listening      bool
	inFlight       bool
	language       phrases.Language
	interim        string
	lastTranscript string
	updatedAt      time.Time
}

func (s *session) stateLocked() SessionState {
	return SessionState{
		ID:             s.id,
		Listening:      s.listening,
		InFlight:       s.inFlight,
		Language:       s.language,
		Interim:        s.interim,
		LastTranscript: s.lastTranscript,
		UpdatedAt:      s.updatedAt,
	}
}

// acquire marks a command in flight. The caller must call release.
func (s *session) acquire(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrCommandInFlight
	}
	s.inFlight = true
	s.updatedAt = now
	return nil
}

func (s *session) release(now time.Time) {
	s.mu.Lock()
	s.inFlight = false
	s.updatedAt = now
	s.mu.Unlock()
}

// sessionIdleTTL is how long a session that is neither listening nor running
// a command stays in the registry.
const sessionIdleTTL = 30 * time.Minute

type sessionKey struct {
	ownerID uuid.UUID
	id      string
}

type entry struct {
	session *session
	// touched is the last time the registry handed the session out. Guarded
	// by registry.mu.
	touched time.Time
}

// registry owns every live session. Sessions are scoped to their owner, so
// two owners may use the same session id. Idle sessions are swept once they
// have been untouched for ttl.
type registry struct {
	mu        sync.Mutex
	sessions  map[sessionKey]*entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func newRegistry(ttl time.Duration, now func() time.Time) *registry {
	return &registry{
		sessions: make(map[sessionKey]*entry),
		ttl:      ttl,
		now:      now,
	}
}

func (r *registry) get(ownerID uuid.UUID, id string, lang phrases.Language) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	key := sessionKey{ownerID: ownerID, id: id}
	e, ok := r.sessions[key]
	if !ok {
		e = &entry{session: &session{id: id, ownerID: ownerID, language: lang, updatedAt: now}}
		r.sessions[key] = e
	}
	e.touched = now
	return e.session
}

func (r *registry) lookup(ownerID uuid.UUID, id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	e, ok := r.sessions[sessionKey{ownerID: ownerID, id: id}]
	if !ok {
		return nil, false
	}
	e.touched = now
	return e.session, true
}

func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweepLocked drops idle sessions, at most once per ttl.
func (r *registry) sweepLocked(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < r.ttl {
		return
	}
	r.lastSweep = now

	for key, e := range r.sessions {
		if now.Sub(e.touched) < r.ttl {
			continue
		}
		s := e.session
		s.mu.Lock()
		idle := !s.listening && !s.inFlight && now.Sub(s.updatedAt) >= r.ttl
		s.mu.Unlock()
		if idle {
			delete(r.sessions, key)
		}
	}
}

package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/imrishuroy/novamart/internal/orders"
)

// Registry maps session ids to sessions. Sessions are never shared.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
	newID    func() string
}

// NewRegistry returns an empty Registry whose sessions share deps.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		sessions: map[string]*Session{},
		deps:     deps.withDefaults(),
		newID:    uuid.NewString,
	}
}

// Create starts a session for user, or for the demo user when user is nil.
func (r *Registry) Create(user *orders.User) *Session {
	u := orders.DefaultUser()
	if user != nil {
		u = *user
	}
	s := New(r.newID(), u, r.deps)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	r.deps.Log.Info().Str("session_id", s.ID()).Str("user_id", u.ID).Msg("session created")
	return s
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete ends a session and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

package menus

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naturelab/lifelist/pkg/lserr"
)

// DefaultSessionTTL is how long an idle menu session stays resumable.
const DefaultSessionTTL = time.Hour

// Session is one registered menu with its expiry. The embedded mutex
// serializes navigation on the menu, which is itself single-writer.
type Session struct {
	sync.Mutex

	ID        string
	Menu      *Menu
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Registry holds live menu sessions keyed by id. Safe for concurrent use;
// the menus themselves are still single-writer, so callers serialize
// navigation calls per session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewRegistry creates a registry. A non-positive ttl uses
// [DefaultSessionTTL].
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a menu and returns its new session.
func (r *Registry) Create(menu *Menu) *Session {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Menu:      menu,
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}
	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()
	return sess
}

// Get returns the session by id, renewing its expiry. Unknown and expired
// ids both surface as SESSION_NOT_FOUND; expired sessions are dropped.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, lserr.New(lserr.ErrCodeSessionNotFound, "session %s not found", id)
	}
	if sess.IsExpired() {
		delete(r.sessions, id)
		return nil, lserr.New(lserr.ErrCodeSessionNotFound, "session %s expired", id)
	}
	sess.ExpiresAt = time.Now().Add(r.ttl)
	return sess, nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Cleanup drops expired sessions and returns how many were removed.
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	now := time.Now()
	for id, sess := range r.sessions {
		if now.After(sess.ExpiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions, expired ones included until the
// next Get or Cleanup touches them.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ABOUTME: Derives the current authentication state from the token store
// ABOUTME: Pure function of stored credential plus the clock

package session

import "time"

// User identifies the authenticated portal user.
type User struct {
	Username string
	Role     Role
}

// Session answers "is the current session usable" and "who is the user"
// from the store and the clock. Both questions are re-evaluated on every
// call; expiry is time-dependent, so the answer is never cached.
type Session struct {
	store *Store
	now   func() time.Time
}

// New creates a session oracle over the given store.
func New(store *Store) *Session {
	return &Session{store: store, now: time.Now}
}

// NewWithClock creates a session oracle with an injected clock for tests.
func NewWithClock(store *Store, now func() time.Time) *Session {
	return &Session{store: store, now: now}
}

// Authenticated reports whether a credential is stored, decodes, and has not
// expired. Expiry is strict: at the instant now equals exp the session is
// already expired.
func (s *Session) Authenticated() bool {
	token, ok := s.store.Get()
	if !ok {
		return false
	}

	claims, ok := Decode(token)
	if !ok {
		return false
	}

	return claims.ExpiresAt > s.now().Unix()
}

// CurrentUser returns the authenticated user, or false when the session is
// absent, malformed, or expired.
func (s *Session) CurrentUser() (User, bool) {
	if !s.Authenticated() {
		return User{}, false
	}

	token, _ := s.store.Get()
	claims, _ := Decode(token)
	return User{Username: claims.Username, Role: claims.Role}, true
}

// Token returns the raw stored credential for the request gateway.
func (s *Session) Token() (string, bool) {
	return s.store.Get()
}

// Store exposes the underlying store for login/logout and 401 handling.
func (s *Session) Store() *Store {
	return s.store
}

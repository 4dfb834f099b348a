package session

import (
	"context"
	"sync"

	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/upstream"
)

// State is the session lifecycle state.
//
//	Unknown → Loading → {Authenticated, Anonymous}
//
// There is no terminal state: a session cycles between Authenticated and
// Anonymous for its whole life.
type State int

const (
	StateUnknown State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session holds one browser session's auth state. The token and the user
// are guarded by a single mutex so neither is ever observable stale
// relative to the other.
type Session struct {
	id string

	mu      sync.Mutex
	state   State
	token   string
	user    *domain.User
	notices []upstream.Notice
}

func newSession(id string) *Session {
	return &Session{id: id, state: StateUnknown}
}

// ID returns the session ID (the sid inside the signed cookie).
func (s *Session) ID() string {
	return s.id
}

// Snapshot is a consistent view of the session's auth state.
type Snapshot struct {
	State State
	User  *domain.User
}

// Snapshot returns state and user read under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, User: s.user}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the upstream bearer token, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the in-memory user, or nil.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports whether the session holds a validated user.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// DrainNotices returns and clears the pending user-facing notices.
func (s *Session) DrainNotices() []upstream.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) pushNotice(n upstream.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

// beginLoading clears any existing credentials and enters Loading.
func (s *Session) beginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
	s.token = ""
	s.user = nil
}

// setToken installs the upstream token while the session is still Loading.
func (s *Session) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// setAuthenticated finalizes a successful who-am-I check.
func (s *Session) setAuthenticated(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.user = user
}

// clearAuth drops token and user in one step and enters Anonymous.
func (s *Session) clearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
}

type ctxKey struct{}

// ContextWith binds a session to a request context so the upstream client
// can resolve the token and notice queue for that request.
func ContextWith(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session bound to ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

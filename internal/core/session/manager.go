package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/pkg/tokenseal"
	"agriloan-portal/internal/upstream"

	"github.com/google/uuid"
)

// Auth errors
var (
	ErrLoginFailed = errors.New("login failed")
	ErrNotBound    = errors.New("session manager has no authenticator bound")
)

// Authenticator is the slice of the upstream auth façade the manager
// needs. Satisfied by *upstream.AuthAPI.
type Authenticator interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (string, error)
	Signup(ctx context.Context, input domain.SignupInput) error
	Me(ctx context.Context) (*domain.User, error)
}

// Manager owns every live session and drives the auth state machine. It
// also implements upstream.TokenSource and upstream.Notifier, making it
// the single owner of the persisted token and the in-memory user.
type Manager struct {
	mu   sync.RWMutex
	live map[string]*Session

	store Store
	seal  *tokenseal.Sealer
	ttl   time.Duration
	auth  Authenticator
}

// NewManager creates a session manager. BindAuth must be called before any
// session flow runs; the upstream client is constructed against the
// manager first, then its auth façade is bound back here.
func NewManager(store Store, seal *tokenseal.Sealer, ttl time.Duration) *Manager {
	return &Manager{
		live:  make(map[string]*Session),
		store: store,
		seal:  seal,
		ttl:   ttl,
	}
}

// BindAuth wires the upstream auth façade into the manager.
func (m *Manager) BindAuth(auth Authenticator) {
	m.auth = auth
}

// Attach resolves (or creates) the session for an ID and binds it to the
// context. An empty ID mints a fresh session.
func (m *Manager) Attach(ctx context.Context, id string) (*Session, context.Context) {
	if id == "" {
		id = uuid.New().String()
	}

	m.mu.Lock()
	sess, ok := m.live[id]
	if !ok {
		sess = newSession(id)
		m.live[id] = sess
	}
	m.mu.Unlock()

	return sess, ContextWith(ctx, sess)
}

// Resume moves a session out of Unknown: no stored token means Anonymous;
// a stored token is validated with a who-am-I call. Any failure during the
// check is treated like an explicit rejection — the session never stays
// indeterminate.
func (m *Manager) Resume(ctx context.Context, sess *Session) error {
	if m.auth == nil {
		return ErrNotBound
	}
	if sess.State() != StateUnknown {
		return nil
	}
	sess.beginLoading()

	rec, err := m.store.Get(ctx, sess.ID())
	if err != nil {
		sess.clearAuth()
		if errors.Is(err, ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := m.seal.Open(rec.SealedToken)
	if err != nil {
		sess.clearAuth()
		_ = m.store.Delete(ctx, sess.ID())
		return nil
	}

	sess.setToken(token)
	user, err := m.auth.Me(ctx)
	if err != nil {
		// A 401 already cleared the session through Invalidate; anything
		// else gets the same treatment here.
		sess.clearAuth()
		_ = m.store.Delete(ctx, sess.ID())
		return nil
	}

	sess.setAuthenticated(user)
	return nil
}

// Login clears any existing credentials, exchanges the new ones for a
// token, persists the sealed token, then revalidates with who-am-I to
// populate the user.
func (m *Manager) Login(ctx context.Context, sess *Session, creds domain.LoginCredentials) (*domain.User, error) {
	if m.auth == nil {
		return nil, ErrNotBound
	}

	// 1. Force a clean slate; the login request itself goes out anonymous
	sess.beginLoading()
	_ = m.store.Delete(ctx, sess.ID())

	// 2. Exchange credentials for a token
	token, err := m.auth.Login(ctx, creds)
	if err != nil {
		sess.clearAuth()
		return nil, err
	}

	// 3. Persist the sealed token under the session's single key
	sealed, err := m.seal.Seal(token)
	if err != nil {
		sess.clearAuth()
		return nil, err
	}
	if err := m.store.Save(ctx, &Record{
		ID:          sess.ID(),
		SealedToken: sealed,
		ExpiresAt:   time.Now().Add(m.ttl),
	}); err != nil {
		sess.clearAuth()
		return nil, err
	}

	// 4. The login response is not trusted to carry the user; revalidate
	sess.setToken(token)
	user, err := m.auth.Me(ctx)
	if err != nil {
		m.Invalidate(ctx)
		return nil, err
	}

	sess.setAuthenticated(user)
	log.Printf("✅ Session authenticated: %s (%s)", user.Email, user.Role)
	return user, nil
}

// Signup registers the account, then runs the login flow with the new
// credentials. There is no "signed up but not logged in" state.
func (m *Manager) Signup(ctx context.Context, sess *Session, input domain.SignupInput) (*domain.User, error) {
	if m.auth == nil {
		return nil, ErrNotBound
	}
	if err := m.auth.Signup(ctx, input); err != nil {
		return nil, err
	}
	return m.Login(ctx, sess, domain.LoginCredentials{
		Email:    input.Email,
		Password: input.Password,
	})
}

// Logout clears token and user together and drops the stored record. No
// authenticated call is possible afterwards without a new login.
func (m *Manager) Logout(ctx context.Context, sess *Session) {
	sess.clearAuth()
	_ = m.store.Delete(ctx, sess.ID())
}

// Token implements upstream.TokenSource.
func (m *Manager) Token(ctx context.Context) string {
	sess, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return sess.Token()
}

// Invalidate implements upstream.TokenSource: a 401 from any endpoint
// clears the token and the user atomically, regardless of which façade
// issued the call.
func (m *Manager) Invalidate(ctx context.Context) {
	sess, ok := FromContext(ctx)
	if !ok {
		return
	}
	sess.clearAuth()
	_ = m.store.Delete(ctx, sess.ID())
}

// Notify implements upstream.Notifier as a per-session flash queue.
func (m *Manager) Notify(ctx context.Context, n upstream.Notice) {
	sess, ok := FromContext(ctx)
	if !ok {
		log.Printf("⚠️ %s: %s", n.Title, n.Message)
		return
	}
	sess.pushNotice(n)
}

// PurgeExpired removes expired records from the store and dead sessions
// from the live registry. An authenticated session whose backing record is
// gone loses its token and user here; the bearer token never outlives the
// stored record.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}

	m.mu.RLock()
	live := make(map[string]*Session, len(m.live))
	for id, sess := range m.live {
		live[id] = sess
	}
	m.mu.RUnlock()

	// Store checks run outside the registry lock. Loading sessions are
	// skipped: a login in flight may not have saved its record yet.
	dead := make([]string, 0, len(live))
	for id, sess := range live {
		switch sess.State() {
		case StateAnonymous:
			dead = append(dead, id)
		case StateAuthenticated:
			if _, err := m.store.Get(ctx, id); errors.Is(err, ErrRecordNotFound) {
				sess.clearAuth()
				dead = append(dead, id)
			}
		}
	}

	m.mu.Lock()
	for _, id := range dead {
		delete(m.live, id)
	}
	m.mu.Unlock()

	return n, nil
}

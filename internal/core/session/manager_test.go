package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/pkg/tokenseal"
	"agriloan-portal/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth scripts the upstream auth façade.
type fakeAuth struct {
	loginToken string
	loginErr   error
	signupErr  error
	meUser     *domain.User
	meErr      error
	meCalls    int
}

func (f *fakeAuth) Login(context.Context, domain.LoginCredentials) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAuth) Signup(context.Context, domain.SignupInput) error {
	return f.signupErr
}

func (f *fakeAuth) Me(context.Context) (*domain.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func newTestManager(t *testing.T, auth Authenticator) *Manager {
	t.Helper()
	sealer, err := tokenseal.New("test-secret")
	require.NoError(t, err)

	m := NewManager(NewMemoryStore(), sealer, time.Hour)
	m.BindAuth(auth)
	return m
}

func mary() *domain.User {
	return &domain.User{ID: "u1", Email: "mary@example.mw", Role: domain.RoleFarmer}
}

func TestAttachMintsFreshSession(t *testing.T) {
	m := newTestManager(t, &fakeAuth{})

	sess, ctx := m.Attach(context.Background(), "")
	assert.NotEmpty(t, sess.ID())
	assert.Equal(t, StateUnknown, sess.State())

	bound, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, sess, bound)
}

func TestAttachReturnsSameLiveSession(t *testing.T) {
	m := newTestManager(t, &fakeAuth{})

	first, _ := m.Attach(context.Background(), "sid-1")
	second, _ := m.Attach(context.Background(), "sid-1")
	assert.Same(t, first, second)
}

func TestLoginSuccess(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	user, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "mary@example.mw", user.Email)
	assert.Equal(t, StateAuthenticated, sess.State())
	assert.Equal(t, "jwt-1", sess.Token())
	assert.Equal(t, 1, auth.meCalls, "login must revalidate with who-am-I")

	// The sealed token must be recoverable from the store
	rec, err := m.store.Get(ctx, sess.ID())
	require.NoError(t, err)
	plain, err := m.seal.Open(rec.SealedToken)
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", plain)
}

func TestLoginFailureLeavesAnonymous(t *testing.T) {
	auth := &fakeAuth{loginErr: &upstream.Error{Status: 401, Message: "not authenticated"}}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "x", Password: "y"})
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	_, storeErr := m.store.Get(ctx, sess.ID())
	assert.ErrorIs(t, storeErr, ErrRecordNotFound)
}

func TestLoginClearsPreviousIdentityFirst(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	// Second login fails at the credential exchange; nothing of the first
	// identity may survive
	auth.loginErr = errors.New("boom")
	_, err = m.Login(ctx, sess, domain.LoginCredentials{Email: "other", Password: "pw"})
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
}

func TestSignupRunsLoginFlow(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-2", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	user, err := m.Signup(ctx, sess, domain.SignupInput{
		Email:    "mary@example.mw",
		Password: "pw123456",
		Role:     domain.RoleFarmer,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, StateAuthenticated, sess.State())
}

func TestSignupFailureDoesNotLogin(t *testing.T) {
	auth := &fakeAuth{signupErr: &upstream.Error{Status: 409, Message: "email taken"}}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Signup(ctx, sess, domain.SignupInput{Email: "x", Password: "pw123456"})
	require.Error(t, err)
	assert.Equal(t, StateUnknown, sess.State(), "a failed signup must not touch the session")
}

func TestLogoutClearsEverything(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	m.Logout(ctx, sess)
	assert.Equal(t, StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	_, storeErr := m.store.Get(ctx, sess.ID())
	assert.ErrorIs(t, storeErr, ErrRecordNotFound)
}

func TestResumeWithoutStoredToken(t *testing.T) {
	m := newTestManager(t, &fakeAuth{})
	sess, ctx := m.Attach(context.Background(), "")

	require.NoError(t, m.Resume(ctx, sess))
	assert.Equal(t, StateAnonymous, sess.State())
}

func TestResumeWithValidStoredToken(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	// Simulate a process restart: same store, fresh live session
	m2 := NewManager(m.store, m.seal, time.Hour)
	m2.BindAuth(auth)
	sess2, ctx2 := m2.Attach(context.Background(), sess.ID())

	require.NoError(t, m2.Resume(ctx2, sess2))
	assert.Equal(t, StateAuthenticated, sess2.State())
	assert.Equal(t, "jwt-1", sess2.Token())
	assert.Equal(t, "mary@example.mw", sess2.User().Email)
}

func TestResumeWithRejectedToken(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	auth.meUser = nil
	auth.meErr = &upstream.Error{Status: 401, Message: "not authenticated"}

	m2 := NewManager(m.store, m.seal, time.Hour)
	m2.BindAuth(auth)
	sess2, ctx2 := m2.Attach(context.Background(), sess.ID())

	require.NoError(t, m2.Resume(ctx2, sess2))
	assert.Equal(t, StateAnonymous, sess2.State())
	_, storeErr := m2.store.Get(ctx2, sess2.ID())
	assert.ErrorIs(t, storeErr, ErrRecordNotFound, "a rejected token must be dropped from the store")
}

func TestResumeIsIdempotentAfterDecision(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)
	calls := auth.meCalls

	require.NoError(t, m.Resume(ctx, sess))
	assert.Equal(t, calls, auth.meCalls, "resume must not re-check a decided session")
}

func TestInvalidateClearsTokenAndUserTogether(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	m.Invalidate(ctx)
	snap := sess.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, sess.Token())
}

func TestNotifyQueuesPerSession(t *testing.T) {
	m := newTestManager(t, &fakeAuth{})
	sess, ctx := m.Attach(context.Background(), "")

	m.Notify(ctx, upstream.Notice{Level: "error", Title: "API Error (500)", Message: "boom"})
	m.Notify(ctx, upstream.Notice{Level: "error", Title: "Network Error", Message: "down"})

	notices := sess.DrainNotices()
	require.Len(t, notices, 2)
	assert.Equal(t, "API Error (500)", notices[0].Title)
	assert.Empty(t, sess.DrainNotices(), "drain must clear the queue")
}

func TestPurgeExpired(t *testing.T) {
	sealer, err := tokenseal.New("test-secret")
	require.NoError(t, err)
	store := NewMemoryStore()
	m := NewManager(store, sealer, time.Hour)
	m.BindAuth(&fakeAuth{})

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &Record{ID: "old", SealedToken: []byte{1}, ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, store.Save(ctx, &Record{ID: "live", SealedToken: []byte{2}, ExpiresAt: time.Now().Add(time.Hour)}))

	n, err := m.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = store.Get(ctx, "live")
	assert.NoError(t, err)
}

func TestPurgeExpiredEvictsOrphanedLiveSessions(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	// Age the stored record past its expiry while the live session still
	// holds the plaintext token
	require.NoError(t, m.store.Save(ctx, &Record{
		ID:          sess.ID(),
		SealedToken: []byte{1},
		ExpiresAt:   time.Now().Add(-time.Minute),
	}))

	n, err := m.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, StateAnonymous, sess.State())
	assert.Empty(t, sess.Token(), "bearer token must not outlive the stored record")
	assert.Nil(t, sess.User())

	m.mu.RLock()
	_, alive := m.live[sess.ID()]
	m.mu.RUnlock()
	assert.False(t, alive, "orphaned session must leave the live registry")
}

func TestPurgeExpiredKeepsBackedSessions(t *testing.T) {
	auth := &fakeAuth{loginToken: "jwt-1", meUser: mary()}
	m := newTestManager(t, auth)
	sess, ctx := m.Attach(context.Background(), "")

	_, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	n, err := m.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	assert.Equal(t, StateAuthenticated, sess.State())
	assert.Equal(t, "jwt-1", sess.Token())

	m.mu.RLock()
	_, alive := m.live[sess.ID()]
	m.mu.RUnlock()
	assert.True(t, alive)
}

// TestLoginAgainstRealClient wires the manager to a real upstream client so
// the full loop runs: login goes out anonymous, the follow-up who-am-I
// carries the fresh bearer token from the session.
func TestLoginAgainstRealClient(t *testing.T) {
	var meAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"), "login must go out anonymous")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"jwt-live"}`))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		meAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","email":"mary@example.mw","role":"farmer","district_id":"d1"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sealer, err := tokenseal.New("test-secret")
	require.NoError(t, err)
	m := NewManager(NewMemoryStore(), sealer, time.Hour)
	svcs := upstream.NewServices(srv.URL, 5*time.Second, m, m)
	m.BindAuth(svcs.Auth)

	sess, ctx := m.Attach(context.Background(), "")
	user, err := m.Login(ctx, sess, domain.LoginCredentials{Email: "mary@example.mw", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer jwt-live", meAuth)
	assert.Equal(t, domain.RoleFarmer, user.Role)
	assert.Equal(t, StateAuthenticated, sess.State())
}

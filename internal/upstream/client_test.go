package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource with a fixed token and an invalidation flag.
type staticTokens struct {
	token       string
	invalidated bool
}

func (s *staticTokens) Token(context.Context) string { return s.token }
func (s *staticTokens) Invalidate(context.Context)   { s.invalidated = true; s.token = "" }

// recordingNotifier captures every notice emitted by the client.
type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) {
	r.notices = append(r.notices, n)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) (*Client, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	notify := &recordingNotifier{}
	return NewClient(srv.URL, 5*time.Second, tokens, notify), notify
}

func TestClientSendsStandardHeaders(t *testing.T) {
	var got http.Header
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}, &staticTokens{})

	var out map[string]interface{}
	require.NoError(t, client.Get(context.Background(), "/districts/", &out))

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "XMLHttpRequest", got.Get("X-Requested-With"))
	assert.Empty(t, got.Get("Authorization"), "anonymous request must not carry a bearer token")
}

func TestClientAttachesBearerToken(t *testing.T) {
	var auth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}, &staticTokens{token: "tok-123"})

	var out map[string]interface{}
	require.NoError(t, client.Get(context.Background(), "/auth/me", &out))
	assert.Equal(t, "Bearer tok-123", auth)
}

func TestClientUnauthorizedInvalidatesToken(t *testing.T) {
	tokens := &staticTokens{token: "stale"}
	client, notify := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, tokens)

	err := client.Get(context.Background(), "/auth/me", nil)
	require.Error(t, err)

	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ue.Status)
	assert.True(t, IsUnauthenticated(err))
	assert.True(t, tokens.invalidated, "401 must invalidate the token source")

	require.Len(t, notify.notices, 1)
	assert.Equal(t, "Session Expired", notify.notices[0].Title)
}

func TestClientParsesErrorBody(t *testing.T) {
	client, notify := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"farm size out of range","field":"farm_size_hectares"}`))
	}, &staticTokens{token: "t"})

	err := client.Post(context.Background(), "/farmers/applications", map[string]string{}, nil)
	require.Error(t, err)

	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, ue.Status)
	assert.Equal(t, "farm size out of range", ue.Message)
	assert.Equal(t, "farm_size_hectares", ue.Body["field"])

	require.Len(t, notify.notices, 1)
	assert.Equal(t, "API Error (422)", notify.notices[0].Title)
}

func TestClientErrorFallsBackToStatusText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>nginx</html>"))
	}, &staticTokens{})

	err := client.Get(context.Background(), "/districts/", nil)
	require.Error(t, err)

	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, ue.Status)
	// Non-JSON error bodies surface the raw status line
	assert.Contains(t, ue.Message, "502")
}

func TestClientNetworkFailure(t *testing.T) {
	// Point at a closed server so the dial fails
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	notify := &recordingNotifier{}
	client := NewClient(url, time.Second, &staticTokens{}, notify)

	err := client.Get(context.Background(), "/districts/", nil)
	require.Error(t, err)

	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 0, ue.Status)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsUnauthenticated(err))

	require.Len(t, notify.notices, 1)
	assert.Equal(t, "Network Error", notify.notices[0].Title)
}

func TestClientNonJSONSuccessAsText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	}, &staticTokens{})

	var out string
	require.NoError(t, client.Get(context.Background(), "/ping", &out))
	assert.Equal(t, "pong", out)
}

func TestClientDiscardsBodyWhenOutIsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ignored":true}`))
	}, &staticTokens{})

	assert.NoError(t, client.Post(context.Background(), "/predictions/reload-model", nil, nil))
}

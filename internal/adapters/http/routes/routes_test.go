package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agriloan-portal/internal/adapters/http/middleware"
	"agriloan-portal/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedUpstream fakes the AgriLoan API for full-stack portal tests.
type scriptedUpstream struct {
	mux *http.ServeMux

	token string
	role  string
}

func newScriptedUpstream() *scriptedUpstream {
	s := &scriptedUpstream{mux: http.NewServeMux(), token: "jwt-test", role: "farmer"}

	s.mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "correct-pw" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"access_token": s.token})
	})

	s.mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "u1",
			"email":       "mary@example.mw",
			"first_name":  "Mary",
			"last_name":   "Banda",
			"role":        s.role,
			"district_id": "d1",
		})
	})

	s.mux.HandleFunc("/farmers/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "name": "Mary Banda"})
	})

	s.mux.HandleFunc("/districts/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{{"id": "d1", "name": "Lilongwe"}})
	})

	return s
}

func newTestPortal(t *testing.T, up *scriptedUpstream) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(up.mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "0",
		Upstream: config.UpstreamConfig{
			BaseURL: srv.URL,
			Timeout: 5 * time.Second,
		},
		Session: config.SessionConfig{
			Secret:      "test-secret",
			TTL:         time.Hour,
			Store:       config.StoreMemory,
			JanitorSpec: "@every 15m",
		},
		Cookie: config.CookieConfig{
			Name:     "portal_session",
			SameSite: "lax",
		},
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	_, err := Setup(app, nil, cfg)
	require.NoError(t, err)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, cookie, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(data)
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "portal_session" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no portal_session cookie set")
	return ""
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doRequest(t, app, fiber.MethodPost, "/portal/v1/auth/login", "",
		`{"email":"mary@example.mw","password":"correct-pw"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	return sessionCookie(t, resp)
}

func TestLoginOpensSession(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())

	resp, body := doRequest(t, app, fiber.MethodPost, "/portal/v1/auth/login", "",
		`{"email":"mary@example.mw","password":"correct-pw"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"mary@example.mw"`)

	cookie := sessionCookie(t, resp)
	resp, body = doRequest(t, app, fiber.MethodGet, "/portal/v1/auth/me", cookie, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"farmer"`)
}

func TestLoginWithBadPassword(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())

	resp, _ := doRequest(t, app, fiber.MethodPost, "/portal/v1/auth/login", "",
		`{"email":"mary@example.mw","password":"wrong"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginValidation(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())

	resp, _ := doRequest(t, app, fiber.MethodPost, "/portal/v1/auth/login", "", `{"password":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, fiber.MethodPost, "/portal/v1/auth/login", "", `{"email":"a@b.c"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogoutClosesSession(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())
	cookie := login(t, app)

	resp, _ := doRequest(t, app, fiber.MethodPost, "/portal/v1/auth/logout", cookie, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, fiber.MethodGet, "/portal/v1/auth/me", cookie, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpstreamRejectionClearsSession(t *testing.T) {
	up := newScriptedUpstream()
	app := newTestPortal(t, up)
	cookie := login(t, app)

	// The upstream starts rejecting the token mid-session
	up.token = "rotated-away"

	resp, _ := doRequest(t, app, fiber.MethodGet, "/portal/v1/farmers/profile", cookie, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// The forced logout must be visible on the next request
	resp, _ = doRequest(t, app, fiber.MethodGet, "/portal/v1/auth/me", cookie, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// And the session expired notice must be queued for the browser
	resp, body := doRequest(t, app, fiber.MethodGet, "/portal/v1/notices", cookie, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Session Expired")
}

func TestPageGuardRedirects(t *testing.T) {
	up := newScriptedUpstream()
	up.role = "admin"
	app := newTestPortal(t, up)

	// Anonymous on a protected page
	resp, _ := doRequest(t, app, fiber.MethodGet, "/dashboard", "", "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))

	cookie := login(t, app)

	// Authenticated on a guest-only page
	resp, _ = doRequest(t, app, fiber.MethodGet, "/auth/login", cookie, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	// /dashboard resolves to the role's own dashboard
	resp, _ = doRequest(t, app, fiber.MethodGet, "/dashboard", cookie, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard/admin", resp.Header.Get("Location"))

	// Wrong role on a role page bounces to the default dashboard
	resp, _ = doRequest(t, app, fiber.MethodGet, "/farmer/apply", cookie, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	// A foreign role path bounces to the session's own dashboard
	resp, _ = doRequest(t, app, fiber.MethodGet, "/dashboard/farmer", cookie, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard/admin", resp.Header.Get("Location"))
}

func TestAPIRoleGuard(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())
	cookie := login(t, app) // farmer

	resp, _ := doRequest(t, app, fiber.MethodGet, "/portal/v1/admin/users", cookie, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, fiber.MethodGet, "/portal/v1/farmers/profile", cookie, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Anonymous callers get 401, not 403
	resp, _ = doRequest(t, app, fiber.MethodGet, "/portal/v1/admin/users", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDistrictsArePublic(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())

	resp, body := doRequest(t, app, fiber.MethodGet, "/portal/v1/districts/", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Lilongwe")
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())

	resp, body := doRequest(t, app, fiber.MethodGet, "/health", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"healthy"`)
}

func TestUnknownRouteReturns404(t *testing.T) {
	app := newTestPortal(t, newScriptedUpstream())

	resp, body := doRequest(t, app, fiber.MethodGet, "/portal/v1/nope", "", "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Route not found")
}

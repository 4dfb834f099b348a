package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agriloan-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream is a scriptable AgriLoan API for façade tests.
type fakeUpstream struct {
	mux   *http.ServeMux
	calls map[string]int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{mux: http.NewServeMux(), calls: map[string]int{}}
}

func (f *fakeUpstream) handle(pattern string, status int, payload interface{}) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		f.calls[r.URL.Path]++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload)
	})
}

func (f *fakeUpstream) services(t *testing.T) *Services {
	t.Helper()
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)
	return NewServices(srv.URL, 5*time.Second, &staticTokens{token: "t"}, nil)
}

func TestAuthMeNormalizesDistrictID(t *testing.T) {
	fake := newFakeUpstream()
	fake.handle("/auth/me", http.StatusOK, map[string]interface{}{
		"id":         "u1",
		"email":      "mary@example.mw",
		"first_name": "Mary",
		"last_name":  "Banda",
		"role":       "farmer",
		"district":   map[string]string{"id": "d-lilongwe", "name": "Lilongwe"},
	})

	user, err := fake.services(t).Auth.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RoleFarmer, user.Role)
	assert.Equal(t, "d-lilongwe", user.DistrictID, "district_id must fall back to the nested district")
}

func TestAuthMeRejectsUnknownRole(t *testing.T) {
	fake := newFakeUpstream()
	fake.handle("/auth/me", http.StatusOK, map[string]interface{}{
		"id":   "u1",
		"role": "superuser",
	})

	_, err := fake.services(t).Auth.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestAuthLoginReturnsAccessToken(t *testing.T) {
	fake := newFakeUpstream()
	fake.handle("/auth/login", http.StatusOK, map[string]string{"access_token": "jwt-abc"})

	token, err := fake.services(t).Auth.Login(context.Background(), domain.LoginCredentials{
		Email:    "mary@example.mw",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
}

func TestDistrictsCaching(t *testing.T) {
	fake := newFakeUpstream()
	fake.handle("/districts/", http.StatusOK, []domain.District{
		{ID: "d1", Name: "Lilongwe"},
		{ID: "d2", Name: "Blantyre"},
	})
	svcs := fake.services(t)

	first, err := svcs.Districts.Districts(context.Background())
	require.NoError(t, err)
	second, err := svcs.Districts.Districts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.calls["/districts/"], "second call must be served from cache")

	// Mutating the returned slice must not poison the cache
	second[0].Name = "mutated"
	third, err := svcs.Districts.Districts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Lilongwe", third[0].Name)

	svcs.ClearCaches()
	_, err = svcs.Districts.Districts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls["/districts/"], "cache clear must force a refetch")
}

func TestSupervisorReviewHitsApprovePath(t *testing.T) {
	fake := newFakeUpstream()
	fake.handle("/supervisors/applications/app-9/approve", http.StatusOK, domain.Application{
		ApplicationID: "app-9",
		Status:        domain.StatusApproved,
	})

	amount := 250000.0
	app, err := fake.services(t).Supervisors.Review(context.Background(), "app-9", domain.ReviewInput{
		Decision:          "approve",
		ApprovedAmountMWK: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, app.Status)
}

func TestPredictionHistoryPath(t *testing.T) {
	fake := newFakeUpstream()
	fake.handle("/predictions/prediction-history/farmer-7", http.StatusOK, []domain.PredictionResponse{
		{PredictedAmountMWK: 180000, RiskScore: 0.21},
	})

	history, err := fake.services(t).Predictions.History(context.Background(), "farmer-7")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, 180000, history[0].PredictedAmountMWK, 0.01)
}

func TestAdminUsersForwardsQuery(t *testing.T) {
	fake := newFakeUpstream()
	var gotQuery string
	fake.mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]domain.User{})
	})

	_, err := fake.services(t).Admin.Users(context.Background(), "?page=3&limit=50")
	require.NoError(t, err)
	assert.Equal(t, "page=3&limit=50", gotQuery)
}

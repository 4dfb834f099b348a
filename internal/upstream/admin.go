package upstream

import (
	"context"
	"fmt"

	"agriloan-portal/internal/core/domain"
)

// AdminAPI wraps the /admin/* endpoints.
type AdminAPI struct {
	client *Client
}

// NewAdminAPI creates the admin façade.
func NewAdminAPI(client *Client) *AdminAPI {
	return &AdminAPI{client: client}
}

// ModelPerformance fetches aggregate ML model performance metrics. The
// shape is owned by the upstream reporting layer and passed through.
func (a *AdminAPI) ModelPerformance(ctx context.Context) (map[string]interface{}, error) {
	var perf map[string]interface{}
	if err := a.client.Get(ctx, "/admin/model-performance", &perf); err != nil {
		return nil, err
	}
	return perf, nil
}

// UpdateSystemSetting sets one system configuration key.
func (a *AdminAPI) UpdateSystemSetting(ctx context.Context, key, value, description string) error {
	body := map[string]string{
		"key":         key,
		"value":       value,
		"description": description,
	}
	return a.client.Post(ctx, "/admin/system-settings", body, nil)
}

// CreateUser provisions a new user account.
func (a *AdminAPI) CreateUser(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
	var user domain.User
	if err := a.client.Post(ctx, "/admin/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users lists user accounts. query is a pre-encoded query string
// ("?page=2&limit=20") or empty.
func (a *AdminAPI) Users(ctx context.Context, query string) ([]domain.User, error) {
	var users []domain.User
	if err := a.client.Get(ctx, "/admin/users"+query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User fetches one user by ID.
func (a *AdminAPI) User(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	if err := a.client.Get(ctx, fmt.Sprintf("/admin/users/%s", userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user account.
func (a *AdminAPI) UpdateUser(ctx context.Context, userID string, fields map[string]interface{}) (*domain.User, error) {
	var user domain.User
	if err := a.client.Put(ctx, fmt.Sprintf("/admin/users/%s", userID), fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeactivateUser disables a user account.
func (a *AdminAPI) DeactivateUser(ctx context.Context, userID string) error {
	return a.client.Delete(ctx, fmt.Sprintf("/admin/users/%s", userID), nil)
}

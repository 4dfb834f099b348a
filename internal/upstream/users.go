package upstream

import (
	"context"

	"agriloan-portal/internal/core/domain"
)

// UsersAPI wraps the /users/* and /dashboard/* profile endpoints.
type UsersAPI struct {
	client *Client
}

// NewUsersAPI creates the users façade.
func NewUsersAPI(client *Client) *UsersAPI {
	return &UsersAPI{client: client}
}

// UpdateProfile updates the current user's own profile fields.
func (u *UsersAPI) UpdateProfile(ctx context.Context, fields map[string]interface{}) (*domain.User, error) {
	var user domain.User
	if err := u.client.Put(ctx, "/users/update-profile", fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DashboardInfo fetches the current user's dashboard header payload.
func (u *UsersAPI) DashboardInfo(ctx context.Context) (map[string]interface{}, error) {
	var info map[string]interface{}
	if err := u.client.Get(ctx, "/dashboard/me", &info); err != nil {
		return nil, err
	}
	return info, nil
}

// CropTypes lists crop types from the dashboard reference endpoint.
func (u *UsersAPI) CropTypes(ctx context.Context) ([]domain.CropType, error) {
	var crops []domain.CropType
	if err := u.client.Get(ctx, "/dashboard/crop-types", &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

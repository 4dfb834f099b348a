package upstream

import (
	"context"

	"agriloan-portal/internal/core/domain"
)

// AuthAPI wraps the /auth/* endpoints.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth façade.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// meResponse carries the raw who-am-I payload. district_id has appeared
// both as a scalar and nested under district across API revisions; it is
// normalized here in one place.
type meResponse struct {
	ID            string                `json:"id"`
	Email         string                `json:"email"`
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name"`
	PhoneNumber   string                `json:"phone_number"`
	Role          string                `json:"role"`
	DistrictID    string                `json:"district_id"`
	District      *domain.District      `json:"district"`
	FarmerProfile *domain.FarmerProfile `json:"farmer_profile"`
}

// Login exchanges credentials for an access token. The response is not
// trusted to carry the full user; callers follow up with Me.
func (a *AuthAPI) Login(ctx context.Context, creds domain.LoginCredentials) (string, error) {
	var resp loginResponse
	if err := a.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Signup registers a new account. It does not log the account in.
func (a *AuthAPI) Signup(ctx context.Context, input domain.SignupInput) error {
	return a.client.Post(ctx, "/auth/signup", input, nil)
}

// Me fetches the authenticated user and normalizes the response shape.
func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var resp meResponse
	if err := a.client.Get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(resp.Role)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:            resp.ID,
		Email:         resp.Email,
		FirstName:     resp.FirstName,
		LastName:      resp.LastName,
		PhoneNumber:   resp.PhoneNumber,
		Role:          role,
		DistrictID:    resp.DistrictID,
		District:      resp.District,
		FarmerProfile: resp.FarmerProfile,
	}
	if user.DistrictID == "" && user.District != nil {
		user.DistrictID = user.District.ID
	}
	return user, nil
}

// RequestPasswordReset starts a password reset for an email or phone number.
func (a *AuthAPI) RequestPasswordReset(ctx context.Context, identifier string) error {
	body := map[string]string{"identifier": identifier}
	return a.client.Post(ctx, "/auth/password-reset", body, nil)
}

// VerifyOTP completes a password reset with the one-time code.
func (a *AuthAPI) VerifyOTP(ctx context.Context, otp, newPassword string) error {
	body := map[string]string{"otp": otp, "new_password": newPassword}
	return a.client.Post(ctx, "/auth/verify-otp", body, nil)
}

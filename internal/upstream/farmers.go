package upstream

import (
	"context"
	"fmt"

	"agriloan-portal/internal/core/domain"
)

// FarmersAPI wraps the /farmers/* endpoints.
type FarmersAPI struct {
	client *Client
}

// NewFarmersAPI creates the farmers façade.
func NewFarmersAPI(client *Client) *FarmersAPI {
	return &FarmersAPI{client: client}
}

// SubmitApplication files a new loan application for the current farmer.
func (f *FarmersAPI) SubmitApplication(ctx context.Context, input domain.ApplicationInput) (*domain.Application, error) {
	var app domain.Application
	if err := f.client.Post(ctx, "/farmers/applications", input, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Applications lists the current farmer's applications.
func (f *FarmersAPI) Applications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := f.client.Get(ctx, "/farmers/applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Application fetches one application by ID.
func (f *FarmersAPI) Application(ctx context.Context, applicationID string) (*domain.Application, error) {
	var app domain.Application
	if err := f.client.Get(ctx, fmt.Sprintf("/farmers/applications/%s", applicationID), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Profile fetches the current farmer's profile.
func (f *FarmersAPI) Profile(ctx context.Context) (*domain.FarmerProfile, error) {
	var profile domain.FarmerProfile
	if err := f.client.Get(ctx, "/farmers/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// YieldHistory fetches the current farmer's recorded yields.
func (f *FarmersAPI) YieldHistory(ctx context.Context) ([]domain.YieldHistory, error) {
	var history []domain.YieldHistory
	if err := f.client.Get(ctx, "/farmers/yield-history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

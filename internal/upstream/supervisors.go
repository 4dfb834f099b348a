package upstream

import (
	"context"
	"fmt"

	"agriloan-portal/internal/core/domain"
)

// SupervisorsAPI wraps the /supervisors/* endpoints.
type SupervisorsAPI struct {
	client *Client
}

// NewSupervisorsAPI creates the supervisors façade.
func NewSupervisorsAPI(client *Client) *SupervisorsAPI {
	return &SupervisorsAPI{client: client}
}

// Dashboard fetches the supervisor overview.
func (s *SupervisorsAPI) Dashboard(ctx context.Context) (*domain.SupervisorDashboard, error) {
	var dash domain.SupervisorDashboard
	if err := s.client.Get(ctx, "/supervisors/dashboard", &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// LoanOfficers lists officers under the current supervisor.
func (s *SupervisorsAPI) LoanOfficers(ctx context.Context) ([]domain.User, error) {
	var officers []domain.User
	if err := s.client.Get(ctx, "/supervisors/loan-officers", &officers); err != nil {
		return nil, err
	}
	return officers, nil
}

// PendingApplications lists applications awaiting a decision.
func (s *SupervisorsAPI) PendingApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := s.client.Get(ctx, "/supervisors/applications/pending", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Review submits an approve/reject decision for an application.
func (s *SupervisorsAPI) Review(ctx context.Context, applicationID string, input domain.ReviewInput) (*domain.Application, error) {
	var app domain.Application
	path := fmt.Sprintf("/supervisors/applications/%s/approve", applicationID)
	if err := s.client.Post(ctx, path, input, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Assign routes an application to a loan officer.
func (s *SupervisorsAPI) Assign(ctx context.Context, applicationID, officerID string) error {
	body := map[string]string{"officer_id": officerID}
	path := fmt.Sprintf("/supervisors/applications/%s/assign", applicationID)
	return s.client.Post(ctx, path, body, nil)
}

package upstream

import (
	"context"

	"agriloan-portal/internal/core/domain"
)

// LoanOfficersAPI wraps the /loan-officers/* endpoints.
type LoanOfficersAPI struct {
	client *Client
}

// NewLoanOfficersAPI creates the loan officers façade.
func NewLoanOfficersAPI(client *Client) *LoanOfficersAPI {
	return &LoanOfficersAPI{client: client}
}

// Applications lists applications assigned to the current officer.
func (l *LoanOfficersAPI) Applications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := l.client.Get(ctx, "/loan-officers/applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// DashboardStats fetches the officer dashboard summary.
func (l *LoanOfficersAPI) DashboardStats(ctx context.Context) (*domain.OfficerStats, error) {
	var stats domain.OfficerStats
	if err := l.client.Get(ctx, "/loan-officers/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AccessibleDistricts lists districts the current officer may work in.
func (l *LoanOfficersAPI) AccessibleDistricts(ctx context.Context) ([]domain.District, error) {
	var districts []domain.District
	if err := l.client.Get(ctx, "/loan-officers/districts", &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// CropTypes lists the crop types supported for applications.
func (l *LoanOfficersAPI) CropTypes(ctx context.Context) ([]domain.CropType, error) {
	var crops []domain.CropType
	if err := l.client.Get(ctx, "/loan-officers/crop-types", &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

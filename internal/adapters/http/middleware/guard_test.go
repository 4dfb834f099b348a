package middleware

import (
	"testing"

	"agriloan-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	anon := GuardState{}
	loading := GuardState{Loading: true}
	farmer := GuardState{Authenticated: true, Role: domain.RoleFarmer}
	admin := GuardState{Authenticated: true, Role: domain.RoleAdmin}

	public := Requirement{}
	guest := Requirement{GuestOnly: true}
	authed := Requirement{RequireAuth: true}
	farmerOnly := Requirement{Roles: []domain.Role{domain.RoleFarmer}}
	staff := Requirement{Roles: []domain.Role{domain.RoleSupervisor, domain.RoleAdmin}}

	tests := []struct {
		name string
		s    GuardState
		r    Requirement
		want Decision
	}{
		{"public page anonymous", anon, public, DecisionRender},
		{"public page authenticated", farmer, public, DecisionRender},
		{"loading never redirects on auth page", loading, authed, DecisionLoading},
		{"loading never redirects on guest page", loading, guest, DecisionLoading},
		{"loading never redirects on role page", loading, farmerOnly, DecisionLoading},
		{"auth page anonymous", anon, authed, DecisionRedirectLogin},
		{"auth page authenticated", farmer, authed, DecisionRender},
		{"guest page anonymous", anon, guest, DecisionRender},
		{"guest page authenticated", farmer, guest, DecisionRedirectDashboard},
		{"role page anonymous", anon, farmerOnly, DecisionRedirectLogin},
		{"role page matching role", farmer, farmerOnly, DecisionRender},
		{"role page wrong role", admin, farmerOnly, DecisionRedirectDashboard},
		{"multi-role page allowed", admin, staff, DecisionRender},
		{"multi-role page denied", farmer, staff, DecisionRedirectDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.s, tt.r))
		})
	}
}

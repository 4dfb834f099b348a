package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, role := range Roles() {
		parsed, err := ParseRole(string(role))
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	parsed, err := ParseRole("  farmer ")
	require.NoError(t, err)
	assert.Equal(t, RoleFarmer, parsed)

	_, err = ParseRole("root")
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestDashboardPathIsTotal(t *testing.T) {
	seen := map[string]bool{}
	for _, role := range Roles() {
		path := role.DashboardPath()
		assert.NotEqual(t, "/dashboard", path, "every role must have its own dashboard")
		assert.False(t, seen[path], "dashboard paths must be distinct")
		seen[path] = true
	}
}

func TestUserHasRole(t *testing.T) {
	u := &User{Role: RoleSupervisor}
	assert.True(t, u.HasRole(RoleSupervisor))
	assert.True(t, u.HasRole(RoleAdmin, RoleSupervisor))
	assert.False(t, u.HasRole(RoleFarmer, RoleLoanOfficer))
}

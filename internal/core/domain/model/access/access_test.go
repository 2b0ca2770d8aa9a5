package access_test

import (
	"testing"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoleSet(t *testing.T) {
	tests := []struct {
		name    string
		isAgent bool
		isAdmin bool
		highest access.Role
		staff   bool
		str     string
	}{
		{"customer only", false, false, access.Customer, false, "Customer"},
		{"agent", true, false, access.Agent, true, "Customer,Agent"},
		{"admin", false, true, access.Admin, true, "Customer,Admin"},
		{"agent and admin", true, true, access.Admin, true, "Customer,Agent,Admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := access.NewRoleSet(tt.isAgent, tt.isAdmin)

			assert.True(t, rs.Has(access.Customer))
			assert.Equal(t, tt.isAgent, rs.Has(access.Agent))
			assert.Equal(t, tt.isAdmin, rs.Has(access.Admin))
			assert.Equal(t, tt.highest, rs.Highest())
			assert.Equal(t, tt.staff, rs.IsStaff())
			assert.Equal(t, tt.str, rs.String())
		})
	}
}

func TestRoleSet_HasRejectsUnknownRoles(t *testing.T) {
	rs := access.NewRoleSet(true, true)

	assert.False(t, rs.Has(access.UnknownRole))
	assert.False(t, rs.Has(access.Role(7)))
}

func TestRole_Validate(t *testing.T) {
	require.NoError(t, access.Admin.Validate())
	require.Error(t, access.UnknownRole.Validate())
	assert.Equal(t, "Unknown", access.Role(42).String())
}

func TestNewPrincipal(t *testing.T) {
	t.Run("valid principal", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := access.NewPrincipal(id, true, false)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.Is(id))
		assert.True(t, p.IsAgent())
		assert.False(t, p.IsAdmin())
		assert.True(t, p.IsStaff())
	})

	t.Run("rejects zero user id", func(t *testing.T) {
		_, err := access.NewPrincipal(kernel.UUID{}, false, false)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero principal is invalid", func(t *testing.T) {
		var p access.Principal

		assert.Equal(t, access.ErrPrincipalIsNotConstructed, p.Validate())
	})
}

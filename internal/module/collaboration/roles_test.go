package collaboration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharePermissionCovers(t *testing.T) {
	tests := []struct {
		name     string
		held     SharePermission
		required SharePermission
		want     bool
	}{
		{"read covers read", PermissionRead, PermissionRead, true},
		{"read does not cover write", PermissionRead, PermissionWrite, false},
		{"write covers read", PermissionWrite, PermissionRead, true},
		{"write does not cover admin", PermissionWrite, PermissionAdmin, false},
		{"admin covers write", PermissionAdmin, PermissionWrite, true},
		{"admin covers admin", PermissionAdmin, PermissionAdmin, true},
		{"unknown covers nothing", SharePermission("BOGUS"), PermissionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.held.Covers(tt.required))
		})
	}
}

func TestIsValidInviteRole(t *testing.T) {
	assert.True(t, IsValidInviteRole(RoleAdmin))
	assert.True(t, IsValidInviteRole(RoleMember))
	assert.True(t, IsValidInviteRole(RoleViewer))
	assert.False(t, IsValidInviteRole(RoleOwner))
	assert.False(t, IsValidInviteRole(UserRole("BOGUS")))
}

func TestUserRoleIsValid(t *testing.T) {
	for _, r := range []UserRole{RoleOwner, RoleAdmin, RoleMember, RoleViewer} {
		assert.True(t, r.IsValid())
	}
	assert.False(t, UserRole("guest").IsValid())
}

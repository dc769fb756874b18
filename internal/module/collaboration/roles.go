package collaboration

// permissionLevel maps share permissions to their hierarchy level
// (higher = more access).
var permissionLevel = map[SharePermission]int{
	PermissionRead:  1,
	PermissionWrite: 2,
	PermissionAdmin: 3,
}

// Level returns the hierarchy level of the permission.
func (p SharePermission) Level() int {
	if level, ok := permissionLevel[p]; ok {
		return level
	}
	return 0
}

// Covers checks if this permission grants at least the required level.
func (p SharePermission) Covers(required SharePermission) bool {
	return p.Level() >= required.Level()
}

// ValidInviteRoles returns the roles that can be assigned via invitation.
// Owner role cannot be assigned via invitation.
func ValidInviteRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleMember, RoleViewer}
}

// IsValidInviteRole checks if a role can be assigned via invitation.
func IsValidInviteRole(r UserRole) bool {
	for _, valid := range ValidInviteRoles() {
		if r == valid {
			return true
		}
	}
	return false
}

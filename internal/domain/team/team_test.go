package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsForRole(t *testing.T) {
	admin := PermissionsForRole(RoleAdmin)
	assert.True(t, admin.CanEdit)
	assert.True(t, admin.CanDelete)
	assert.True(t, admin.CanInvite)
	assert.True(t, admin.CanManageUsers)

	editor := PermissionsForRole(RoleEditor)
	assert.True(t, editor.CanEdit)
	assert.False(t, editor.CanDelete)
	assert.False(t, editor.CanInvite)
	assert.False(t, editor.CanManageUsers)

	viewer := PermissionsForRole(RoleViewer)
	assert.False(t, viewer.CanEdit)
	assert.False(t, viewer.CanDelete)
	assert.False(t, viewer.CanInvite)
	assert.False(t, viewer.CanManageUsers)
}

func TestRoleFromString(t *testing.T) {
	r, ok := RoleFromString("Admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = RoleFromString("superuser")
	assert.False(t, ok)
}

func TestDisplayNameFromEmail(t *testing.T) {
	assert.Equal(t, "ram bahadur", DisplayNameFromEmail("ram.bahadur@baato.io"))
	assert.Equal(t, "sita sharma", DisplayNameFromEmail("sita_sharma@baato.io"))
	assert.Equal(t, "admin", DisplayNameFromEmail("admin@baato.io"))
}

func TestNewUser(t *testing.T) {
	u := NewUser("maya.gurung@baato.io", RoleEditor)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "maya gurung", u.Name)
	assert.Equal(t, RoleEditor, u.Role)
	assert.Equal(t, PermissionsForRole(RoleEditor), u.Permissions,
		"Permissions must always be derived from the role")
}

func TestSetRoleRederivesPermissions(t *testing.T) {
	u := NewUser("viewer@baato.io", RoleViewer)
	assert.False(t, u.Permissions.CanEdit)

	require.NoError(t, u.SetRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, u.Permissions.CanManageUsers)

	assert.Error(t, u.SetRole("bogus"))
	assert.Equal(t, RoleAdmin, u.Role, "A rejected role change must leave the user untouched")
}

func TestNewMemberPending(t *testing.T) {
	m := NewMember("new.hire@baato.io", RoleEditor, "inviter-id")

	assert.Equal(t, MemberPending, m.Status)
	assert.Equal(t, "inviter-id", m.InvitedBy)
	assert.Equal(t, RoleEditor, m.Role)
}

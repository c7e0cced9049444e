package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLevel_DerivedMapping(t *testing.T) {
	tests := []struct {
		role Role
		want Level
	}{
		{RoleAdmin, LevelAdmin},
		{RoleSupervisor, LevelSupervisor},
		{RolePimpinan, LevelPimpinan},
		{RolePengelola, LevelPengelola},
		{RoleCustomer, LevelCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Level())
		})
	}
}

func TestRoleLevel_UnknownRoleNeverPromotes(t *testing.T) {
	for _, raw := range []string{"", "root", "ADMIN ", "superuser"} {
		assert.Equal(t, LevelCustomer, Role(raw).Level(), "role %q", raw)
		assert.Equal(t, RoleCustomer, ParseRole(raw), "role %q", raw)
	}
}

func TestAllowed_AddProductRestrictedToAdminAndPengelola(t *testing.T) {
	allowed := map[Role]bool{RoleAdmin: true, RolePengelola: true}

	for _, role := range []Role{RoleAdmin, RoleSupervisor, RolePimpinan, RolePengelola, RoleCustomer, Role("unknown")} {
		for _, action := range []Action{ActionAddProduct, ActionUpdateProduct, ActionDeleteProduct} {
			assert.Equal(t, allowed[role], Allowed(action, role), "action %s role %s", action, role)
		}
	}
}

func TestAllowed_ModerationActions(t *testing.T) {
	assert.True(t, Allowed(ActionAddSupervisor, RoleAdmin))
	assert.False(t, Allowed(ActionAddSupervisor, RoleSupervisor))

	assert.True(t, Allowed(ActionPromoteOrDemoteUser, RoleAdmin))
	assert.False(t, Allowed(ActionPromoteOrDemoteUser, RolePimpinan))

	assert.True(t, Allowed(ActionBlockUser, RoleSupervisor))
	assert.False(t, Allowed(ActionBlockUser, RoleAdmin))

	assert.True(t, Allowed(ActionDeleteUser, RoleAdmin))
	assert.True(t, Allowed(ActionDeleteUser, RoleSupervisor))
	assert.False(t, Allowed(ActionDeleteUser, RoleCustomer))
}

func TestAllowed_UnknownActionDenied(t *testing.T) {
	assert.False(t, Allowed(Action("dropTables"), RoleAdmin))
}

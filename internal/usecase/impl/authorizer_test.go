package impl

import (
	"context"
	"testing"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer_ResolveUnknownUser(t *testing.T) {
	t.Parallel()

	f := newFixture()

	_, err := f.authz.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthorizer_AuthorizeTable(t *testing.T) {
	t.Parallel()

	f := newFixture()

	cases := []struct {
		name    string
		action  entity.Action
		role    entity.Role
		allowed bool
	}{
		{"pengelola adds products", entity.ActionAddProduct, entity.RolePengelola, true},
		{"customer cannot add products", entity.ActionAddProduct, entity.RoleCustomer, false},
		{"supervisor cannot add products", entity.ActionAddProduct, entity.RoleSupervisor, false},
		{"supervisor blocks users", entity.ActionBlockUser, entity.RoleSupervisor, true},
		{"admin does not block users", entity.ActionBlockUser, entity.RoleAdmin, false},
		{"admin promotes", entity.ActionPromoteOrDemoteUser, entity.RoleAdmin, true},
		{"pimpinan holds no privileged action", entity.ActionAdvanceOrder, entity.RolePimpinan, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := f.authz.Authorize(tc.action, tc.role)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domainerrors.ErrForbidden)
			}
		})
	}
}

func TestAuthorizer_RequireRejectsBlockedUser(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedBlockedUser(t, "blocked-1")

	_, err := f.authz.Require(context.Background(), "blocked-1", entity.ActionAddProduct)
	assert.ErrorIs(t, err, domainerrors.ErrUserBlocked)
}

func TestAuthorizer_RequireReturnsResolvedUser(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedUser(t, "mgr-1", entity.RolePengelola)

	user, err := f.authz.Require(context.Background(), "mgr-1", entity.ActionAddProduct)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePengelola, user.Role)
	assert.Equal(t, entity.LevelPengelola, user.Level())
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatmoney-service/internal/error/apperr"
)

func TestResolveAccess_NoRowIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	stranger := env.user(t, "b@example.com")
	b := env.building(t, owner)

	access, err := env.access.ResolveAccess(env.ctx, stranger, b.ID)
	require.NoError(t, err)
	assert.Equal(t, Access{}, access)

	access, err = env.access.ResolveAccess(env.ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, Access{Exists: true, IsOwner: true, CanEdit: true}, access)
}

func TestRequire_NoRowIsForbiddenForEveryPermission(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	stranger := env.user(t, "b@example.com")
	b := env.building(t, owner)

	for _, perm := range []Permission{PermRead, PermEdit, PermOwner} {
		_, err := env.access.Require(env.ctx, stranger, b.ID, perm)
		assert.ErrorIs(t, err, apperr.ErrForbidden, perm.String())
	}

	// 不存在的楼宇同样返回 Forbidden，不泄露是否存在
	_, err := env.access.RequireRead(env.ctx, stranger, 9999)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestRequire_DeletedBuildingIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)

	require.NoError(t, env.buildings.DeleteBuilding(env.ctx, owner, b.ID))

	_, err := env.access.RequireRead(env.ctx, owner, b.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReadOnlyUserCanReadButNotCreateFloor(t *testing.T) {
	env := newTestEnv(t)
	userA := env.user(t, "a@example.com")
	userB := env.user(t, "b@example.com")
	b := env.building(t, userA)

	_, err := env.buildings.GetBuilding(env.ctx, userB, b.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.access.GrantAccess(env.ctx, userA, b.ID, GrantAccessRequest{UserID: userB, CanEdit: false})
	require.NoError(t, err)

	got, err := env.buildings.GetBuilding(env.ctx, userB, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, _, err = env.floors.CreateFloor(env.ctx, userB, b.ID, FloorInput{FloorNumber: 1})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestGrantAccess_ByEmailAndUpgrade(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	editor := env.user(t, "b@example.com")
	b := env.building(t, owner)

	row, err := env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{Email: "B@example.com"})
	require.NoError(t, err)
	assert.Equal(t, editor, row.UserID)
	assert.False(t, row.CanEdit)

	_, err = env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{UserID: editor, CanEdit: true})
	require.NoError(t, err)

	rows, err := env.access.ListAccess(env.ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	access, err := env.access.ResolveAccess(env.ctx, editor, b.ID)
	require.NoError(t, err)
	assert.True(t, access.CanEdit)
	assert.False(t, access.IsOwner)

	_, _, err = env.floors.CreateFloor(env.ctx, editor, b.ID, FloorInput{FloorNumber: 1})
	assert.NoError(t, err)
}

func TestGrantAccess_Rules(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	editor := env.user(t, "b@example.com")
	b := env.building(t, owner)

	_, err := env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{UserID: owner})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{UserID: editor, CanEdit: true})
	require.NoError(t, err)

	// 编辑者不能管理权限
	_, err = env.access.GrantAccess(env.ctx, editor, b.ID, GrantAccessRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestRevokeAccess(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	editor := env.user(t, "b@example.com")
	b := env.building(t, owner)

	_, err := env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{UserID: editor, CanEdit: true})
	require.NoError(t, err)

	assert.ErrorIs(t, env.access.RevokeAccess(env.ctx, owner, b.ID, owner), apperr.ErrInvalidInput)
	assert.ErrorIs(t, env.access.RevokeAccess(env.ctx, editor, b.ID, owner), apperr.ErrForbidden)

	require.NoError(t, env.access.RevokeAccess(env.ctx, owner, b.ID, editor))
	assert.ErrorIs(t, env.access.RevokeAccess(env.ctx, owner, b.ID, editor), apperr.ErrNotFound)

	_, err = env.buildings.GetBuilding(env.ctx, editor, b.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatmoney-service/internal/error/apperr"
)

func TestCreateBuilding_CreatesExactlyOneOwnerRow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")

	b := env.building(t, owner)
	assert.Equal(t, owner, b.CreatedBy)

	rows, err := env.store.Buildings.ListAccess(env.ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, owner, rows[0].UserID)
	assert.True(t, rows[0].IsOwner)
	assert.True(t, rows[0].CanEdit)
}

func TestCreateBuilding_Validation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")

	_, err := env.buildings.CreateBuilding(env.ctx, owner, BuildingInput{Name: " ", Address: "x", TotalFloors: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = env.buildings.CreateBuilding(env.ctx, owner, BuildingInput{Name: "x", Address: "x", TotalFloors: 0})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestListBuildings_UntilSoftDeleted(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	viewer := env.user(t, "b@example.com")
	b1 := env.building(t, owner)
	b2 := env.building(t, owner)

	list, err := env.buildings.ListBuildings(env.ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = env.buildings.ListBuildings(env.ctx, viewer)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.access.GrantAccess(env.ctx, owner, b2.ID, GrantAccessRequest{UserID: viewer})
	require.NoError(t, err)
	list, err = env.buildings.ListBuildings(env.ctx, viewer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b2.ID, list[0].ID)

	require.NoError(t, env.buildings.DeleteBuilding(env.ctx, owner, b1.ID))
	list, err = env.buildings.ListBuildings(env.ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b2.ID, list[0].ID)
}

func TestUpdateBuilding(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)

	name := "Renamed"
	floors := 9
	updated, err := env.buildings.UpdateBuilding(env.ctx, owner, b.ID, BuildingUpdate{Name: &name, TotalFloors: &floors})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 9, updated.TotalFloors)
	assert.Equal(t, "Main 1", updated.Address)

	zero := 0
	_, err = env.buildings.UpdateBuilding(env.ctx, owner, b.ID, BuildingUpdate{TotalFloors: &zero})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestDeleteBuilding_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	editor := env.user(t, "b@example.com")
	b := env.building(t, owner)

	_, err := env.access.GrantAccess(env.ctx, owner, b.ID, GrantAccessRequest{UserID: editor, CanEdit: true})
	require.NoError(t, err)

	assert.ErrorIs(t, env.buildings.DeleteBuilding(env.ctx, editor, b.ID), apperr.ErrForbidden)
	require.NoError(t, env.buildings.DeleteBuilding(env.ctx, owner, b.ID))
	assert.ErrorIs(t, env.buildings.DeleteBuilding(env.ctx, owner, b.ID), apperr.ErrNotFound)

	events := env.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventBuildingDeleted, events[0].Type)
	assert.Equal(t, b.ID, events[0].BuildingID)
}

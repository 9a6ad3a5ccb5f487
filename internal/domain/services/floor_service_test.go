package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatmoney-service/internal/error/apperr"
)

func TestCreateFloor_RestoresSoftDeletedRow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)

	f1, restored, err := env.floors.CreateFloor(env.ctx, owner, b.ID, FloorInput{FloorNumber: 3, TotalApartments: 2, Description: "old"})
	require.NoError(t, err)
	assert.False(t, restored)

	require.NoError(t, env.floors.DeleteFloor(env.ctx, owner, f1.ID, false))

	again, restored, err := env.floors.CreateFloor(env.ctx, owner, b.ID, FloorInput{FloorNumber: 3, TotalApartments: 5})
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, f1.ID, again.ID)
	assert.Equal(t, 5, again.TotalApartments)
	assert.Equal(t, "", again.Description, "fields are overwritten, not merged")
	assert.False(t, again.IsDeleted)

	floors, err := env.floors.ListFloors(env.ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Len(t, floors, 1)
}

func TestCreateFloor_ActiveKeyConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)

	f := env.floor(t, owner, b.ID, 1)

	_, _, err := env.floors.CreateFloor(env.ctx, owner, b.ID, FloorInput{FloorNumber: 1, TotalApartments: 99})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	unchanged, err := env.floors.GetFloor(env.ctx, owner, f.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, unchanged.TotalApartments)
}

func TestCreateFloor_SameNumberInOtherBuilding(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b1 := env.building(t, owner)
	b2 := env.building(t, owner)

	f1 := env.floor(t, owner, b1.ID, 1)
	f2 := env.floor(t, owner, b2.ID, 1)
	assert.NotEqual(t, f1.ID, f2.ID)
}

func TestCreateFloor_DeletedBuilding(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)
	require.NoError(t, env.buildings.DeleteBuilding(env.ctx, owner, b.ID))

	_, _, err := env.floors.CreateFloor(env.ctx, owner, b.ID, FloorInput{FloorNumber: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetFloor_DeletedIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	stranger := env.user(t, "b@example.com")
	b := env.building(t, owner)
	f := env.floor(t, owner, b.ID, 1)

	_, err := env.floors.GetFloor(env.ctx, stranger, f.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, env.floors.DeleteFloor(env.ctx, owner, f.ID, false))
	_, err = env.floors.GetFloor(env.ctx, owner, f.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = env.floors.GetFloor(env.ctx, owner, 4242)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateFloor_NumberConflict(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)
	env.floor(t, owner, b.ID, 1)
	f2 := env.floor(t, owner, b.ID, 2)

	one := 1
	_, err := env.floors.UpdateFloor(env.ctx, owner, f2.ID, FloorUpdate{FloorNumber: &one})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	desc := "top"
	updated, err := env.floors.UpdateFloor(env.ctx, owner, f2.ID, FloorUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "top", updated.Description)
}

func TestHardDeleteFloor_AnyApartmentRowBlocks(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)
	f := env.floor(t, owner, b.ID, 1)
	a := env.apartment(t, owner, f.ID, "1A")

	require.NoError(t, env.apartments.DeleteApartment(env.ctx, owner, a.ID, false))

	err := env.floors.DeleteFloor(env.ctx, owner, f.ID, true)
	assert.ErrorIs(t, err, apperr.ErrHasDependents)

	still, err := env.floors.GetFloor(env.ctx, owner, f.ID)
	require.NoError(t, err)
	assert.False(t, still.IsDeleted)
}

func TestHardDeleteFloor_Empty(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "a@example.com")
	b := env.building(t, owner)
	f := env.floor(t, owner, b.ID, 1)

	require.NoError(t, env.floors.DeleteFloor(env.ctx, owner, f.ID, true))

	_, err := env.store.Floors.FindByID(env.ctx, f.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// 物理删除后楼层号可重新插入
	again := env.floor(t, owner, b.ID, 1)
	assert.NotEqual(t, f.ID, again.ID)
}

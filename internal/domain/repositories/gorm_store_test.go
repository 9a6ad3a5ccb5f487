package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/error/apperr"
)

func setupMockStore(t *testing.T) (sqlmock.Sqlmock, *Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return mock, NewGormStore(gdb)
}

func TestFindAccess_NoRow(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "building_access"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "building_id", "is_owner", "can_edit"}))

	access, err := store.Buildings.FindAccess(context.Background(), 2, 1)

	require.NoError(t, err)
	assert.Nil(t, access)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAccess_Found(t *testing.T) {
	mock, store := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "building_id", "is_owner", "can_edit"}).
		AddRow(5, 2, 1, false, true)
	mock.ExpectQuery(`SELECT \* FROM "building_access"`).WillReturnRows(rows)

	access, err := store.Buildings.FindAccess(context.Background(), 2, 1)

	require.NoError(t, err)
	require.NotNil(t, access)
	assert.False(t, access.IsOwner)
	assert.True(t, access.CanEdit)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithOwner_Commits(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "buildings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "building_access"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	building := &models.Building{Name: "A", Address: "Main 1", TotalFloors: 5, CreatedBy: 3}
	err := store.Buildings.CreateWithOwner(context.Background(), building)

	require.NoError(t, err)
	assert.Equal(t, uint(7), building.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithOwner_RollsBackWhenAccessFails(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "buildings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "building_access"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	building := &models.Building{Name: "A", Address: "Main 1", TotalFloors: 5, CreatedBy: 3}
	err := store.Buildings.CreateWithOwner(context.Background(), building)

	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFloorInsert_UniqueViolationIsConflict(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "floors"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := store.Floors.Insert(context.Background(), &models.Floor{BuildingID: 1, FloorNumber: 3, TotalApartments: 4})

	assert.ErrorIs(t, err, apperr.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountApartments_IncludesDeleted(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "apartments" WHERE floor_id = \$1`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := store.Floors.CountApartments(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingSoftDelete_MissingRowIsNotFound(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "buildings" SET "is_deleted"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.Buildings.SoftDelete(context.Background(), 42)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

var floorColumns = []string{"id", "building_id", "floor_number", "total_apartments", "description", "is_deleted"}

func TestFloorRestore_KeepsIDAndOverwritesFields(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "floors" SET`).
		WithArgs("", false, 5, sqlmock.AnyArg(), 4, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "floors" WHERE "floors"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows(floorColumns).AddRow(4, 1, 3, 5, "", false))

	floor, err := store.Floors.Restore(context.Background(), 4, &models.Floor{BuildingID: 1, FloorNumber: 3, TotalApartments: 5})

	require.NoError(t, err)
	assert.Equal(t, uint(4), floor.ID)
	assert.Equal(t, 5, floor.TotalApartments)
	assert.Empty(t, floor.Description)
	assert.False(t, floor.IsDeleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFloorRestore_AlreadyRestoredIsNotFound(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "floors" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	floor, err := store.Floors.Restore(context.Background(), 4, &models.Floor{BuildingID: 1, FloorNumber: 3, TotalApartments: 5})

	assert.Nil(t, floor)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateObligations_Commits(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "obligations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "obligations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	obligations := []models.Obligation{
		{ApartmentID: 1, Amount: decimal.NewFromInt(40)},
		{ApartmentID: 2, Amount: decimal.NewFromInt(40)},
	}
	err := store.Ledger.CreateObligations(context.Background(), obligations)

	require.NoError(t, err)
	assert.Equal(t, uint(10), obligations[0].ID)
	assert.Equal(t, uint(11), obligations[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateObligations_RollsBackOnFailure(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "obligations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "obligations"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	obligations := []models.Obligation{
		{ApartmentID: 1, Amount: decimal.NewFromInt(40)},
		{ApartmentID: 2, Amount: decimal.NewFromInt(40)},
	}
	err := store.Ledger.CreateObligations(context.Background(), obligations)

	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveIDsByBuilding_FiltersDeletedFloorsAndApartments(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectQuery(`FROM "apartments" JOIN floors ON floors.id = apartments.floor_id ` +
		`WHERE floors.building_id = \$1 AND floors.is_deleted = \$2 AND apartments.is_deleted = \$3 ORDER BY apartments.id`).
		WithArgs(3, false, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))

	ids, err := store.Apartments.ListActiveIDsByBuilding(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, []uint{11, 12}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTotals_FiltersDeletedFloors(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectQuery(`FROM "deposits" .*WHERE floors.building_id = \$1 AND floors.is_deleted = \$2`).
		WithArgs(1, false, false, false).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("100.00"))
	mock.ExpectQuery(`FROM "obligations" .*WHERE floors.building_id = \$1 AND floors.is_deleted = \$2`).
		WithArgs(1, false, false, false).
		WillReturnRows(sqlmock.NewRows([]string{"paid", "unpaid"}).AddRow("40.00", "10.00"))

	deposits, paid, unpaid, err := store.Ledger.Totals(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "100", deposits.String())
	assert.Equal(t, "40", paid.String())
	assert.Equal(t, "10", unpaid.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApartmentHardDelete_ForeignKeyViolationHasDependents(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "apartments"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "update or delete violates foreign key constraint"})
	mock.ExpectRollback()

	err := store.Apartments.HardDelete(context.Background(), 5)

	assert.ErrorIs(t, err, apperr.ErrHasDependents)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountLedgerEntries_CountsDepositsAndObligations(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "obligations" WHERE apartment_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "deposits" WHERE apartment_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := store.Apartments.CountLedgerEntries(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

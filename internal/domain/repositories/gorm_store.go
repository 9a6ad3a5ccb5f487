package repositories

import (
	"errors"

	"gorm.io/gorm"

	"flatmoney-service/internal/error/apperr"
)

// NewGormStore 基于 gorm 的仓储实现，db 需以 TranslateError: true 打开
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:      &gormUserRepository{db: db},
		Buildings:  &gormBuildingRepository{db: db},
		Floors:     &gormFloorRepository{db: db},
		Apartments: &gormApartmentRepository{db: db},
		Ledger:     &gormLedgerRepository{db: db},
		Expenses:   &gormExpenseRepository{db: db},
	}
}

// translate 将 gorm 错误转换为领域错误
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(what + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(what + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.HasDependents(what + " is still referenced")
	default:
		return err
	}
}

// affected 更新语句未命中任何行时返回 NotFound
func affected(result *gorm.DB, what string) error {
	if result.Error != nil {
		return translate(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(what + " not found")
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"flatmoney-service/internal/domain/models"
)

type gormExpenseRepository struct {
	db *gorm.DB
}

func (r *gormExpenseRepository) ListTypes(ctx context.Context) ([]models.ExpenseType, error) {
	var types []models.ExpenseType
	if err := r.db.WithContext(ctx).Where("is_deleted = ?", false).Order("name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *gormExpenseRepository) FindType(ctx context.Context, id uint) (*models.ExpenseType, error) {
	var expenseType models.ExpenseType
	if err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).Take(&expenseType).Error; err != nil {
		return nil, translate(err, "expense type")
	}
	return &expenseType, nil
}

func (r *gormExpenseRepository) EnsureTypes(ctx context.Context, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			expenseType := models.ExpenseType{Name: name}
			if err := tx.Where(models.ExpenseType{Name: name}).FirstOrCreate(&expenseType).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormExpenseRepository) ListByBuilding(ctx context.Context, buildingID uint) ([]models.BuildingExpense, error) {
	var expenses []models.BuildingExpense
	err := r.db.WithContext(ctx).Model(&models.BuildingExpense{}).
		Select("building_expenses.*, expense_types.name AS expense_type_name").
		Joins("JOIN expense_types ON expense_types.id = building_expenses.expense_type_id").
		Where("building_expenses.building_id = ? AND building_expenses.is_deleted = ?", buildingID, false).
		Order("building_expenses.date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *gormExpenseRepository) Create(ctx context.Context, expense *models.BuildingExpense) error {
	return translate(r.db.WithContext(ctx).Create(expense).Error, "expense")
}

func (r *gormExpenseRepository) SoftDelete(ctx context.Context, buildingID, expenseID uint) error {
	result := r.db.WithContext(ctx).Model(&models.BuildingExpense{}).
		Where("id = ? AND building_id = ? AND is_deleted = ?", expenseID, buildingID, false).
		Update("is_deleted", true)
	return affected(result, "expense")
}

func (r *gormExpenseRepository) Total(ctx context.Context, buildingID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.BuildingExpense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("building_id = ? AND is_deleted = ?", buildingID, false).
		Row().Scan(&total)
	return total, err
}

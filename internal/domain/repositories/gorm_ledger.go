package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"flatmoney-service/internal/domain/models"
)

type gormLedgerRepository struct {
	db *gorm.DB
}

func (r *gormLedgerRepository) ListDeposits(ctx context.Context, apartmentID uint) ([]models.Deposit, error) {
	var deposits []models.Deposit
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND is_deleted = ?", apartmentID, false).
		Order("date DESC").
		Find(&deposits).Error
	if err != nil {
		return nil, err
	}
	return deposits, nil
}

func (r *gormLedgerRepository) CreateDeposit(ctx context.Context, deposit *models.Deposit) error {
	return translate(r.db.WithContext(ctx).Create(deposit).Error, "deposit")
}

func (r *gormLedgerRepository) SoftDeleteDeposit(ctx context.Context, apartmentID, depositID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Deposit{}).
		Where("id = ? AND apartment_id = ? AND is_deleted = ?", depositID, apartmentID, false).
		Update("is_deleted", true)
	return affected(result, "deposit")
}

func (r *gormLedgerRepository) ListObligations(ctx context.Context, apartmentID uint) ([]models.Obligation, error) {
	var obligations []models.Obligation
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND is_deleted = ?", apartmentID, false).
		Order("due_date ASC").
		Find(&obligations).Error
	if err != nil {
		return nil, err
	}
	return obligations, nil
}

func (r *gormLedgerRepository) FindObligation(ctx context.Context, id uint) (*models.Obligation, error) {
	var obligation models.Obligation
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Take(&obligation).Error
	if err != nil {
		return nil, translate(err, "obligation")
	}
	return &obligation, nil
}

func (r *gormLedgerRepository) CreateObligation(ctx context.Context, obligation *models.Obligation) error {
	return translate(r.db.WithContext(ctx).Create(obligation).Error, "obligation")
}

func (r *gormLedgerRepository) CreateObligations(ctx context.Context, obligations []models.Obligation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range obligations {
			if err := tx.Create(&obligations[i]).Error; err != nil {
				return translate(err, "obligation")
			}
		}
		return nil
	})
}

func (r *gormLedgerRepository) SetObligationPayment(ctx context.Context, id uint, isPaid bool, paymentDate *time.Time) (*models.Obligation, error) {
	result := r.db.WithContext(ctx).Model(&models.Obligation{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_paid":      isPaid,
			"payment_date": paymentDate,
		})
	if err := affected(result, "obligation"); err != nil {
		return nil, err
	}
	return r.FindObligation(ctx, id)
}

func (r *gormLedgerRepository) Totals(ctx context.Context, buildingID uint) (deposits, paid, unpaid decimal.Decimal, err error) {
	err = r.db.WithContext(ctx).Model(&models.Deposit{}).
		Select("COALESCE(SUM(deposits.amount), 0)").
		Joins("JOIN apartments ON apartments.id = deposits.apartment_id").
		Joins("JOIN floors ON floors.id = apartments.floor_id").
		Where("floors.building_id = ? AND floors.is_deleted = ? AND apartments.is_deleted = ? AND deposits.is_deleted = ?",
			buildingID, false, false, false).
		Row().Scan(&deposits)
	if err != nil {
		return
	}

	err = r.db.WithContext(ctx).Model(&models.Obligation{}).
		Select("COALESCE(SUM(CASE WHEN obligations.is_paid THEN obligations.amount ELSE 0 END), 0), "+
			"COALESCE(SUM(CASE WHEN obligations.is_paid THEN 0 ELSE obligations.amount END), 0)").
		Joins("JOIN apartments ON apartments.id = obligations.apartment_id").
		Joins("JOIN floors ON floors.id = apartments.floor_id").
		Where("floors.building_id = ? AND floors.is_deleted = ? AND apartments.is_deleted = ? AND obligations.is_deleted = ?",
			buildingID, false, false, false).
		Row().Scan(&paid, &unpaid)
	return
}

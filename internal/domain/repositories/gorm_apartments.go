package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/error/apperr"
)

type gormApartmentRepository struct {
	db *gorm.DB
}

func (r *gormApartmentRepository) FindByKey(ctx context.Context, floorID uint, number string) (*models.Apartment, error) {
	var apartment models.Apartment
	err := r.db.WithContext(ctx).
		Where("floor_id = ? AND apartment_number = ?", floorID, number).
		Take(&apartment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

func (r *gormApartmentRepository) Insert(ctx context.Context, apartment *models.Apartment) error {
	return translate(r.db.WithContext(ctx).Create(apartment).Error, "apartment")
}

func (r *gormApartmentRepository) Restore(ctx context.Context, id uint, apartment *models.Apartment) (*models.Apartment, error) {
	result := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{
			"owner_name":  apartment.OwnerName,
			"area":        apartment.Area,
			"rooms":       apartment.Rooms,
			"description": apartment.Description,
			"is_deleted":  false,
		})
	if err := affected(result, "deleted apartment"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *gormApartmentRepository) FindByID(ctx context.Context, id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := r.db.WithContext(ctx).Take(&apartment, id).Error; err != nil {
		return nil, translate(err, "apartment")
	}
	return &apartment, nil
}

func (r *gormApartmentRepository) ListByFloor(ctx context.Context, floorID uint) ([]models.Apartment, error) {
	var apartments []models.Apartment
	err := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Select("apartments.*, floors.floor_number").
		Joins("JOIN floors ON floors.id = apartments.floor_id").
		Where("apartments.floor_id = ? AND apartments.is_deleted = ?", floorID, false).
		Order("apartments.apartment_number").
		Find(&apartments).Error
	if err != nil {
		return nil, err
	}
	return apartments, nil
}

func (r *gormApartmentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Apartment, error) {
	result := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates)
	if err := affected(result, "apartment"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *gormApartmentRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	return affected(result, "apartment")
}

func (r *gormApartmentRepository) HardDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Apartment{}, id)
	return affected(result, "apartment")
}

func (r *gormApartmentRepository) CountLedgerEntries(ctx context.Context, apartmentID uint) (int64, error) {
	var obligations, deposits int64
	if err := r.db.WithContext(ctx).Model(&models.Obligation{}).
		Where("apartment_id = ?", apartmentID).
		Count(&obligations).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Deposit{}).
		Where("apartment_id = ?", apartmentID).
		Count(&deposits).Error; err != nil {
		return 0, err
	}
	return obligations + deposits, nil
}

func (r *gormApartmentRepository) BuildingIDOf(ctx context.Context, apartmentID uint) (uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Joins("JOIN floors ON floors.id = apartments.floor_id").
		Where("apartments.id = ?", apartmentID).
		Pluck("floors.building_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, apperr.NotFound("apartment not found")
	}
	return ids[0], nil
}

func (r *gormApartmentRepository) ListActiveIDsByBuilding(ctx context.Context, buildingID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Joins("JOIN floors ON floors.id = apartments.floor_id").
		Where("floors.building_id = ? AND floors.is_deleted = ? AND apartments.is_deleted = ?", buildingID, false, false).
		Order("apartments.id").
		Pluck("apartments.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flatmoney-service/internal/domain/models"
)

type gormFloorRepository struct {
	db *gorm.DB
}

func (r *gormFloorRepository) FindByKey(ctx context.Context, buildingID uint, floorNumber int) (*models.Floor, error) {
	var floor models.Floor
	err := r.db.WithContext(ctx).
		Where("building_id = ? AND floor_number = ?", buildingID, floorNumber).
		Take(&floor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &floor, nil
}

func (r *gormFloorRepository) Insert(ctx context.Context, floor *models.Floor) error {
	return translate(r.db.WithContext(ctx).Create(floor).Error, "floor")
}

func (r *gormFloorRepository) Restore(ctx context.Context, id uint, floor *models.Floor) (*models.Floor, error) {
	result := r.db.WithContext(ctx).Model(&models.Floor{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{
			"total_apartments": floor.TotalApartments,
			"description":      floor.Description,
			"is_deleted":       false,
		})
	if err := affected(result, "deleted floor"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *gormFloorRepository) FindByID(ctx context.Context, id uint) (*models.Floor, error) {
	var floor models.Floor
	if err := r.db.WithContext(ctx).Take(&floor, id).Error; err != nil {
		return nil, translate(err, "floor")
	}
	return &floor, nil
}

func (r *gormFloorRepository) ListByBuilding(ctx context.Context, buildingID uint) ([]models.Floor, error) {
	var floors []models.Floor
	err := r.db.WithContext(ctx).
		Where("building_id = ? AND is_deleted = ?", buildingID, false).
		Order("floor_number").
		Find(&floors).Error
	if err != nil {
		return nil, err
	}
	return floors, nil
}

func (r *gormFloorRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Floor, error) {
	result := r.db.WithContext(ctx).Model(&models.Floor{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates)
	if err := affected(result, "floor"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *gormFloorRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Floor{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	return affected(result, "floor")
}

func (r *gormFloorRepository) HardDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Floor{}, id)
	return affected(result, "floor")
}

func (r *gormFloorRepository) CountApartments(ctx context.Context, floorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Apartment{}).
		Where("floor_id = ?", floorID).
		Count(&count).Error
	return count, err
}

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"flatmoney-service/internal/domain/models"
)

type gormBuildingRepository struct {
	db *gorm.DB
}

func (r *gormBuildingRepository) CreateWithOwner(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(building).Error; err != nil {
			return translate(err, "building")
		}

		owner := models.BuildingAccess{
			UserID:     building.CreatedBy,
			BuildingID: building.ID,
			IsOwner:    true,
			CanEdit:    true,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return translate(err, "building access")
		}
		return nil
	})
}

func (r *gormBuildingRepository) FindByID(ctx context.Context, id uint) (*models.Building, error) {
	var building models.Building
	if err := r.db.WithContext(ctx).Take(&building, id).Error; err != nil {
		return nil, translate(err, "building")
	}
	return &building, nil
}

func (r *gormBuildingRepository) ListForUser(ctx context.Context, userID uint) ([]models.Building, error) {
	var buildings []models.Building

	shared := r.db.Model(&models.BuildingAccess{}).Select("building_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Where("created_by = ? OR id IN (?)", userID, shared).
		Order("id").
		Find(&buildings).Error
	if err != nil {
		return nil, err
	}
	return buildings, nil
}

func (r *gormBuildingRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Building, error) {
	result := r.db.WithContext(ctx).Model(&models.Building{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates)
	if err := affected(result, "building"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *gormBuildingRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Building{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	return affected(result, "building")
}

func (r *gormBuildingRepository) FindAccess(ctx context.Context, userID, buildingID uint) (*models.BuildingAccess, error) {
	var access models.BuildingAccess
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND building_id = ?", userID, buildingID).
		Take(&access).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *gormBuildingRepository) ListAccess(ctx context.Context, buildingID uint) ([]models.BuildingAccess, error) {
	var rows []models.BuildingAccess
	if err := r.db.WithContext(ctx).Where("building_id = ?", buildingID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormBuildingRepository) SaveAccess(ctx context.Context, access *models.BuildingAccess) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "building_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_owner", "can_edit", "updated_at"}),
	}).Create(access).Error
	return translate(err, "building access")
}

func (r *gormBuildingRepository) DeleteAccess(ctx context.Context, userID, buildingID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND building_id = ?", userID, buildingID).
		Delete(&models.BuildingAccess{})
	return affected(result, "building access")
}

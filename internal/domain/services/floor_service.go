package services

import (
	"context"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/infrastructure/metrics"
)

// FloorInput 创建或恢复楼层的参数
type FloorInput struct {
	FloorNumber     int
	TotalApartments int
	Description     string
}

// FloorUpdate 更新楼层的参数，nil 字段保持不变
type FloorUpdate struct {
	FloorNumber     *int
	TotalApartments *int
	Description     *string
}

// InterfaceFloorService 定义楼层服务接口
type InterfaceFloorService interface {
	ListFloors(ctx context.Context, userID, buildingID uint) ([]models.Floor, error)
	CreateFloor(ctx context.Context, userID, buildingID uint, in FloorInput) (floor *models.Floor, restored bool, err error)
	GetFloor(ctx context.Context, userID, floorID uint) (*models.Floor, error)
	UpdateFloor(ctx context.Context, userID, floorID uint, in FloorUpdate) (*models.Floor, error)
	DeleteFloor(ctx context.Context, userID, floorID uint, hard bool) error
}

// FloorService 提供楼层相关的服务
type FloorService struct {
	Store  *repositories.Store
	Access InterfaceAccessService
}

// NewFloorService 创建楼层服务
func NewFloorService(store *repositories.Store, access InterfaceAccessService) InterfaceFloorService {
	return &FloorService{
		Store:  store,
		Access: access,
	}
}

// 1 ListFloors 列出楼宇下未删除的楼层
func (s *FloorService) ListFloors(ctx context.Context, userID, buildingID uint) ([]models.Floor, error) {
	if _, err := s.Access.RequireRead(ctx, userID, buildingID); err != nil {
		return nil, err
	}
	return s.Store.Floors.ListByBuilding(ctx, buildingID)
}

// 2 CreateFloor 创建楼层；同号楼层已删除时恢复原行
func (s *FloorService) CreateFloor(ctx context.Context, userID, buildingID uint, in FloorInput) (*models.Floor, bool, error) {
	if _, err := s.Access.RequireEdit(ctx, userID, buildingID); err != nil {
		return nil, false, err
	}
	if in.TotalApartments < 0 {
		return nil, false, apperr.Invalid("total_apartments cannot be negative")
	}

	floor := &models.Floor{
		BuildingID:      buildingID,
		FloorNumber:     in.FloorNumber,
		TotalApartments: in.TotalApartments,
		Description:     in.Description,
	}
	return restoreOrCreate[models.Floor, int](ctx, s.Store.Floors, "floor", buildingID, in.FloorNumber, floor)
}

// 3 GetFloor 获取楼层详情
func (s *FloorService) GetFloor(ctx context.Context, userID, floorID uint) (*models.Floor, error) {
	return s.authorize(ctx, userID, floorID, PermRead)
}

// 4 UpdateFloor 更新楼层信息
func (s *FloorService) UpdateFloor(ctx context.Context, userID, floorID uint, in FloorUpdate) (*models.Floor, error) {
	floor, err := s.authorize(ctx, userID, floorID, PermEdit)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.FloorNumber != nil && *in.FloorNumber != floor.FloorNumber {
		updates["floor_number"] = *in.FloorNumber
	}
	if in.TotalApartments != nil {
		if *in.TotalApartments < 0 {
			return nil, apperr.Invalid("total_apartments cannot be negative")
		}
		updates["total_apartments"] = *in.TotalApartments
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return floor, nil
	}

	return s.Store.Floors.Update(ctx, floorID, updates)
}

// 5 DeleteFloor 删除楼层
//
// 默认逻辑删除，楼层号保留供恢复；hard 为 true 时物理删除，
// 只要存在任意公寓行（包括已删除的）就拒绝。
func (s *FloorService) DeleteFloor(ctx context.Context, userID, floorID uint, hard bool) error {
	if _, err := s.load(ctx, userID, floorID, PermEdit, hard); err != nil {
		return err
	}

	if !hard {
		if err := s.Store.Floors.SoftDelete(ctx, floorID); err != nil {
			return err
		}
		metrics.RecordLifecycle("floor", "deleted")
		return nil
	}

	count, err := s.Store.Floors.CountApartments(ctx, floorID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.HasDependents("floor has apartments")
	}
	if err := s.Store.Floors.HardDelete(ctx, floorID); err != nil {
		return err
	}
	metrics.RecordLifecycle("floor", "purged")
	return nil
}

func (s *FloorService) authorize(ctx context.Context, userID, floorID uint, perm Permission) (*models.Floor, error) {
	return s.load(ctx, userID, floorID, perm, false)
}

// load 加载楼层并校验其所属楼宇的权限；先校验权限再判断删除状态
func (s *FloorService) load(ctx context.Context, userID, floorID uint, perm Permission, allowDeleted bool) (*models.Floor, error) {
	floor, err := s.Store.Floors.FindByID(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Access.Require(ctx, userID, floor.BuildingID, perm); err != nil {
		return nil, err
	}
	if floor.IsDeleted && !allowDeleted {
		return nil, apperr.NotFound("floor not found")
	}
	return floor, nil
}

package services

import (
	"context"
	"strings"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
)

// BuildingInput 创建楼宇的参数
type BuildingInput struct {
	Name        string
	Address     string
	TotalFloors int
	Description *string
}

// BuildingUpdate 更新楼宇的参数，nil 字段保持不变
type BuildingUpdate struct {
	Name        *string
	Address     *string
	TotalFloors *int
	Description *string
}

// InterfaceBuildingService 定义楼宇服务接口
type InterfaceBuildingService interface {
	ListBuildings(ctx context.Context, userID uint) ([]models.Building, error)
	GetBuilding(ctx context.Context, userID, buildingID uint) (*models.Building, error)
	CreateBuilding(ctx context.Context, userID uint, in BuildingInput) (*models.Building, error)
	UpdateBuilding(ctx context.Context, userID, buildingID uint, in BuildingUpdate) (*models.Building, error)
	DeleteBuilding(ctx context.Context, userID, buildingID uint) error
}

// BuildingService 提供楼宇相关的服务
type BuildingService struct {
	Store    *repositories.Store
	Access   InterfaceAccessService
	Notifier InterfaceNotifyService
}

// NewBuildingService 创建楼宇服务
func NewBuildingService(store *repositories.Store, access InterfaceAccessService, notifier InterfaceNotifyService) InterfaceBuildingService {
	return &BuildingService{
		Store:    store,
		Access:   access,
		Notifier: notifier,
	}
}

// 1 ListBuildings 用户创建的和被授权的楼宇，不含已删除的
func (s *BuildingService) ListBuildings(ctx context.Context, userID uint) ([]models.Building, error) {
	return s.Store.Buildings.ListForUser(ctx, userID)
}

// 2 GetBuilding 获取楼宇详情
func (s *BuildingService) GetBuilding(ctx context.Context, userID, buildingID uint) (*models.Building, error) {
	return s.Access.RequireRead(ctx, userID, buildingID)
}

// 3 CreateBuilding 创建楼宇，创建者在同一事务中成为所有者
func (s *BuildingService) CreateBuilding(ctx context.Context, userID uint, in BuildingInput) (*models.Building, error) {
	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	if name == "" || address == "" {
		return nil, apperr.Invalid("name and address are required")
	}
	if in.TotalFloors <= 0 {
		return nil, apperr.Invalid("total_floors must be positive")
	}

	building := &models.Building{
		Name:        name,
		Address:     address,
		TotalFloors: in.TotalFloors,
		Description: in.Description,
		CreatedBy:   userID,
	}
	if err := s.Store.Buildings.CreateWithOwner(ctx, building); err != nil {
		return nil, err
	}
	return building, nil
}

// 4 UpdateBuilding 更新楼宇信息，需要编辑权限
func (s *BuildingService) UpdateBuilding(ctx context.Context, userID, buildingID uint, in BuildingUpdate) (*models.Building, error) {
	building, err := s.Access.RequireEdit(ctx, userID, buildingID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Invalid("name cannot be empty")
		}
		updates["name"] = name
	}
	if in.Address != nil {
		address := strings.TrimSpace(*in.Address)
		if address == "" {
			return nil, apperr.Invalid("address cannot be empty")
		}
		updates["address"] = address
	}
	if in.TotalFloors != nil {
		if *in.TotalFloors <= 0 {
			return nil, apperr.Invalid("total_floors must be positive")
		}
		updates["total_floors"] = *in.TotalFloors
	}
	if in.Description != nil {
		updates["description"] = in.Description
	}
	if len(updates) == 0 {
		return building, nil
	}

	return s.Store.Buildings.Update(ctx, buildingID, updates)
}

// 5 DeleteBuilding 逻辑删除楼宇，仅所有者可操作
func (s *BuildingService) DeleteBuilding(ctx context.Context, userID, buildingID uint) error {
	if _, err := s.Access.RequireOwner(ctx, userID, buildingID); err != nil {
		return err
	}
	if err := s.Store.Buildings.SoftDelete(ctx, buildingID); err != nil {
		return err
	}

	s.Notifier.Publish(ctx, buildingID, EventBuildingDeleted, map[string]interface{}{
		"deleted_by": userID,
	})
	return nil
}

package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/infrastructure/metrics"
)

// ApartmentInput 创建或恢复公寓的参数
type ApartmentInput struct {
	ApartmentNumber string
	OwnerName       string
	Area            decimal.Decimal
	Rooms           int
	Description     string
}

// ApartmentUpdate 更新公寓的参数，nil 字段保持不变
type ApartmentUpdate struct {
	ApartmentNumber *string
	OwnerName       *string
	Area            *decimal.Decimal
	Rooms           *int
	Description     *string
}

// InterfaceApartmentService 定义公寓服务接口
type InterfaceApartmentService interface {
	ListApartments(ctx context.Context, userID, floorID uint) ([]models.Apartment, error)
	CreateApartment(ctx context.Context, userID, floorID uint, in ApartmentInput) (apartment *models.Apartment, restored bool, err error)
	GetApartment(ctx context.Context, userID, apartmentID uint) (*models.Apartment, error)
	UpdateApartment(ctx context.Context, userID, apartmentID uint, in ApartmentUpdate) (*models.Apartment, error)
	DeleteApartment(ctx context.Context, userID, apartmentID uint, hard bool) error
}

// ApartmentService 提供公寓相关的服务
type ApartmentService struct {
	Store  *repositories.Store
	Access InterfaceAccessService
}

// NewApartmentService 创建公寓服务
func NewApartmentService(store *repositories.Store, access InterfaceAccessService) InterfaceApartmentService {
	return &ApartmentService{
		Store:  store,
		Access: access,
	}
}

// 1 ListApartments 列出楼层下未删除的公寓
func (s *ApartmentService) ListApartments(ctx context.Context, userID, floorID uint) ([]models.Apartment, error) {
	if _, err := s.activeFloor(ctx, userID, floorID, PermRead); err != nil {
		return nil, err
	}
	return s.Store.Apartments.ListByFloor(ctx, floorID)
}

// 2 CreateApartment 在未删除的楼层上创建公寓；同号公寓已删除时恢复原行
func (s *ApartmentService) CreateApartment(ctx context.Context, userID, floorID uint, in ApartmentInput) (*models.Apartment, bool, error) {
	floor, err := s.activeFloor(ctx, userID, floorID, PermEdit)
	if err != nil {
		return nil, false, err
	}

	number := strings.TrimSpace(in.ApartmentNumber)
	owner := strings.TrimSpace(in.OwnerName)
	switch {
	case number == "":
		return nil, false, apperr.Invalid("apartment_number is required")
	case owner == "":
		return nil, false, apperr.Invalid("owner_name is required")
	case !in.Area.IsPositive():
		return nil, false, apperr.Invalid("area must be positive")
	case in.Rooms < 0:
		return nil, false, apperr.Invalid("rooms cannot be negative")
	}

	apartment := &models.Apartment{
		FloorID:         floorID,
		ApartmentNumber: number,
		OwnerName:       owner,
		Area:            in.Area,
		Rooms:           in.Rooms,
		Description:     in.Description,
	}
	result, restored, err := restoreOrCreate[models.Apartment, string](ctx, s.Store.Apartments, "apartment", floorID, number, apartment)
	if err != nil {
		return nil, false, err
	}
	result.FloorNumber = floor.FloorNumber
	return result, restored, nil
}

// 3 GetApartment 获取公寓详情
func (s *ApartmentService) GetApartment(ctx context.Context, userID, apartmentID uint) (*models.Apartment, error) {
	return loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermRead, false)
}

// 4 UpdateApartment 更新公寓信息
func (s *ApartmentService) UpdateApartment(ctx context.Context, userID, apartmentID uint, in ApartmentUpdate) (*models.Apartment, error) {
	apartment, err := loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermEdit, false)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.ApartmentNumber != nil {
		number := strings.TrimSpace(*in.ApartmentNumber)
		if number == "" {
			return nil, apperr.Invalid("apartment_number cannot be empty")
		}
		if number != apartment.ApartmentNumber {
			updates["apartment_number"] = number
		}
	}
	if in.OwnerName != nil {
		owner := strings.TrimSpace(*in.OwnerName)
		if owner == "" {
			return nil, apperr.Invalid("owner_name cannot be empty")
		}
		updates["owner_name"] = owner
	}
	if in.Area != nil {
		if !in.Area.IsPositive() {
			return nil, apperr.Invalid("area must be positive")
		}
		updates["area"] = *in.Area
	}
	if in.Rooms != nil {
		if *in.Rooms < 0 {
			return nil, apperr.Invalid("rooms cannot be negative")
		}
		updates["rooms"] = *in.Rooms
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return apartment, nil
	}

	updated, err := s.Store.Apartments.Update(ctx, apartmentID, updates)
	if err != nil {
		return nil, err
	}
	updated.FloorNumber = apartment.FloorNumber
	return updated, nil
}

// 5 DeleteApartment 删除公寓
//
// 默认逻辑删除；hard 为 true 时物理删除，只要存在任意存款或应缴款项行就拒绝。
// 检查之后插入的账目由外键约束兜底，同样返回 HasDependents。
func (s *ApartmentService) DeleteApartment(ctx context.Context, userID, apartmentID uint, hard bool) error {
	if _, err := loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermEdit, hard); err != nil {
		return err
	}

	if !hard {
		if err := s.Store.Apartments.SoftDelete(ctx, apartmentID); err != nil {
			return err
		}
		metrics.RecordLifecycle("apartment", "deleted")
		return nil
	}

	count, err := s.Store.Apartments.CountLedgerEntries(ctx, apartmentID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.HasDependents("apartment has deposits or obligations")
	}
	if err := s.Store.Apartments.HardDelete(ctx, apartmentID); err != nil {
		return err
	}
	metrics.RecordLifecycle("apartment", "purged")
	return nil
}

func (s *ApartmentService) activeFloor(ctx context.Context, userID, floorID uint, perm Permission) (*models.Floor, error) {
	floor, err := s.Store.Floors.FindByID(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Access.Require(ctx, userID, floor.BuildingID, perm); err != nil {
		return nil, err
	}
	if floor.IsDeleted {
		return nil, apperr.NotFound("floor not found")
	}
	return floor, nil
}

// loadApartment 加载公寓并校验所属楼宇的权限
//
// 公寓或其楼层已删除时返回 NotFound，除非 allowDeleted。
func loadApartment(ctx context.Context, store *repositories.Store, access InterfaceAccessService,
	userID, apartmentID uint, perm Permission, allowDeleted bool) (*models.Apartment, error) {
	apartment, err := store.Apartments.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	floor, err := store.Floors.FindByID(ctx, apartment.FloorID)
	if err != nil {
		return nil, err
	}
	if _, err := access.Require(ctx, userID, floor.BuildingID, perm); err != nil {
		return nil, err
	}
	if !allowDeleted && (apartment.IsDeleted || floor.IsDeleted) {
		return nil, apperr.NotFound("apartment not found")
	}
	apartment.FloorNumber = floor.FloorNumber
	return apartment, nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/infrastructure/metrics"
)

// Permission 楼宇操作所需的权限等级
type Permission int

const (
	// PermRead 存在任意权限行
	PermRead Permission = iota
	// PermEdit 需要 can_edit
	PermEdit
	// PermOwner 需要 is_owner
	PermOwner
)

func (p Permission) String() string {
	switch p {
	case PermEdit:
		return "edit"
	case PermOwner:
		return "owner"
	default:
		return "read"
	}
}

// Access 用户对某楼宇的权限等级，没有权限行时 Exists 为 false
type Access struct {
	Exists  bool `json:"exists"`
	IsOwner bool `json:"is_owner"`
	CanEdit bool `json:"can_edit"`
}

// Allows 判断权限是否满足要求
func (a Access) Allows(p Permission) bool {
	switch p {
	case PermOwner:
		return a.Exists && a.IsOwner
	case PermEdit:
		return a.Exists && a.CanEdit
	default:
		return a.Exists
	}
}

// GrantAccessRequest 授权请求，UserID 和 Email 二选一
type GrantAccessRequest struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	CanEdit bool   `json:"can_edit"`
}

// InterfaceAccessService 楼宇权限判定，所有楼宇范围的操作都经由此处
type InterfaceAccessService interface {
	ResolveAccess(ctx context.Context, userID, buildingID uint) (Access, error)
	Require(ctx context.Context, userID, buildingID uint, perm Permission) (*models.Building, error)
	RequireRead(ctx context.Context, userID, buildingID uint) (*models.Building, error)
	RequireEdit(ctx context.Context, userID, buildingID uint) (*models.Building, error)
	RequireOwner(ctx context.Context, userID, buildingID uint) (*models.Building, error)

	ListAccess(ctx context.Context, userID, buildingID uint) ([]models.BuildingAccess, error)
	GrantAccess(ctx context.Context, userID, buildingID uint, req GrantAccessRequest) (*models.BuildingAccess, error)
	RevokeAccess(ctx context.Context, userID, buildingID, targetUserID uint) error
}

// AccessService 基于 building_access 表的权限判定
type AccessService struct {
	Store *repositories.Store
}

// NewAccessService 创建权限服务
func NewAccessService(store *repositories.Store) InterfaceAccessService {
	return &AccessService{Store: store}
}

// 1 ResolveAccess 查询用户在楼宇上的权限，没有权限行不是错误
func (s *AccessService) ResolveAccess(ctx context.Context, userID, buildingID uint) (Access, error) {
	row, err := s.Store.Buildings.FindAccess(ctx, userID, buildingID)
	if err != nil {
		return Access{}, err
	}
	if row == nil {
		return Access{}, nil
	}
	return Access{Exists: true, IsOwner: row.IsOwner, CanEdit: row.CanEdit}, nil
}

// 2 Require 校验权限并返回未删除的楼宇
//
// 没有权限行时返回 Forbidden，不区分楼宇是否存在；有权限行但楼宇已删除时返回 NotFound。
func (s *AccessService) Require(ctx context.Context, userID, buildingID uint, perm Permission) (*models.Building, error) {
	access, err := s.ResolveAccess(ctx, userID, buildingID)
	if err != nil {
		return nil, err
	}
	if !access.Exists {
		metrics.RecordAccessDenied(perm.String())
		return nil, apperr.Forbidden("no access to this building")
	}

	building, err := s.Store.Buildings.FindByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building.IsDeleted {
		return nil, apperr.NotFound("building not found")
	}

	if !access.Allows(perm) {
		metrics.RecordAccessDenied(perm.String())
		return nil, apperr.Forbidden(perm.String() + " permission required")
	}
	return building, nil
}

// 3 RequireRead 读取楼宇数据所需的权限
func (s *AccessService) RequireRead(ctx context.Context, userID, buildingID uint) (*models.Building, error) {
	return s.Require(ctx, userID, buildingID, PermRead)
}

// 4 RequireEdit 修改楼层、公寓、账目所需的权限
func (s *AccessService) RequireEdit(ctx context.Context, userID, buildingID uint) (*models.Building, error) {
	return s.Require(ctx, userID, buildingID, PermEdit)
}

// 5 RequireOwner 删除楼宇和管理权限所需的权限
func (s *AccessService) RequireOwner(ctx context.Context, userID, buildingID uint) (*models.Building, error) {
	return s.Require(ctx, userID, buildingID, PermOwner)
}

// 6 ListAccess 列出楼宇的所有权限行
func (s *AccessService) ListAccess(ctx context.Context, userID, buildingID uint) ([]models.BuildingAccess, error) {
	if _, err := s.RequireOwner(ctx, userID, buildingID); err != nil {
		return nil, err
	}
	return s.Store.Buildings.ListAccess(ctx, buildingID)
}

// 7 GrantAccess 为其他用户授予或更新非所有者权限
func (s *AccessService) GrantAccess(ctx context.Context, userID, buildingID uint, req GrantAccessRequest) (*models.BuildingAccess, error) {
	if _, err := s.RequireOwner(ctx, userID, buildingID); err != nil {
		return nil, err
	}

	target, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	if target.ID == userID {
		return nil, apperr.Invalid("cannot change your own access")
	}

	existing, err := s.Store.Buildings.FindAccess(ctx, target.ID, buildingID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsOwner {
		return nil, apperr.Invalid("cannot change an owner's access")
	}

	access := &models.BuildingAccess{
		UserID:     target.ID,
		BuildingID: buildingID,
		IsOwner:    false,
		CanEdit:    req.CanEdit,
	}
	if err := s.Store.Buildings.SaveAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

// 8 RevokeAccess 撤销其他用户的权限，所有者行不能被撤销
func (s *AccessService) RevokeAccess(ctx context.Context, userID, buildingID, targetUserID uint) error {
	if _, err := s.RequireOwner(ctx, userID, buildingID); err != nil {
		return err
	}
	if targetUserID == userID {
		return apperr.Invalid("cannot revoke your own access")
	}

	existing, err := s.Store.Buildings.FindAccess(ctx, targetUserID, buildingID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("building access not found")
	}
	if existing.IsOwner {
		return apperr.Invalid("cannot revoke an owner's access")
	}
	return s.Store.Buildings.DeleteAccess(ctx, targetUserID, buildingID)
}

func (s *AccessService) resolveTarget(ctx context.Context, req GrantAccessRequest) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case req.UserID != 0:
		user, err = s.Store.Users.FindByID(ctx, req.UserID)
	case strings.TrimSpace(req.Email) != "":
		user, err = s.Store.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	default:
		return nil, apperr.Invalid("user_id or email is required")
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	return user, err
}

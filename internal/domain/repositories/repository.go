package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/models"
)

// TombstoneStore 按 (父ID, 自然键) 定位行的存储契约，供“删除后重建即恢复”流程使用
type TombstoneStore[T models.Tombstoned, K comparable] interface {
	// FindByKey 查找自然键对应的行（包含已删除的），不存在时返回 nil, nil
	FindByKey(ctx context.Context, parentID uint, key K) (*T, error)
	// Insert 插入新行，唯一约束冲突返回 apperr.ErrConflict
	Insert(ctx context.Context, entity *T) error
	// Restore 用新数据整体覆盖已删除的行并清除删除标记
	Restore(ctx context.Context, id uint, entity *T) (*T, error)
}

// UserRepository 用户存储
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// BuildingRepository 楼宇及访问权限存储
type BuildingRepository interface {
	// CreateWithOwner 在同一事务中创建楼宇和创建者的所有者权限
	CreateWithOwner(ctx context.Context, building *models.Building) error
	// FindByID 返回楼宇（包含已删除的），不存在时返回 apperr.ErrNotFound
	FindByID(ctx context.Context, id uint) (*models.Building, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Building, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Building, error)
	SoftDelete(ctx context.Context, id uint) error

	// FindAccess 没有权限行时返回 nil, nil
	FindAccess(ctx context.Context, userID, buildingID uint) (*models.BuildingAccess, error)
	ListAccess(ctx context.Context, buildingID uint) ([]models.BuildingAccess, error)
	SaveAccess(ctx context.Context, access *models.BuildingAccess) error
	DeleteAccess(ctx context.Context, userID, buildingID uint) error
}

// FloorRepository 楼层存储
type FloorRepository interface {
	TombstoneStore[models.Floor, int]

	FindByID(ctx context.Context, id uint) (*models.Floor, error)
	ListByBuilding(ctx context.Context, buildingID uint) ([]models.Floor, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Floor, error)
	SoftDelete(ctx context.Context, id uint) error
	// HardDelete 楼层下仍有公寓行时返回 apperr.ErrHasDependents
	HardDelete(ctx context.Context, id uint) error
	// CountApartments 统计楼层下的公寓行数，包含已删除的
	CountApartments(ctx context.Context, floorID uint) (int64, error)
}

// ApartmentRepository 公寓存储
type ApartmentRepository interface {
	TombstoneStore[models.Apartment, string]

	FindByID(ctx context.Context, id uint) (*models.Apartment, error)
	ListByFloor(ctx context.Context, floorID uint) ([]models.Apartment, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Apartment, error)
	SoftDelete(ctx context.Context, id uint) error
	// HardDelete 公寓下仍有账目行时返回 apperr.ErrHasDependents
	HardDelete(ctx context.Context, id uint) error
	// CountLedgerEntries 统计公寓下的存款和应缴款项行数，包含已删除的
	CountLedgerEntries(ctx context.Context, apartmentID uint) (int64, error)
	// BuildingIDOf 解析公寓所属楼宇
	BuildingIDOf(ctx context.Context, apartmentID uint) (uint, error)
	// ListActiveIDsByBuilding 楼宇下所有未删除楼层中未删除的公寓
	ListActiveIDsByBuilding(ctx context.Context, buildingID uint) ([]uint, error)
}

// LedgerRepository 存款和应缴款项存储
type LedgerRepository interface {
	ListDeposits(ctx context.Context, apartmentID uint) ([]models.Deposit, error)
	CreateDeposit(ctx context.Context, deposit *models.Deposit) error
	SoftDeleteDeposit(ctx context.Context, apartmentID, depositID uint) error

	ListObligations(ctx context.Context, apartmentID uint) ([]models.Obligation, error)
	FindObligation(ctx context.Context, id uint) (*models.Obligation, error)
	CreateObligation(ctx context.Context, obligation *models.Obligation) error
	// CreateObligations 在同一事务中批量创建，任一失败全部回滚
	CreateObligations(ctx context.Context, obligations []models.Obligation) error
	SetObligationPayment(ctx context.Context, id uint, isPaid bool, paymentDate *time.Time) (*models.Obligation, error)

	// Totals 楼宇下未删除存款和应缴款项的合计
	Totals(ctx context.Context, buildingID uint) (deposits, paid, unpaid decimal.Decimal, err error)
}

// ExpenseRepository 支出分类和楼宇支出存储
type ExpenseRepository interface {
	ListTypes(ctx context.Context) ([]models.ExpenseType, error)
	FindType(ctx context.Context, id uint) (*models.ExpenseType, error)
	EnsureTypes(ctx context.Context, names []string) error

	ListByBuilding(ctx context.Context, buildingID uint) ([]models.BuildingExpense, error)
	Create(ctx context.Context, expense *models.BuildingExpense) error
	SoftDelete(ctx context.Context, buildingID, expenseID uint) error
	Total(ctx context.Context, buildingID uint) (decimal.Decimal, error)
}

// Store 聚合所有仓储，注入到服务容器
type Store struct {
	Users      UserRepository
	Buildings  BuildingRepository
	Floors     FloorRepository
	Apartments ApartmentRepository
	Ledger     LedgerRepository
	Expenses   ExpenseRepository
}

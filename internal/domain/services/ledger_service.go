package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/infrastructure/metrics"
)

// DepositInput 新增存款的参数
type DepositInput struct {
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// ObligationInput 新增应缴款项的参数，单个和批量共用
type ObligationInput struct {
	Amount      decimal.Decimal
	DueDate     time.Time
	Description string
}

func (in ObligationInput) validate() error {
	if !in.Amount.IsPositive() {
		return apperr.Invalid("amount must be positive")
	}
	if in.DueDate.IsZero() {
		return apperr.Invalid("due_date is required")
	}
	return nil
}

// InterfaceLedgerService 定义存款和应缴款项服务接口
type InterfaceLedgerService interface {
	ListDeposits(ctx context.Context, userID, apartmentID uint) ([]models.Deposit, error)
	CreateDeposit(ctx context.Context, userID, apartmentID uint, in DepositInput) (*models.Deposit, error)
	DeleteDeposit(ctx context.Context, userID, apartmentID, depositID uint) error

	ListObligations(ctx context.Context, userID, apartmentID uint) ([]models.Obligation, error)
	CreateObligation(ctx context.Context, userID, apartmentID uint, in ObligationInput) (*models.Obligation, error)
	SetObligationPaid(ctx context.Context, userID, obligationID uint, isPaid bool, paymentDate *time.Time) (*models.Obligation, error)
	BulkCreateObligations(ctx context.Context, userID, buildingID uint, in ObligationInput) (int, error)
}

// LedgerService 提供公寓账目相关的服务
type LedgerService struct {
	Store    *repositories.Store
	Access   InterfaceAccessService
	Notifier InterfaceNotifyService
	now      func() time.Time
}

// NewLedgerService 创建账目服务
func NewLedgerService(store *repositories.Store, access InterfaceAccessService, notifier InterfaceNotifyService) InterfaceLedgerService {
	return &LedgerService{
		Store:    store,
		Access:   access,
		Notifier: notifier,
		now:      time.Now,
	}
}

// 1 ListDeposits 列出公寓的存款，按日期倒序
func (s *LedgerService) ListDeposits(ctx context.Context, userID, apartmentID uint) ([]models.Deposit, error) {
	if _, err := loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermRead, false); err != nil {
		return nil, err
	}
	return s.Store.Ledger.ListDeposits(ctx, apartmentID)
}

// 2 CreateDeposit 为公寓新增存款
func (s *LedgerService) CreateDeposit(ctx context.Context, userID, apartmentID uint, in DepositInput) (*models.Deposit, error) {
	if _, err := loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermEdit, false); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Invalid("amount must be positive")
	}
	if in.Date.IsZero() {
		return nil, apperr.Invalid("date is required")
	}

	deposit := &models.Deposit{
		ApartmentID: apartmentID,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	}
	if err := s.Store.Ledger.CreateDeposit(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// 3 DeleteDeposit 逻辑删除公寓下的一笔存款
func (s *LedgerService) DeleteDeposit(ctx context.Context, userID, apartmentID, depositID uint) error {
	if _, err := loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermEdit, false); err != nil {
		return err
	}
	return s.Store.Ledger.SoftDeleteDeposit(ctx, apartmentID, depositID)
}

// 4 ListObligations 列出公寓的应缴款项，按到期日升序
func (s *LedgerService) ListObligations(ctx context.Context, userID, apartmentID uint) ([]models.Obligation, error) {
	if _, err := loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermRead, false); err != nil {
		return nil, err
	}
	return s.Store.Ledger.ListObligations(ctx, apartmentID)
}

// 5 CreateObligation 为公寓新增应缴款项
func (s *LedgerService) CreateObligation(ctx context.Context, userID, apartmentID uint, in ObligationInput) (*models.Obligation, error) {
	if _, err := loadApartment(ctx, s.Store, s.Access, userID, apartmentID, PermEdit, false); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	obligation := &models.Obligation{
		ApartmentID: apartmentID,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Description: in.Description,
	}
	if err := s.Store.Ledger.CreateObligation(ctx, obligation); err != nil {
		return nil, err
	}
	return obligation, nil
}

// 6 SetObligationPaid 标记应缴款项为已缴或未缴
//
// 标记已缴且未给出缴费日期时取当天；标记未缴时清空缴费日期。
func (s *LedgerService) SetObligationPaid(ctx context.Context, userID, obligationID uint, isPaid bool, paymentDate *time.Time) (*models.Obligation, error) {
	obligation, err := s.Store.Ledger.FindObligation(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	apartment, err := loadApartment(ctx, s.Store, s.Access, userID, obligation.ApartmentID, PermEdit, false)
	if err != nil {
		return nil, err
	}

	if !isPaid {
		paymentDate = nil
	} else if paymentDate == nil {
		today := s.now().UTC().Truncate(24 * time.Hour)
		paymentDate = &today
	}

	updated, err := s.Store.Ledger.SetObligationPayment(ctx, obligationID, isPaid, paymentDate)
	if err != nil {
		return nil, err
	}

	if isPaid {
		floor, err := s.Store.Floors.FindByID(ctx, apartment.FloorID)
		if err == nil {
			s.Notifier.Publish(ctx, floor.BuildingID, EventObligationPaid, map[string]interface{}{
				"obligation_id": updated.ID,
				"apartment_id":  updated.ApartmentID,
				"amount":        updated.Amount,
			})
		}
	}
	return updated, nil
}

// 7 BulkCreateObligations 为楼宇下每个有效公寓创建相同的应缴款项
//
// 只包含未删除楼层上的未删除公寓；所有行在同一事务中写入，任一失败全部回滚。
// 没有公寓时返回 0。
func (s *LedgerService) BulkCreateObligations(ctx context.Context, userID, buildingID uint, in ObligationInput) (int, error) {
	if _, err := s.Access.RequireEdit(ctx, userID, buildingID); err != nil {
		return 0, err
	}
	if err := in.validate(); err != nil {
		return 0, err
	}

	apartmentIDs, err := s.Store.Apartments.ListActiveIDsByBuilding(ctx, buildingID)
	if err != nil {
		return 0, err
	}
	if len(apartmentIDs) == 0 {
		return 0, nil
	}

	obligations := make([]models.Obligation, 0, len(apartmentIDs))
	for _, id := range apartmentIDs {
		obligations = append(obligations, models.Obligation{
			ApartmentID: id,
			Amount:      in.Amount,
			DueDate:     in.DueDate,
			Description: in.Description,
		})
	}
	if err := s.Store.Ledger.CreateObligations(ctx, obligations); err != nil {
		return 0, err
	}

	metrics.RecordObligationsIssued(len(obligations))
	s.Notifier.Publish(ctx, buildingID, EventObligationsIssued, map[string]interface{}{
		"count":       len(obligations),
		"amount":      in.Amount,
		"due_date":    in.DueDate.Format("2006-01-02"),
		"description": in.Description,
	})
	return len(obligations), nil
}

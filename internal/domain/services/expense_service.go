package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
)

// DefaultExpenseTypes 启动时确保存在的支出分类
var DefaultExpenseTypes = []string{
	"Electricity",
	"Water",
	"Cleaning",
	"Elevator maintenance",
	"Repairs",
	"Other",
}

// ExpenseInput 新增楼宇支出的参数
type ExpenseInput struct {
	ExpenseTypeID uint
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
}

// InterfaceExpenseService 定义楼宇支出服务接口
type InterfaceExpenseService interface {
	SeedExpenseTypes(ctx context.Context) error
	ListExpenseTypes(ctx context.Context) ([]models.ExpenseType, error)
	ListExpenses(ctx context.Context, userID, buildingID uint) ([]models.BuildingExpense, error)
	CreateExpense(ctx context.Context, userID, buildingID uint, in ExpenseInput) (*models.BuildingExpense, error)
	DeleteExpense(ctx context.Context, userID, buildingID, expenseID uint) error
	GetBalance(ctx context.Context, userID, buildingID uint) (*models.BuildingBalance, error)
}

// ExpenseService 提供楼宇支出和账目汇总
type ExpenseService struct {
	Store  *repositories.Store
	Access InterfaceAccessService
}

// NewExpenseService 创建支出服务
func NewExpenseService(store *repositories.Store, access InterfaceAccessService) InterfaceExpenseService {
	return &ExpenseService{
		Store:  store,
		Access: access,
	}
}

// 1 SeedExpenseTypes 写入默认支出分类，已存在的跳过
func (s *ExpenseService) SeedExpenseTypes(ctx context.Context) error {
	return s.Store.Expenses.EnsureTypes(ctx, DefaultExpenseTypes)
}

// 2 ListExpenseTypes 列出未删除的支出分类
func (s *ExpenseService) ListExpenseTypes(ctx context.Context) ([]models.ExpenseType, error) {
	return s.Store.Expenses.ListTypes(ctx)
}

// 3 ListExpenses 列出楼宇支出，按日期倒序
func (s *ExpenseService) ListExpenses(ctx context.Context, userID, buildingID uint) ([]models.BuildingExpense, error) {
	if _, err := s.Access.RequireRead(ctx, userID, buildingID); err != nil {
		return nil, err
	}
	return s.Store.Expenses.ListByBuilding(ctx, buildingID)
}

// 4 CreateExpense 新增楼宇支出
func (s *ExpenseService) CreateExpense(ctx context.Context, userID, buildingID uint, in ExpenseInput) (*models.BuildingExpense, error) {
	if _, err := s.Access.RequireEdit(ctx, userID, buildingID); err != nil {
		return nil, err
	}
	switch {
	case in.ExpenseTypeID == 0:
		return nil, apperr.Invalid("expense_type_id is required")
	case !in.Amount.IsPositive():
		return nil, apperr.Invalid("amount must be positive")
	case in.Date.IsZero():
		return nil, apperr.Invalid("date is required")
	}

	expenseType, err := s.Store.Expenses.FindType(ctx, in.ExpenseTypeID)
	if err != nil {
		return nil, err
	}

	expense := &models.BuildingExpense{
		BuildingID:    buildingID,
		ExpenseTypeID: expenseType.ID,
		Amount:        in.Amount,
		Date:          in.Date,
		Description:   in.Description,
	}
	if err := s.Store.Expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	expense.ExpenseTypeName = expenseType.Name
	return expense, nil
}

// 5 DeleteExpense 逻辑删除楼宇支出
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, buildingID, expenseID uint) error {
	if _, err := s.Access.RequireEdit(ctx, userID, buildingID); err != nil {
		return err
	}
	return s.Store.Expenses.SoftDelete(ctx, buildingID, expenseID)
}

// 6 GetBalance 楼宇账目汇总：余额 = 存款 + 已缴款项 - 支出
func (s *ExpenseService) GetBalance(ctx context.Context, userID, buildingID uint) (*models.BuildingBalance, error) {
	if _, err := s.Access.RequireRead(ctx, userID, buildingID); err != nil {
		return nil, err
	}

	deposits, paid, unpaid, err := s.Store.Ledger.Totals(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Store.Expenses.Total(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	return &models.BuildingBalance{
		BuildingID:        buildingID,
		Deposits:          deposits,
		ObligationsPaid:   paid,
		ObligationsUnpaid: unpaid,
		Expenses:          expenses,
		Balance:           deposits.Add(paid).Sub(expenses),
	}, nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType 楼宇支出分类
type ExpenseType struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SoftDelete
}

// BuildingExpense 楼宇层面的支出记录
type BuildingExpense struct {
	BaseModel
	BuildingID    uint            `gorm:"not null;index" json:"building_id"`
	ExpenseTypeID uint            `gorm:"not null;index" json:"expense_type_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	Description   string          `gorm:"type:text" json:"description"`
	SoftDelete

	ExpenseTypeName string `gorm:"->;-:migration" json:"expense_type_name,omitempty"`
}

// BuildingBalance 楼宇账目汇总
type BuildingBalance struct {
	BuildingID        uint            `json:"building_id"`
	Deposits          decimal.Decimal `json:"deposits"`
	ObligationsPaid   decimal.Decimal `json:"obligations_paid"`
	ObligationsUnpaid decimal.Decimal `json:"obligations_unpaid"`
	Expenses          decimal.Decimal `json:"expenses"`
	Balance           decimal.Decimal `json:"balance"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit 公寓的一笔存款
type Deposit struct {
	BaseModel
	ApartmentID uint            `gorm:"not null;index" json:"apartment_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	Description string          `gorm:"type:text" json:"description"`
	SoftDelete
}

// Obligation 公寓的应缴款项
type Obligation struct {
	BaseModel
	ApartmentID uint            `gorm:"not null;index" json:"apartment_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`
	Description string          `gorm:"type:text" json:"description"`
	IsPaid      bool            `gorm:"not null" json:"is_paid"`
	PaymentDate *time.Time      `gorm:"type:date" json:"payment_date"`
	SoftDelete
}

package models

import "github.com/shopspring/decimal"

// Apartment 公寓，(floor_id, apartment_number) 唯一，不区分是否已删除
type Apartment struct {
	BaseModel
	FloorID         uint            `gorm:"not null;uniqueIndex:idx_apartments_floor_number" json:"floor_id"`
	ApartmentNumber string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_apartments_floor_number" json:"apartment_number"`
	OwnerName       string          `gorm:"type:varchar(100);not null" json:"owner_name"`
	Area            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"area"`
	Rooms           int             `gorm:"not null" json:"rooms"`
	Description     string          `gorm:"type:text" json:"description"`
	SoftDelete

	// 账目存在时数据库拒绝物理删除
	Deposits    []Deposit    `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Obligations []Obligation `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	FloorNumber int `gorm:"->;-:migration" json:"floor_number,omitempty"`
}

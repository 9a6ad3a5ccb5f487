package models

import "time"

// BaseModel 所有表共用的主键和时间戳
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID 返回主键
func (m BaseModel) GetID() uint {
	return m.ID
}

// SoftDelete 逻辑删除标记，删除只置位不移除行
type SoftDelete struct {
	IsDeleted bool `gorm:"not null;index" json:"is_deleted"`
}

// Deleted 是否已逻辑删除
func (s SoftDelete) Deleted() bool {
	return s.IsDeleted
}

// Tombstoned 按 (父ID, 自然键) 唯一、删除后可恢复的实体
type Tombstoned interface {
	GetID() uint
	Deleted() bool
}

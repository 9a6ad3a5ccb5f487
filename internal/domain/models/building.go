package models

// Building 表示一栋楼宇，创建者自动成为所有者
type Building struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Address     string  `gorm:"type:varchar(255);not null" json:"address"`
	TotalFloors int     `gorm:"not null" json:"total_floors"`
	Description *string `gorm:"type:text" json:"description"`
	CreatedBy   uint    `gorm:"not null;index" json:"created_by"`
	SoftDelete
}

// BuildingAccess 用户对楼宇的权限，每个 (user, building) 只有一行
type BuildingAccess struct {
	BaseModel
	UserID     uint `gorm:"not null;uniqueIndex:idx_building_access_user_building" json:"user_id"`
	BuildingID uint `gorm:"not null;uniqueIndex:idx_building_access_user_building;index" json:"building_id"`
	IsOwner    bool `gorm:"not null" json:"is_owner"`
	CanEdit    bool `gorm:"not null" json:"can_edit"`
}

// TableName 与原有表名保持一致
func (BuildingAccess) TableName() string {
	return "building_access"
}

package models

// Floor 楼层，(building_id, floor_number) 唯一，不区分是否已删除
type Floor struct {
	BaseModel
	BuildingID      uint   `gorm:"not null;uniqueIndex:idx_floors_building_number" json:"building_id"`
	FloorNumber     int    `gorm:"not null;uniqueIndex:idx_floors_building_number" json:"floor_number"`
	TotalApartments int    `gorm:"not null" json:"total_apartments"`
	Description     string `gorm:"type:text" json:"description"`
	SoftDelete

	Apartments []Apartment `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

package curriculum

import "gorm.io/gorm"

// Chapter is an ordered grouping of learning items within a unit
type Chapter struct {
	gorm.Model
	UnitID      uint   `json:"unit_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}

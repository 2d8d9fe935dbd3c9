package models

import "gorm.io/gorm"

type Announcement struct {
	gorm.Model
	UnitID     uint   `json:"unit_id" gorm:"index;not null"`
	LecturerID uint   `json:"lecturer_id"`
	Title      string `json:"title"`
	Body       string `json:"body" gorm:"type:text;not null"`
	IsDeleted  bool   `gorm:"default:false"`
}

// WeeklyLink holds the single current class link for a unit
type WeeklyLink struct {
	gorm.Model
	UnitID    uint   `json:"unit_id" gorm:"uniqueIndex;not null"`
	URL       string `json:"url"`
	UpdatedBy uint   `json:"updated_by"`
}

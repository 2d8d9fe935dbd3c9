package models

import "gorm.io/gorm"

// Result is a lecturer-recorded unit score, one row per (student, unit)
type Result struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"not null;uniqueIndex:idx_result_student_unit"`
	UnitID    uint   `json:"unit_id" gorm:"not null;uniqueIndex:idx_result_student_unit"`
	Score     int    `json:"score"`
	Remarks   string `json:"remarks"`
	IsDeleted bool   `gorm:"default:false"`
}

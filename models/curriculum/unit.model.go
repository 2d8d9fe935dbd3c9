package curriculum

import "gorm.io/gorm"

// Unit is a course offering
type Unit struct {
	gorm.Model
	Code       string `json:"code" gorm:"uniqueIndex;not null"`
	Title      string `json:"title" gorm:"not null"`
	LecturerID *uint  `json:"lecturer_id" gorm:"index"`
	IsDeleted  bool   `gorm:"default:false"`
}

// StudentUnit registers a student into a unit
type StudentUnit struct {
	gorm.Model
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_student_unit"`
	UnitID    uint `json:"unit_id" gorm:"not null;uniqueIndex:idx_student_unit"`
	IsDeleted bool `gorm:"default:false"`
}

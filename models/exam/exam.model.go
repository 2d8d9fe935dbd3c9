package exam

import "gorm.io/gorm"

// Exam is the final examination of a unit. The unique index on UnitID
// enforces at most one exam per unit; ItemID points at the exam-typed
// curriculum item created in the same transaction.
type Exam struct {
	gorm.Model
	UnitID          uint   `json:"unit_id" gorm:"uniqueIndex;not null"`
	ItemID          uint   `json:"item_id" gorm:"not null"`
	Title           string `json:"title" gorm:"not null"`
	Instructions    string `json:"instructions" gorm:"type:text"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:60"`
	TotalMarks      int    `json:"total_marks" gorm:"default:100"`
	PassMarks       int    `json:"pass_marks" gorm:"default:0"`
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	CreatedBy       uint   `json:"created_by"`
	IsDeleted       bool   `gorm:"default:false"`
}

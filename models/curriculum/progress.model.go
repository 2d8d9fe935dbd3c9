package curriculum

import (
	"time"

	"gorm.io/gorm"
)

// ProgressRecord is a student's completion flag for one item. At most
// one row per (student, unit, item); writes go through an upsert on
// that key so concurrent toggles converge to last-write-wins.
//
// ItemID is signed: the virtual final-exam item carries a negative
// sentinel id and students can still mark it complete.
type ProgressRecord struct {
	gorm.Model
	StudentID   uint  `json:"student_id" gorm:"not null;uniqueIndex:idx_progress_unique"`
	UnitID      uint  `json:"unit_id" gorm:"not null;uniqueIndex:idx_progress_unique"`
	ItemID      int64 `json:"item_id" gorm:"not null;uniqueIndex:idx_progress_unique"`
	Completed   bool  `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time
}

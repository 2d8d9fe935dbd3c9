package exam

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusSubmitted  = "submitted"
)

// Attempt is a student's one graded pass at an exam. The composite
// unique index makes resubmission an overwrite, not a duplicate.
type Attempt struct {
	gorm.Model
	ExamID      uint           `json:"exam_id" gorm:"not null;uniqueIndex:idx_attempt_exam_student"`
	StudentID   uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_attempt_exam_student"`
	StartedAt   time.Time      `json:"started_at"`
	SubmittedAt *time.Time     `json:"submitted_at"`
	Score       int            `json:"score" gorm:"default:0"`
	TotalMarks  int            `json:"total_marks" gorm:"default:0"`
	Status      string         `json:"status" gorm:"size:20;default:'in_progress'"`
	Answers     datatypes.JSON `json:"answers"`
	IsDeleted   bool           `gorm:"default:false"`
}

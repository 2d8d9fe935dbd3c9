package exam

import "gorm.io/gorm"

const (
	QuestionTypeMCQ   = "mcq"
	QuestionTypeTF    = "tf"
	QuestionTypeShort = "short" // never auto-scored
)

// ValidQuestionType reports whether t names a known question type.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeTF, QuestionTypeShort:
		return true
	}
	return false
}

// Question belongs to an Exam. For mcq and tf the CorrectAnswer key is
// compared as an exact string against the submitted value when grading.
type Question struct {
	gorm.Model
	ExamID        uint     `json:"exam_id" gorm:"index;not null"`
	Text          string   `json:"text" gorm:"type:text;not null"`
	Type          string   `json:"type" gorm:"size:20;default:'mcq'"`
	Points        int      `json:"points" gorm:"default:1"`
	OrderIndex    int      `json:"order_index" gorm:"default:0"`
	CorrectAnswer string   `json:"-"` // hidden from students
	Options       []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	IsDeleted     bool     `gorm:"default:false"`
}

// Option is one selectable choice of an mcq question
type Option struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Label      string `json:"label" gorm:"size:10"` // e.g. "A"
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"-"`
	IsDeleted  bool   `gorm:"default:false"`
}

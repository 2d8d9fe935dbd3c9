package curriculum

import "gorm.io/gorm"

// Item types form a closed set; free-form values are rejected at the
// validation boundary. Exam items are only ever created alongside an
// Exam row, never through the generic item endpoint.
const (
	ItemTypeLesson     = "lesson"
	ItemTypeQuiz       = "quiz"
	ItemTypeAssignment = "assignment"
	ItemTypeExam       = "exam"
)

// ValidItemType reports whether t names an authorable item type.
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeLesson, ItemTypeQuiz, ItemTypeAssignment:
		return true
	}
	return false
}

// Item is a single learning artifact within a chapter
type Item struct {
	gorm.Model
	ChapterID      uint   `json:"chapter_id" gorm:"index;not null"`
	Title          string `json:"title" gorm:"not null"`
	Type           string `json:"type" gorm:"size:50;not null"` // lesson, quiz, assignment, exam
	Content        string `json:"content" gorm:"type:text"`
	VideoURL       string `json:"video_url"`
	VideoFile      string `json:"video_file"`
	Instructions   string `json:"instructions" gorm:"type:text"`
	Duration       string `json:"duration" gorm:"size:50"` // e.g. "15 min"
	OrderIndex     int    `json:"order_index" gorm:"default:0"`
	NotesFile      string `json:"notes_file"`
	QuizFile       string `json:"quiz_file"`
	AssignmentFile string `json:"assignment_file"`
	IsDeleted      bool   `gorm:"default:false"`
}

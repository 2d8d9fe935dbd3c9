package learningController

import (
	"campus/models/curriculum"

	"gorm.io/gorm"
)

// Sentinel identifiers for the synthesized final exam chapter. They are
// negative so they can never collide with persisted rows.
const (
	VirtualExamChapterID int64 = -99999
	VirtualExamItemID    int64 = -100000
)

type ItemNode struct {
	ID         int64  `json:"id"`
	ChapterID  int64  `json:"chapter_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	Duration   string `json:"duration,omitempty"`
	OrderIndex int    `json:"order_index"`
	Completed  bool   `json:"completed"`
}

type ChapterNode struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	OrderIndex  int        `json:"order_index"`
	Items       []ItemNode `json:"items"`
}

// FetchUnitChapters returns the unit's chapters ordered by order_index,
// ties broken by insertion order. A unit with no chapters yields an empty
// slice, never an error.
func FetchUnitChapters(db *gorm.DB, unitID uint) ([]curriculum.Chapter, error) {
	var chapters []curriculum.Chapter
	err := db.Where("unit_id = ?", unitID).
		Order("order_index asc, id asc").Find(&chapters).Error
	if err != nil {
		return nil, err
	}
	return chapters, nil
}

// FetchChapterItems returns the chapter's items in display order.
func FetchChapterItems(db *gorm.DB, chapterID uint) ([]curriculum.Item, error) {
	var items []curriculum.Item
	err := db.Where("chapter_id = ?", chapterID).
		Order("order_index asc, id asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// LoadProgress returns the student's completion map for a unit. Items with
// no row are simply absent, which callers must read as not completed.
func LoadProgress(db *gorm.DB, studentID, unitID uint) (map[int64]bool, error) {
	var records []curriculum.ProgressRecord
	if err := db.Where("student_id = ? AND unit_id = ?", studentID, unitID).Find(&records).Error; err != nil {
		return nil, err
	}

	progress := make(map[int64]bool, len(records))
	for _, r := range records {
		progress[r.ItemID] = r.Completed
	}
	return progress, nil
}

// BuildCurriculum assembles the ordered chapter/item tree for a unit and
// marks each item with the student's completion state. It reports whether a
// persisted exam item was seen so callers can synthesize one when absent.
func BuildCurriculum(db *gorm.DB, unitID uint, progress map[int64]bool) ([]ChapterNode, bool, error) {
	chapters, err := FetchUnitChapters(db, unitID)
	if err != nil {
		return nil, false, err
	}

	hasExamItem := false
	nodes := make([]ChapterNode, 0, len(chapters))
	for _, ch := range chapters {
		items, err := FetchChapterItems(db, ch.ID)
		if err != nil {
			return nil, false, err
		}

		itemNodes := make([]ItemNode, 0, len(items))
		for _, it := range items {
			if it.Type == curriculum.ItemTypeExam {
				hasExamItem = true
			}
			itemNodes = append(itemNodes, ItemNode{
				ID:         int64(it.ID),
				ChapterID:  int64(ch.ID),
				Type:       it.Type,
				Title:      it.Title,
				Content:    it.Content,
				VideoURL:   it.VideoURL,
				Duration:   it.Duration,
				OrderIndex: it.OrderIndex,
				Completed:  progress[int64(it.ID)],
			})
		}

		nodes = append(nodes, ChapterNode{
			ID:          int64(ch.ID),
			Title:       ch.Title,
			Description: ch.Description,
			OrderIndex:  ch.OrderIndex,
			Items:       itemNodes,
		})
	}

	return nodes, hasExamItem, nil
}

// SynthesizeExamChapter builds the virtual "Final Examination" chapter used
// when a unit has no persisted exam item. Storage is never mutated.
func SynthesizeExamChapter(progress map[int64]bool) ChapterNode {
	return ChapterNode{
		ID:    VirtualExamChapterID,
		Title: "Final Examination",
		Items: []ItemNode{{
			ID:        VirtualExamItemID,
			ChapterID: VirtualExamChapterID,
			Type:      curriculum.ItemTypeExam,
			Title:     "Final Exam",
			Completed: progress[VirtualExamItemID],
		}},
	}
}

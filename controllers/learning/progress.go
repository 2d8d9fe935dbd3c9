package learningController

import "campus/models/curriculum"

// UnitProgress summarises a student's completion state for one unit. Exam
// items never count toward the totals.
type UnitProgress struct {
	TotalItems         int `json:"total_items"`
	CompletedItems     int `json:"completed_items"`
	CompletedChapters  int `json:"completed_chapters"`
	ProgressPercentage int `json:"progress_percentage"`
}

// ComputeUnitProgress derives progress figures from an assembled curriculum
// tree. It is a pure function: same tree in, same figures out.
//
// A chapter counts as completed when it has at least one item and every
// non-exam item in it is completed. The percentage is the integer floor of
// completed over total; a unit with no countable items reports zero.
func ComputeUnitProgress(chapters []ChapterNode) UnitProgress {
	var p UnitProgress

	for _, ch := range chapters {
		chapterCompleted := true
		for _, it := range ch.Items {
			if it.Type == curriculum.ItemTypeExam {
				continue
			}
			p.TotalItems++
			if it.Completed {
				p.CompletedItems++
			} else {
				chapterCompleted = false
			}
		}
		if chapterCompleted && len(ch.Items) > 0 {
			p.CompletedChapters++
		}
	}

	if p.TotalItems > 0 {
		p.ProgressPercentage = (p.CompletedItems * 100) / p.TotalItems
	}
	return p
}

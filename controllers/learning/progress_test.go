package learningController

import (
	"testing"

	"campus/models/curriculum"

	"github.com/stretchr/testify/assert"
)

func lesson(id int64, completed bool) ItemNode {
	return ItemNode{ID: id, Type: curriculum.ItemTypeLesson, Completed: completed}
}

func TestComputeUnitProgress_NoProgress(t *testing.T) {
	chapters := []ChapterNode{
		{ID: 1, Items: []ItemNode{lesson(1, false), lesson(2, false)}},
		{ID: 2, Items: []ItemNode{{ID: 3, Type: curriculum.ItemTypeQuiz}}},
	}

	p := ComputeUnitProgress(chapters)

	assert.Equal(t, 3, p.TotalItems)
	assert.Equal(t, 0, p.CompletedItems)
	assert.Equal(t, 0, p.CompletedChapters)
	assert.Equal(t, 0, p.ProgressPercentage)
}

func TestComputeUnitProgress_AllComplete(t *testing.T) {
	chapters := []ChapterNode{
		{ID: 1, Items: []ItemNode{lesson(1, true), lesson(2, true)}},
		{ID: 2, Items: []ItemNode{{ID: 3, Type: curriculum.ItemTypeQuiz, Completed: true}}},
	}

	p := ComputeUnitProgress(chapters)

	assert.Equal(t, 3, p.TotalItems)
	assert.Equal(t, 3, p.CompletedItems)
	assert.Equal(t, 2, p.CompletedChapters)
	assert.Equal(t, 100, p.ProgressPercentage)
}

func TestComputeUnitProgress_ExamItemsExcluded(t *testing.T) {
	chapters := []ChapterNode{
		{ID: 1, Items: []ItemNode{
			lesson(1, true),
			{ID: 2, Type: curriculum.ItemTypeExam, Completed: false},
		}},
	}

	p := ComputeUnitProgress(chapters)

	assert.Equal(t, 1, p.TotalItems)
	assert.Equal(t, 1, p.CompletedItems)
	assert.Equal(t, 100, p.ProgressPercentage)
}

func TestComputeUnitProgress_EmptyChapterNeverCompleted(t *testing.T) {
	chapters := []ChapterNode{
		{ID: 1, Items: nil},
		{ID: 2, Items: []ItemNode{lesson(1, true)}},
	}

	p := ComputeUnitProgress(chapters)

	assert.Equal(t, 1, p.CompletedChapters)
	assert.Equal(t, 100, p.ProgressPercentage)
}

func TestComputeUnitProgress_EmptyUnit(t *testing.T) {
	p := ComputeUnitProgress(nil)

	assert.Equal(t, 0, p.TotalItems)
	assert.Equal(t, 0, p.ProgressPercentage)

	p = ComputeUnitProgress([]ChapterNode{{ID: 1}, {ID: 2}})
	assert.Equal(t, 0, p.ProgressPercentage)
	assert.Equal(t, 0, p.CompletedChapters)
}

func TestComputeUnitProgress_FloorTruncation(t *testing.T) {
	// 2 of 3 complete is 66.67%, reported as 66, never 67
	chapters := []ChapterNode{
		{ID: 1, Items: []ItemNode{lesson(1, true), lesson(2, true), lesson(3, false)}},
	}

	p := ComputeUnitProgress(chapters)

	assert.Equal(t, 66, p.ProgressPercentage)
}

func TestComputeUnitProgress_Monotonic(t *testing.T) {
	chapters := []ChapterNode{
		{ID: 1, Items: []ItemNode{lesson(1, false), lesson(2, false), lesson(3, false), lesson(4, false)}},
	}

	last := ComputeUnitProgress(chapters).ProgressPercentage
	for i := range chapters[0].Items {
		chapters[0].Items[i].Completed = true
		p := ComputeUnitProgress(chapters).ProgressPercentage
		assert.GreaterOrEqual(t, p, last)
		last = p
	}
	assert.Equal(t, 100, last)
}

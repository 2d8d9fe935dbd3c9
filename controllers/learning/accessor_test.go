package learningController

import (
	"testing"

	"campus/models/curriculum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&curriculum.Unit{},
		&curriculum.Chapter{},
		&curriculum.Item{},
		&curriculum.ProgressRecord{},
	))
	return db
}

func seedUnit(t *testing.T, db *gorm.DB) curriculum.Unit {
	t.Helper()

	unit := curriculum.Unit{Code: "CSC101", Title: "Intro to Computing"}
	require.NoError(t, db.Create(&unit).Error)
	return unit
}

func TestFetchUnitChapters_Ordering(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	// Insert out of display order, with an order_index tie
	second := curriculum.Chapter{UnitID: unit.ID, Title: "Second", OrderIndex: 1}
	require.NoError(t, db.Create(&second).Error)
	first := curriculum.Chapter{UnitID: unit.ID, Title: "First", OrderIndex: 0}
	require.NoError(t, db.Create(&first).Error)
	third := curriculum.Chapter{UnitID: unit.ID, Title: "Third", OrderIndex: 1}
	require.NoError(t, db.Create(&third).Error)

	chapters, err := FetchUnitChapters(db, unit.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 3)

	assert.Equal(t, "First", chapters[0].Title)
	// ties break by insertion order
	assert.Equal(t, "Second", chapters[1].Title)
	assert.Equal(t, "Third", chapters[2].Title)
}

func TestFetchUnitChapters_EmptyNotError(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	chapters, err := FetchUnitChapters(db, unit.ID)
	require.NoError(t, err)
	assert.Empty(t, chapters)

	items, err := FetchChapterItems(db, 12345)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBuildCurriculum_SynthesizesExamChapter(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	chapter := curriculum.Chapter{UnitID: unit.ID, Title: "Basics"}
	require.NoError(t, db.Create(&chapter).Error)
	require.NoError(t, db.Create(&curriculum.Item{
		ChapterID: chapter.ID, Title: "Lesson 1", Type: curriculum.ItemTypeLesson,
	}).Error)

	chapters, hasExamItem, err := BuildCurriculum(db, unit.ID, map[int64]bool{})
	require.NoError(t, err)
	assert.False(t, hasExamItem)

	chapters = append(chapters, SynthesizeExamChapter(map[int64]bool{}))

	last := chapters[len(chapters)-1]
	assert.Equal(t, VirtualExamChapterID, last.ID)
	assert.Equal(t, "Final Examination", last.Title)
	require.Len(t, last.Items, 1)
	assert.Equal(t, VirtualExamItemID, last.Items[0].ID)
	assert.Equal(t, curriculum.ItemTypeExam, last.Items[0].Type)

	// synthesis never touches storage
	var chapterCount int64
	db.Model(&curriculum.Chapter{}).Count(&chapterCount)
	assert.Equal(t, int64(1), chapterCount)
}

func TestBuildCurriculum_PersistedExamItemDetected(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	chapter := curriculum.Chapter{UnitID: unit.ID, Title: "Final Examination"}
	require.NoError(t, db.Create(&chapter).Error)
	require.NoError(t, db.Create(&curriculum.Item{
		ChapterID: chapter.ID, Title: "Final Exam", Type: curriculum.ItemTypeExam,
	}).Error)

	_, hasExamItem, err := BuildCurriculum(db, unit.ID, map[int64]bool{})
	require.NoError(t, err)
	assert.True(t, hasExamItem)
}

func TestUpsertProgress_Idempotent(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	require.NoError(t, UpsertProgress(db, 7, unit.ID, 42, true))
	require.NoError(t, UpsertProgress(db, 7, unit.ID, 42, true))

	progress, err := LoadProgress(db, 7, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{42: true}, progress)

	var count int64
	db.Model(&curriculum.ProgressRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertProgress_LastWriteWins(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	require.NoError(t, UpsertProgress(db, 7, unit.ID, 42, true))
	require.NoError(t, UpsertProgress(db, 7, unit.ID, 42, false))

	progress, err := LoadProgress(db, 7, unit.ID)
	require.NoError(t, err)
	assert.False(t, progress[42])
}

func TestUpsertProgress_VirtualExamItem(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	// The virtual exam item id is negative and must round-trip
	require.NoError(t, UpsertProgress(db, 7, unit.ID, VirtualExamItemID, true))

	progress, err := LoadProgress(db, 7, unit.ID)
	require.NoError(t, err)
	assert.True(t, progress[VirtualExamItemID])
}

func TestLoadProgress_AbsentMeansFalse(t *testing.T) {
	db := testDB(t)
	unit := seedUnit(t, db)

	progress, err := LoadProgress(db, 7, unit.ID)
	require.NoError(t, err)
	assert.Empty(t, progress)
	assert.False(t, progress[1])
}

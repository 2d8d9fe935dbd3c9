package examController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"campus/config"
	"campus/database"
	"campus/models/curriculum"
	examModels "campus/models/exam"
	examValidator "campus/validators/exam"

	"github.com/gofiber/fiber/v2"
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
	database.RunMigrations(db)
	return db
}

func testConfig() {
	config.AppConfig = &config.Config{
		ExamMinContent:    10,
		ExamThresholdMode: "chapters",
	}
}

// examApp wires the create route with a stubbed signed-in staff user.
func examApp(db *gorm.DB) *fiber.App {
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/unit/:id/exam/create", func(c *fiber.Ctx) error {
		c.Locals("userId", uint(1))
		return c.Next()
	}, examValidator.CreateExam(), CreateExam)
	return app
}

func seedChapters(t *testing.T, db *gorm.DB, unitID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&curriculum.Chapter{
			UnitID: unitID, Title: fmt.Sprintf("Chapter %d", i+1), OrderIndex: i,
		}).Error)
	}
}

func postJSON(t *testing.T, app *fiber.App, url string, payload interface{}) int {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateExam_PreconditionNotMet(t *testing.T) {
	testConfig()
	db := testDB(t)

	unit := curriculum.Unit{Code: "CSC101", Title: "Intro to Computing"}
	require.NoError(t, db.Create(&unit).Error)
	seedChapters(t, db, unit.ID, 3)

	app := examApp(db)
	status := postJSON(t, app, fmt.Sprintf("/unit/%d/exam/create", unit.ID), map[string]interface{}{
		"title": "Final Examination",
	})

	assert.Equal(t, fiber.StatusPreconditionFailed, status)

	// no partial rows on failure
	var examCount, itemCount int64
	db.Model(&examModels.Exam{}).Count(&examCount)
	db.Model(&curriculum.Item{}).Count(&itemCount)
	assert.Equal(t, int64(0), examCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestCreateExam_ThresholdMet(t *testing.T) {
	testConfig()
	db := testDB(t)

	unit := curriculum.Unit{Code: "CSC102", Title: "Data Structures"}
	require.NoError(t, db.Create(&unit).Error)
	seedChapters(t, db, unit.ID, 10)

	app := examApp(db)
	status := postJSON(t, app, fmt.Sprintf("/unit/%d/exam/create", unit.ID), map[string]interface{}{
		"title": "Final Examination",
		"questions": []map[string]interface{}{
			{"text": "2+2?", "type": "mcq", "points": 5, "correct": "A",
				"options": []map[string]string{{"label": "A", "text": "4"}, {"label": "B", "text": "5"}}},
			{"text": "Go is compiled.", "type": "tf", "points": 5, "correct": "true"},
		},
	})

	assert.Equal(t, fiber.StatusCreated, status)

	var created examModels.Exam
	require.NoError(t, db.Where("unit_id = ?", unit.ID).First(&created).Error)
	assert.NotZero(t, created.ItemID)
	assert.Equal(t, 10, created.TotalMarks)

	// exam item persisted with the exam row
	var item curriculum.Item
	require.NoError(t, db.First(&item, created.ItemID).Error)
	assert.Equal(t, curriculum.ItemTypeExam, item.Type)

	var questionCount int64
	db.Model(&examModels.Question{}).Where("exam_id = ?", created.ID).Count(&questionCount)
	assert.Equal(t, int64(2), questionCount)
}

func TestCreateExam_DuplicateRejected(t *testing.T) {
	testConfig()
	db := testDB(t)

	unit := curriculum.Unit{Code: "CSC103", Title: "Algorithms"}
	require.NoError(t, db.Create(&unit).Error)
	seedChapters(t, db, unit.ID, 10)

	app := examApp(db)
	url := fmt.Sprintf("/unit/%d/exam/create", unit.ID)

	require.Equal(t, fiber.StatusCreated, postJSON(t, app, url, map[string]interface{}{"title": "Final"}))
	assert.Equal(t, fiber.StatusConflict, postJSON(t, app, url, map[string]interface{}{"title": "Final"}))
}

func TestGateState_LockedUntilFullProgress(t *testing.T) {
	testConfig()
	db := testDB(t)

	unit := curriculum.Unit{Code: "CSC104", Title: "Networks"}
	require.NoError(t, db.Create(&unit).Error)

	chapter := curriculum.Chapter{UnitID: unit.ID, Title: "Basics"}
	require.NoError(t, db.Create(&chapter).Error)
	items := make([]curriculum.Item, 2)
	for i := range items {
		items[i] = curriculum.Item{ChapterID: chapter.ID, Title: fmt.Sprintf("Lesson %d", i+1), Type: curriculum.ItemTypeLesson}
		require.NoError(t, db.Create(&items[i]).Error)
	}

	unitExam := examModels.Exam{UnitID: unit.ID, ItemID: 999, Title: "Final"}
	require.NoError(t, db.Create(&unitExam).Error)

	state, progress, err := gateState(db, 7, unit.ID, &unitExam)
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)
	assert.Equal(t, 0, progress.ProgressPercentage)

	// one of two done: still locked
	require.NoError(t, db.Create(&curriculum.ProgressRecord{
		StudentID: 7, UnitID: unit.ID, ItemID: int64(items[0].ID), Completed: true,
	}).Error)
	state, progress, err = gateState(db, 7, unit.ID, &unitExam)
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)
	assert.Equal(t, 50, progress.ProgressPercentage)

	// everything done: unlocked
	require.NoError(t, db.Create(&curriculum.ProgressRecord{
		StudentID: 7, UnitID: unit.ID, ItemID: int64(items[1].ID), Completed: true,
	}).Error)
	state, progress, err = gateState(db, 7, unit.ID, &unitExam)
	require.NoError(t, err)
	assert.Equal(t, StateUnlocked, state)
	assert.Equal(t, 100, progress.ProgressPercentage)
}

func TestGateState_EmptyUnitNeverUnlocked(t *testing.T) {
	testConfig()
	db := testDB(t)

	unit := curriculum.Unit{Code: "CSC105", Title: "Empty"}
	require.NoError(t, db.Create(&unit).Error)

	unitExam := examModels.Exam{UnitID: unit.ID, ItemID: 999, Title: "Final"}
	require.NoError(t, db.Create(&unitExam).Error)

	state, progress, err := gateState(db, 7, unit.ID, &unitExam)
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)
	assert.Equal(t, 0, progress.TotalItems)
}

func TestGateState_SubmittedAttempt(t *testing.T) {
	testConfig()
	db := testDB(t)

	unit := curriculum.Unit{Code: "CSC106", Title: "Databases"}
	require.NoError(t, db.Create(&unit).Error)

	unitExam := examModels.Exam{UnitID: unit.ID, ItemID: 999, Title: "Final"}
	require.NoError(t, db.Create(&unitExam).Error)

	now := time.Now()
	require.NoError(t, db.Create(&examModels.Attempt{
		ExamID: unitExam.ID, StudentID: 7, StartedAt: now, SubmittedAt: &now,
		Status: examModels.AttemptStatusSubmitted, Score: 5, TotalMarks: 10,
	}).Error)

	state, _, err := gateState(db, 7, unit.ID, &unitExam)
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, state)
}

package learningController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"campus/database"
	"campus/models"
	"campus/models/curriculum"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func handlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

// progressApp wires the progress route with a stubbed signed-in user.
func progressApp(db *gorm.DB, userID uint) *fiber.App {
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/unit/progress", func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		return c.Next()
	}, UpdateProgress)
	return app
}

func seedLearner(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("%s@uni.edu", role),
		Password: "irrelevant",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func postProgress(t *testing.T, app *fiber.App, payload map[string]interface{}) int {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/unit/progress", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestUpdateProgress_StudentsOnly(t *testing.T) {
	db := handlerDB(t)

	unit := curriculum.Unit{Code: "CSC201", Title: "Operating Systems"}
	require.NoError(t, db.Create(&unit).Error)
	chapter := curriculum.Chapter{UnitID: unit.ID, Title: "Processes"}
	require.NoError(t, db.Create(&chapter).Error)
	item := curriculum.Item{ChapterID: chapter.ID, Title: "Scheduling", Type: curriculum.ItemTypeLesson}
	require.NoError(t, db.Create(&item).Error)

	lecturer := seedLearner(t, db, models.RoleLecturer)
	payload := map[string]interface{}{
		"unit_id": unit.ID, "item_id": item.ID, "completed": true,
	}

	status := postProgress(t, progressApp(db, lecturer.ID), payload)
	assert.Equal(t, fiber.StatusForbidden, status)

	var count int64
	db.Model(&curriculum.ProgressRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)

	student := seedLearner(t, db, models.RoleStudent)
	status = postProgress(t, progressApp(db, student.ID), payload)
	assert.Equal(t, fiber.StatusOK, status)

	var record curriculum.ProgressRecord
	require.NoError(t, db.Where("student_id = ? AND unit_id = ?", student.ID, unit.ID).First(&record).Error)
	assert.True(t, record.Completed)
}

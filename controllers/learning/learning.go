package learningController

import (
	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/models/curriculum"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertProgress records a completion flag for (student, unit, item).
// Re-marking is idempotent: the last write wins.
func UpsertProgress(db *gorm.DB, studentID, unitID uint, itemID int64, completed bool) error {
	now := time.Now()
	record := curriculum.ProgressRecord{
		StudentID: studentID,
		UnitID:    unitID,
		ItemID:    itemID,
		Completed: completed,
	}
	if completed {
		record.CompletedAt = &now
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "unit_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(&record).Error
}

// GetLearningInterface returns the full curriculum tree for a unit with the
// student's completion state and derived progress figures.
func GetLearningInterface(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Progress is tracked for students only
	progress := map[int64]bool{}
	if user.Role == models.RoleStudent {
		progress, err = LoadProgress(db, userId, unit.ID)
		if err != nil {
			log.Printf("Error loading progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
		}
	}

	chapters, hasExamItem, err := BuildCurriculum(db, unit.ID, progress)
	if err != nil {
		log.Printf("Error building curriculum: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load curriculum!", nil)
	}

	// Figures come from the persisted chapters only, before any synthesis
	unitProgress := ComputeUnitProgress(chapters)

	if !hasExamItem {
		chapters = append(chapters, SynthesizeExamChapter(progress))
	}

	examUnlocked := user.Role == models.RoleStudent && unitProgress.ProgressPercentage == 100

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum fetched successfully.", fiber.Map{
		"unit":          unit,
		"chapters":      chapters,
		"progress":      unitProgress,
		"exam_unlocked": examUnlocked,
	})
}

// UpdateProgress marks an item complete or incomplete for the signed in
// student and returns the recomputed unit figures.
func UpdateProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		UnitID    uint  `json:"unit_id"`
		ItemID    int64 `json:"item_id"`
		Completed bool  `json:"completed"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.UnitID == 0 || reqData.ItemID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "unit_id and item_id are required!", nil)
	}

	db := database.Database.Db

	// Progress rows belong to students only
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if user.Role != models.RoleStudent {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only students can update progress!", nil)
	}

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", reqData.UnitID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if err := UpsertProgress(db, userId, unit.ID, reqData.ItemID, reqData.Completed); err != nil {
		log.Printf("Error updating progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	progress, err := LoadProgress(db, userId, unit.ID)
	if err != nil {
		log.Printf("Error loading progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	chapters, _, err := BuildCurriculum(db, unit.ID, progress)
	if err != nil {
		log.Printf("Error building curriculum: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load curriculum!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully.", ComputeUnitProgress(chapters))
}

package examController

import (
	"encoding/json"
	"log"
	"time"

	learningController "campus/controllers/learning"
	"campus/config"
	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/models/curriculum"
	examModels "campus/models/exam"
	"campus/utils"
	examValidator "campus/validators/exam"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Exam gate states as seen by a student.
const (
	StateNoExam     = "no_exam"
	StateLocked     = "locked"
	StateUnlocked   = "unlocked"
	StateInProgress = "in_progress"
	StateSubmitted  = "submitted"
)

// contentCount returns the figure the exam creation threshold is checked
// against: chapters or lessons, depending on configuration.
func contentCount(db *gorm.DB, unitID uint) (int64, error) {
	var count int64
	if config.AppConfig.ExamThresholdMode == "lessons" {
		err := db.Model(&curriculum.Item{}).
			Joins("JOIN chapters ON chapters.id = items.chapter_id").
			Where("chapters.unit_id = ? AND items.type = ?", unitID, curriculum.ItemTypeLesson).
			Count(&count).Error
		return count, err
	}
	err := db.Model(&curriculum.Chapter{}).Where("unit_id = ?", unitID).Count(&count).Error
	return count, err
}

// CreateExam creates the unit's final exam together with its exam-typed
// curriculum item in one transaction. Fails without writing anything when
// the unit has not reached the configured content threshold.
func CreateExam(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	reqData, ok := c.Locals("validatedExam").(*examValidator.CreateExamRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if err := db.Where("unit_id = ? AND is_deleted = ?", unit.ID, false).First(&examModels.Exam{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This unit already has an exam!", nil)
	}

	count, err := contentCount(db, unit.ID)
	if err != nil {
		log.Printf("Error counting unit content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}
	if count < int64(config.AppConfig.ExamMinContent) {
		return middleware.JsonResponse(c, fiber.StatusPreconditionFailed, false,
			"Not enough content to create an exam yet!", fiber.Map{
				"required": config.AppConfig.ExamMinContent,
				"current":  count,
				"counting": config.AppConfig.ExamThresholdMode,
			})
	}

	totalMarks := 0
	for _, q := range reqData.Questions {
		totalMarks += q.Points
	}
	if totalMarks == 0 {
		totalMarks = 100
	}

	var newExam examModels.Exam

	// Item and Exam rows land together or not at all
	txErr := db.Transaction(func(tx *gorm.DB) error {
		var maxIndex int
		tx.Model(&curriculum.Chapter{}).Where("unit_id = ?", unit.ID).
			Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)

		examChapter := curriculum.Chapter{
			UnitID:     unit.ID,
			Title:      "Final Examination",
			OrderIndex: maxIndex + 1,
		}
		if err := tx.Create(&examChapter).Error; err != nil {
			return err
		}

		examItem := curriculum.Item{
			ChapterID: examChapter.ID,
			Title:     reqData.Title,
			Type:      curriculum.ItemTypeExam,
		}
		if err := tx.Create(&examItem).Error; err != nil {
			return err
		}

		newExam = examModels.Exam{
			UnitID:          unit.ID,
			ItemID:          examItem.ID,
			Title:           reqData.Title,
			Instructions:    reqData.Instructions,
			DurationMinutes: reqData.DurationMinutes,
			TotalMarks:      totalMarks,
			PassMarks:       reqData.PassMarks,
			IsPublished:     true,
			CreatedBy:       userId,
		}
		if err := tx.Create(&newExam).Error; err != nil {
			return err
		}

		for i, q := range reqData.Questions {
			question := examModels.Question{
				ExamID:        newExam.ID,
				Text:          q.Text,
				Type:          q.Type,
				Points:        q.Points,
				OrderIndex:    i + 1,
				CorrectAnswer: q.Correct,
			}
			for _, opt := range q.Options {
				question.Options = append(question.Options, examModels.Option{
					Label:     opt.Label,
					Text:      opt.Text,
					IsCorrect: opt.Label == q.Correct,
				})
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		log.Printf("Error creating exam: %v", txErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created successfully.", newExam)
}

// GetExamLanding reports the exam and the student's gate state for a unit.
// The unlock decision is recomputed from progress on every call.
func GetExamLanding(c *fiber.Ctx) error {
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

	var unitExam examModels.Exam
	if err := db.Where("unit_id = ? AND is_deleted = ?", unit.ID, false).First(&unitExam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No exam for this unit yet.", fiber.Map{
			"state": StateNoExam,
		})
	}

	state, progress, err := gateState(db, userId, unit.ID, &unitExam)
	if err != nil {
		log.Printf("Error computing exam gate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam fetched successfully.", fiber.Map{
		"exam":     unitExam,
		"state":    state,
		"progress": progress,
	})
}

// gateState derives the student's exam state, always from fresh progress.
func gateState(db *gorm.DB, studentID, unitID uint, unitExam *examModels.Exam) (string, learningController.UnitProgress, error) {
	progressMap, err := learningController.LoadProgress(db, studentID, unitID)
	if err != nil {
		return "", learningController.UnitProgress{}, err
	}

	chapters, _, err := learningController.BuildCurriculum(db, unitID, progressMap)
	if err != nil {
		return "", learningController.UnitProgress{}, err
	}

	progress := learningController.ComputeUnitProgress(chapters)

	var attempt examModels.Attempt
	err = db.Where("exam_id = ? AND student_id = ?", unitExam.ID, studentID).First(&attempt).Error
	if err == nil && attempt.Status == examModels.AttemptStatusSubmitted {
		return StateSubmitted, progress, nil
	}

	if progress.ProgressPercentage == 100 {
		if err == nil && attempt.Status == examModels.AttemptStatusInProgress {
			return StateInProgress, progress, nil
		}
		return StateUnlocked, progress, nil
	}
	return StateLocked, progress, nil
}

// StartExam hands the student the question set. Nothing but the attempt
// bookmark is persisted; re-entering while unlocked is always allowed.
func StartExam(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unitExam examModels.Exam
	if err := db.Where("unit_id = ? AND is_deleted = ?", unitId, false).First(&unitExam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not available!", nil)
	}

	state, _, err := gateState(db, userId, uint(unitId), &unitExam)
	if err != nil {
		log.Printf("Error computing exam gate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load exam!", nil)
	}
	if state == StateLocked {
		return middleware.JsonResponse(c, fiber.StatusPreconditionFailed, false, "Complete all unit content to unlock the exam!", nil)
	}

	var questions []examModels.Question
	if err := db.Where("exam_id = ? AND is_deleted = ?", unitExam.ID, false).
		Preload("Options").
		Order("order_index asc, id asc").Find(&questions).Error; err != nil {
		log.Printf("Error fetching exam questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load exam!", nil)
	}

	attempt := examModels.Attempt{
		ExamID:    unitExam.ID,
		StudentID: userId,
		StartedAt: time.Now(),
		Status:    examModels.AttemptStatusInProgress,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(&attempt).Error; err != nil {
		log.Printf("Error bookmarking attempt: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam started.", fiber.Map{
		"exam":      unitExam,
		"questions": questions,
	})
}

// SubmitExam grades the submission, upserts the attempt and then marks the
// exam item complete. A failed attempt write aborts before any progress
// mark so a submitted attempt is the only way the item completes.
func SubmitExam(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	reqData, ok := c.Locals("validatedSubmission").(*examValidator.SubmitExamRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	var unitExam examModels.Exam
	if err := db.Where("unit_id = ? AND is_deleted = ?", unit.ID, false).First(&unitExam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not available!", nil)
	}

	var questions []examModels.Question
	if err := db.Where("exam_id = ? AND is_deleted = ?", unitExam.ID, false).
		Order("order_index asc, id asc").Find(&questions).Error; err != nil {
		log.Printf("Error fetching exam questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade exam!", nil)
	}

	score, totalMarks := GradeSubmission(questions, reqData.Answers)

	answersJSON, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers payload!", nil)
	}

	now := time.Now()
	attempt := examModels.Attempt{
		ExamID:      unitExam.ID,
		StudentID:   userId,
		StartedAt:   now,
		SubmittedAt: &now,
		Score:       score,
		TotalMarks:  totalMarks,
		Status:      examModels.AttemptStatusSubmitted,
		Answers:     answersJSON,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"submitted_at", "score", "total_marks", "status", "answers", "updated_at"}),
	}).Create(&attempt).Error; err != nil {
		log.Printf("Error saving exam attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save your submission!", nil)
	}

	// Attempt persisted; now reflect completion in the progress tracker
	if err := learningController.UpsertProgress(db, userId, unit.ID, int64(unitExam.ItemID), true); err != nil {
		log.Printf("Error marking exam item complete: %v", err)
	}

	go func(studentID uint, unitTitle string, score, total int) {
		var student models.User
		if err := database.Database.Db.Select("name, email").First(&student, studentID).Error; err == nil && student.Email != "" {
			if err := utils.SendExamResultEmail(student.Email, student.Name, unitTitle, score, total); err != nil {
				log.Printf("Error sending exam result email: %v", err)
			}
		}
	}(userId, unit.Title, score, totalMarks)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam submitted successfully.", fiber.Map{
		"score":       score,
		"total_marks": totalMarks,
	})
}

// GetMyAttempt returns the student's attempt for a unit's exam.
func GetMyAttempt(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unitExam examModels.Exam
	if err := db.Where("unit_id = ? AND is_deleted = ?", unitId, false).First(&unitExam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not available!", nil)
	}

	var attempt examModels.Attempt
	if err := db.Where("exam_id = ? AND student_id = ?", unitExam.ID, userId).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No attempt found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully.", attempt)
}

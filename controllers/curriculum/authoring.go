package curriculumController

import (
	"campus/config"
	"campus/database"
	learningController "campus/controllers/learning"
	"campus/middleware"
	"campus/models/curriculum"
	"campus/utils"
	curriculumValidator "campus/validators/curriculum"
	"log"

	"github.com/gofiber/fiber/v2"
)

func CreateChapter(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedChapter").(*curriculumValidator.CreateChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", reqData.UnitID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		// Append after the current last chapter
		var maxIndex int
		db.Model(&curriculum.Chapter{}).Where("unit_id = ?", unit.ID).
			Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)
		orderIndex = maxIndex + 1
	}

	chapter := curriculum.Chapter{
		UnitID:      unit.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  orderIndex,
	}

	if err := db.Create(&chapter).Error; err != nil {
		log.Printf("Error creating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully.", chapter)
}

func UpdateChapter(c *fiber.Ctx) error {
	chapterId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var chapter curriculum.Chapter
	if err := db.First(&chapter, chapterId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if reqData.Title != "" {
		chapter.Title = reqData.Title
	}
	if reqData.Description != "" {
		chapter.Description = reqData.Description
	}
	if reqData.OrderIndex != nil {
		chapter.OrderIndex = *reqData.OrderIndex
	}

	if err := db.Save(&chapter).Error; err != nil {
		log.Printf("Error updating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully.", chapter)
}

func DeleteChapter(c *fiber.Ctx) error {
	chapterId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	db := database.Database.Db

	var chapter curriculum.Chapter
	if err := db.First(&chapter, chapterId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if err := db.Where("chapter_id = ?", chapter.ID).Delete(&curriculum.Item{}).Error; err != nil {
		log.Printf("Error deleting chapter items: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	if err := db.Delete(&chapter).Error; err != nil {
		log.Printf("Error deleting chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully.", nil)
}

func CreateItem(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedItem").(*curriculumValidator.CreateItemRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var chapter curriculum.Chapter
	if err := db.First(&chapter, reqData.ChapterID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var maxIndex int
		db.Model(&curriculum.Item{}).Where("chapter_id = ?", chapter.ID).
			Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)
		orderIndex = maxIndex + 1
	}

	item := curriculum.Item{
		ChapterID:    chapter.ID,
		Title:        reqData.Title,
		Type:         reqData.Type,
		Content:      reqData.Content,
		VideoURL:     reqData.VideoURL,
		Instructions: reqData.Instructions,
		Duration:     reqData.Duration,
		OrderIndex:   orderIndex,
	}

	// Optional file attachments arrive as multipart fields
	if file, err := c.FormFile("notes_file"); err == nil {
		filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving notes file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save notes file!", nil)
		}
		item.NotesFile = filename
	}
	if file, err := c.FormFile("video_file"); err == nil {
		filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving video file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save video file!", nil)
		}
		item.VideoFile = filename
	}
	if file, err := c.FormFile("quiz_file"); err == nil {
		filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving quiz file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz file!", nil)
		}
		item.QuizFile = filename
	}
	if file, err := c.FormFile("assignment_file"); err == nil {
		filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving assignment file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save assignment file!", nil)
		}
		item.AssignmentFile = filename
	}

	if err := db.Create(&item).Error; err != nil {
		log.Printf("Error creating item: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Item created successfully.", item)
}

func UpdateItem(c *fiber.Ctx) error {
	itemId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid item id!", nil)
	}

	reqData := new(struct {
		Title        string `json:"title"`
		Content      string `json:"content"`
		VideoURL     string `json:"video_url"`
		Instructions string `json:"instructions"`
		Duration     string `json:"duration"`
		OrderIndex   *int   `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var item curriculum.Item
	if err := db.First(&item, itemId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	if reqData.Title != "" {
		item.Title = reqData.Title
	}
	if reqData.Content != "" {
		item.Content = reqData.Content
	}
	if reqData.VideoURL != "" {
		item.VideoURL = reqData.VideoURL
	}
	if reqData.Instructions != "" {
		item.Instructions = reqData.Instructions
	}
	if reqData.Duration != "" {
		item.Duration = reqData.Duration
	}
	if reqData.OrderIndex != nil {
		item.OrderIndex = *reqData.OrderIndex
	}

	if err := db.Save(&item).Error; err != nil {
		log.Printf("Error updating item: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item updated successfully.", item)
}

func DeleteItem(c *fiber.Ctx) error {
	itemId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid item id!", nil)
	}

	db := database.Database.Db

	var item curriculum.Item
	if err := db.First(&item, itemId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	if err := db.Delete(&item).Error; err != nil {
		log.Printf("Error deleting item: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item deleted successfully.", nil)
}

// GetUnitCurriculum returns the authoring view of a unit's chapter tree,
// without any student progress state.
func GetUnitCurriculum(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	chapters, _, err := learningController.BuildCurriculum(db, unit.ID, map[int64]bool{})
	if err != nil {
		log.Printf("Error building curriculum: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load curriculum!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum fetched successfully.", fiber.Map{
		"unit":     unit,
		"chapters": chapters,
	})
}

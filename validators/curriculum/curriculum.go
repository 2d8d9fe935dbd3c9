package curriculumValidator

import (
	"campus/middleware"
	"campus/models/curriculum"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CreateChapterRequest struct {
	UnitID      uint   `json:"unit_id" form:"unit_id"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	OrderIndex  *int   `json:"order_index" form:"order_index"`
}

// CreateChapter validator middleware
func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UnitID == 0 {
			errors["unit_id"] = "Unit id is required!"
		}

		if len(strings.TrimSpace(reqData.Title)) < 2 {
			errors["title"] = "Chapter title must be at least 2 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

type CreateItemRequest struct {
	ChapterID    uint   `json:"chapter_id" form:"chapter_id"`
	Title        string `json:"title" form:"title"`
	Type         string `json:"type" form:"type"`
	Content      string `json:"content" form:"content"`
	VideoURL     string `json:"video_url" form:"video_url"`
	Instructions string `json:"instructions" form:"instructions"`
	Duration     string `json:"duration" form:"duration"`
	OrderIndex   *int   `json:"order_index" form:"order_index"`
}

// CreateItem validator middleware
func CreateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateItemRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ChapterID == 0 {
			errors["chapter_id"] = "Chapter id is required!"
		}

		if len(strings.TrimSpace(reqData.Title)) < 2 {
			errors["title"] = "Item title must be at least 2 characters long!"
		}

		// Exam items are created through the exam flow, never directly
		if !curriculum.ValidItemType(reqData.Type) {
			errors["type"] = "Type must be lesson, quiz or assignment!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedItem", reqData)
		return c.Next()
	}
}

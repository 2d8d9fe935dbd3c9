package resourcesController

import (
	"log"
	"strings"

	"campus/config"
	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/models/curriculum"
	"campus/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadResource stores a file for a unit and records it.
func UploadResource(c *fiber.Ctx) error {
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

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file is required!", nil)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = file.Filename
	}

	filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving resource file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	resource := models.Resource{
		UnitID:     unit.ID,
		Title:      title,
		Filename:   filename,
		UploadedBy: userId,
	}
	if err := db.Create(&resource).Error; err != nil {
		log.Printf("Error recording resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource uploaded.", fiber.Map{
		"resource": resource,
		"url":      utils.GetFileURL(resource.Filename),
	})
}

func ListResources(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	var resources []models.Resource
	if err := database.Database.Db.Where("unit_id = ? AND is_deleted = ?", unitId, false).
		Order("created_at desc").Find(&resources).Error; err != nil {
		log.Printf("Error fetching resources: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	type resourceRow struct {
		models.Resource
		URL string `json:"url"`
	}
	rows := make([]resourceRow, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, resourceRow{Resource: r, URL: utils.GetFileURL(r.Filename)})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched successfully.", rows)
}

func DeleteResource(c *fiber.Ctx) error {
	resourceId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource models.Resource
	if err := db.Where("id = ? AND is_deleted = ?", resourceId, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	resource.IsDeleted = true
	if err := db.Save(&resource).Error; err != nil {
		log.Printf("Error deleting resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted.", nil)
}

package announcementsController

import (
	"log"
	"strings"

	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/models/curriculum"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

func CreateAnnouncement(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	reqData := new(struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if strings.TrimSpace(reqData.Body) == "" {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Announcement body is required!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	announcement := models.Announcement{
		UnitID:     unit.ID,
		LecturerID: userId,
		Title:      reqData.Title,
		Body:       reqData.Body,
	}
	if err := db.Create(&announcement).Error; err != nil {
		log.Printf("Error creating announcement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Announcement posted.", announcement)
}

func ListAnnouncements(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	var announcements []models.Announcement
	if err := database.Database.Db.Where("unit_id = ? AND is_deleted = ?", unitId, false).
		Order("created_at desc").Find(&announcements).Error; err != nil {
		log.Printf("Error fetching announcements: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch announcements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched successfully.", announcements)
}

func DeleteAnnouncement(c *fiber.Ctx) error {
	announcementId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid announcement id!", nil)
	}

	db := database.Database.Db

	var announcement models.Announcement
	if err := db.Where("id = ? AND is_deleted = ?", announcementId, false).First(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found!", nil)
	}

	announcement.IsDeleted = true
	if err := db.Save(&announcement).Error; err != nil {
		log.Printf("Error deleting announcement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement deleted.", nil)
}

// SetWeeklyLink upserts the unit's single current class link.
func SetWeeklyLink(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	reqData := new(struct {
		URL string `json:"url"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if !strings.HasPrefix(reqData.URL, "http://") && !strings.HasPrefix(reqData.URL, "https://") {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "A valid http(s) link is required!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	link := models.WeeklyLink{
		UnitID:    unit.ID,
		URL:       reqData.URL,
		UpdatedBy: userId,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "updated_by", "updated_at"}),
	}).Create(&link).Error; err != nil {
		log.Printf("Error saving weekly link: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save link!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class link saved.", link)
}

func GetWeeklyLink(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	var link models.WeeklyLink
	if err := database.Database.Db.Where("unit_id = ?", unitId).First(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No class link set for this unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class link fetched.", link)
}

package unitController

import (
	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/models/curriculum"
	unitValidator "campus/validators/unit"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateUnit(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUnit").(*unitValidator.CreateUnitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("code = ?", reqData.Code).First(&curriculum.Unit{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Unit code already exists!", nil)
	}

	lecturerID := reqData.LecturerID
	if lecturerID == nil {
		// Lecturers creating a unit teach it themselves
		user, _ := c.Locals("user").(models.User)
		if user.Role == models.RoleLecturer {
			id := userId
			lecturerID = &id
		}
	}

	newUnit := curriculum.Unit{
		Code:       reqData.Code,
		Title:      reqData.Title,
		LecturerID: lecturerID,
	}

	if err := db.Create(&newUnit).Error; err != nil {
		log.Printf("Error creating unit: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Unit created successfully.", newUnit)
}

func ListUnits(c *fiber.Ctx) error {
	var units []curriculum.Unit
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("code asc").Find(&units).Error; err != nil {
		log.Printf("Error fetching units: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units fetched successfully.", units)
}

func GetUnit(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	var lecturer models.User
	var lecturerName string
	if unit.LecturerID != nil {
		if err := db.Select("name").First(&lecturer, *unit.LecturerID).Error; err == nil {
			lecturerName = lecturer.Name
		}
	}

	var enrolledCount int64
	db.Model(&curriculum.StudentUnit{}).Where("unit_id = ?", unit.ID).Count(&enrolledCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit fetched successfully.", fiber.Map{
		"unit":           unit,
		"lecturer_name":  lecturerName,
		"enrolled_count": enrolledCount,
	})
}

func UpdateUnit(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	reqData := new(struct {
		Title      string `json:"title"`
		LecturerID *uint  `json:"lecturer_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if reqData.Title != "" {
		unit.Title = reqData.Title
	}
	if reqData.LecturerID != nil {
		unit.LecturerID = reqData.LecturerID
	}

	if err := db.Save(&unit).Error; err != nil {
		log.Printf("Error updating unit: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit updated successfully.", unit)
}

func DeleteUnit(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	unit.IsDeleted = true
	if err := db.Save(&unit).Error; err != nil {
		log.Printf("Error deleting unit: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit deleted successfully.", nil)
}

// Enroll registers the signed in student on a unit by its code.
func Enroll(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnroll").(*unitValidator.EnrollRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if err := db.Where("student_id = ? AND unit_id = ?", userId, unit.ID).First(&curriculum.StudentUnit{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this unit!", nil)
	}

	enrollment := curriculum.StudentUnit{
		StudentID: userId,
		UnitID:    unit.ID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		log.Printf("Error enrolling student: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully.", unit)
}

// MyUnits lists the units relevant to the signed in user: enrolled units for
// students, taught units for lecturers.
func MyUnits(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var units []curriculum.Unit
	var queryErr error
	if user.IsStaff() {
		queryErr = db.Where("lecturer_id = ? AND is_deleted = ?", userId, false).Order("code asc").Find(&units).Error
	} else {
		queryErr = db.Joins("JOIN student_units ON student_units.unit_id = units.id").
			Where("student_units.student_id = ? AND units.is_deleted = ?", userId, false).
			Order("units.code asc").Find(&units).Error
	}
	if queryErr != nil && queryErr != gorm.ErrRecordNotFound {
		log.Printf("Error fetching user units: %v", queryErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units fetched successfully.", units)
}

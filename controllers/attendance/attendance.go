package attendanceController

import (
	"log"
	"time"

	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/models/curriculum"

	"github.com/gofiber/fiber/v2"
)

// OpenSession opens an attendance window for a unit. Any prior open
// session for the unit is closed first so at most one stays open.
func OpenSession(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	reqData := new(struct {
		WeekLabel       string `json:"week_label"`
		DurationMinutes int    `json:"duration_minutes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if err := db.Model(&models.AttendanceSession{}).
		Where("unit_id = ? AND is_open = ?", unit.ID, true).
		Update("is_open", false).Error; err != nil {
		log.Printf("Error closing previous session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open attendance!", nil)
	}

	now := time.Now()
	session := models.AttendanceSession{
		UnitID:     unit.ID,
		LecturerID: userId,
		WeekLabel:  reqData.WeekLabel,
		OpenedAt:   now,
		IsOpen:     true,
	}
	if reqData.DurationMinutes > 0 {
		closesAt := now.Add(time.Duration(reqData.DurationMinutes) * time.Minute)
		session.ClosesAt = &closesAt
	}

	if err := db.Create(&session).Error; err != nil {
		log.Printf("Error opening attendance session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attendance session opened.", session)
}

// CloseSession closes a session by id.
func CloseSession(c *fiber.Ctx) error {
	sessionId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	db := database.Database.Db

	var session models.AttendanceSession
	if err := db.First(&session, sessionId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	session.IsOpen = false
	if err := db.Save(&session).Error; err != nil {
		log.Printf("Error closing attendance session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to close attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance session closed.", session)
}

// MarkAttendance records the signed in student as present in the unit's
// open session. Marking twice is a no-op conflict, not an error state.
func MarkAttendance(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	if err := db.Where("student_id = ? AND unit_id = ?", userId, unitId).
		First(&curriculum.StudentUnit{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this unit!", nil)
	}

	var session models.AttendanceSession
	if err := db.Where("unit_id = ? AND is_open = ?", unitId, true).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No open attendance session for this unit!", nil)
	}

	if session.ClosesAt != nil && session.ClosesAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Attendance window has closed!", nil)
	}

	if err := db.Where("session_id = ? AND student_id = ?", session.ID, userId).
		First(&models.AttendanceMark{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attendance already marked!", nil)
	}

	mark := models.AttendanceMark{
		SessionID: session.ID,
		StudentID: userId,
		MarkedAt:  time.Now(),
	}
	if err := db.Create(&mark).Error; err != nil {
		log.Printf("Error marking attendance: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attendance marked.", mark)
}

// SessionStatus reports the unit's current open session and, for staff,
// who has marked so far.
func SessionStatus(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var session models.AttendanceSession
	if err := db.Where("unit_id = ? AND is_open = ?", unitId, true).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No open attendance session.", fiber.Map{
			"open": false,
		})
	}

	var marked bool
	if err := db.Where("session_id = ? AND student_id = ?", session.ID, userId).
		First(&models.AttendanceMark{}).Error; err == nil {
		marked = true
	}

	var markCount int64
	db.Model(&models.AttendanceMark{}).Where("session_id = ?", session.ID).Count(&markCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance status fetched.", fiber.Map{
		"open":       true,
		"session":    session,
		"marked":     marked,
		"mark_count": markCount,
	})
}

// SessionHistory lists a unit's past sessions with mark counts.
func SessionHistory(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var sessions []models.AttendanceSession
	if err := db.Where("unit_id = ?", unitId).Order("opened_at desc").Find(&sessions).Error; err != nil {
		log.Printf("Error fetching attendance sessions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	type sessionRow struct {
		models.AttendanceSession
		MarkCount int64 `json:"mark_count"`
	}

	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		var count int64
		db.Model(&models.AttendanceMark{}).Where("session_id = ?", s.ID).Count(&count)
		rows = append(rows, sessionRow{AttendanceSession: s, MarkCount: count})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance history fetched.", rows)
}

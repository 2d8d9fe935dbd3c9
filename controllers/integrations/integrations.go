package integrationsController

import (
	"log"

	"campus/config"
	"campus/middleware"
	"campus/utils"

	"github.com/gofiber/fiber/v2"
)

// ListClassroomCourses surfaces the linked Google Classroom courses so
// staff can cross-reference them with portal units.
func ListClassroomCourses(c *fiber.Ctx) error {
	token := config.AppConfig.ClassroomToken
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Google Classroom is not configured!", nil)
	}

	courses, err := utils.FetchClassroomCourses(token)
	if err != nil {
		log.Printf("Error fetching classroom courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to reach Google Classroom!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classroom courses fetched.", courses)
}

// ListClassroomAnnouncements surfaces a Classroom course's stream.
func ListClassroomAnnouncements(c *fiber.Ctx) error {
	token := config.AppConfig.ClassroomToken
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Google Classroom is not configured!", nil)
	}

	courseID := c.Params("courseId")
	if courseID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course id is required!", nil)
	}

	announcements, err := utils.FetchClassroomAnnouncements(token, courseID)
	if err != nil {
		log.Printf("Error fetching classroom announcements: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to reach Google Classroom!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classroom announcements fetched.", announcements)
}

// ListFormSubmissions surfaces JotForm survey responses for staff.
func ListFormSubmissions(c *fiber.Ctx) error {
	apiKey := config.AppConfig.JotFormApiKey
	if apiKey == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "JotForm is not configured!", nil)
	}

	formID := c.Params("formId")
	if formID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Form id is required!", nil)
	}

	submissions, err := utils.FetchJotFormSubmissions(apiKey, formID)
	if err != nil {
		log.Printf("Error fetching form submissions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to reach JotForm!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Form submissions fetched.", submissions)
}

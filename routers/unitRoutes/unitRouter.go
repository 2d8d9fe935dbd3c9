package unitRoutes

import (
	announcementsControllers "campus/controllers/announcements"
	attendanceControllers "campus/controllers/attendance"
	curriculumControllers "campus/controllers/curriculum"
	learningControllers "campus/controllers/learning"
	resourcesControllers "campus/controllers/resources"
	resultsControllers "campus/controllers/results"
	unitControllers "campus/controllers/unit"
	"campus/middleware"
	curriculumValidators "campus/validators/curriculum"
	unitValidators "campus/validators/unit"

	"github.com/gofiber/fiber/v2"
)

func SetupUnitRoutes(app *fiber.App) {
	unitGroup := app.Group("/unit", middleware.JWTMiddleware)

	// Unit catalogue and enrollment
	unitGroup.Post("/create", unitValidators.CreateUnit(), middleware.RequireStaff(), unitControllers.CreateUnit)
	unitGroup.Get("/list", unitControllers.ListUnits)
	unitGroup.Get("/mine", unitControllers.MyUnits)
	unitGroup.Post("/enroll", unitValidators.Enroll(), unitControllers.Enroll)
	unitGroup.Get("/:id", unitControllers.GetUnit)
	unitGroup.Patch("/:id", middleware.RequireStaff(), unitControllers.UpdateUnit)
	unitGroup.Delete("/:id", middleware.RequireAdmin(), unitControllers.DeleteUnit)

	// Curriculum authoring
	unitGroup.Post("/chapter/create", curriculumValidators.CreateChapter(), middleware.RequireStaff(), curriculumControllers.CreateChapter)
	unitGroup.Patch("/chapter/:id", middleware.RequireStaff(), curriculumControllers.UpdateChapter)
	unitGroup.Delete("/chapter/:id", middleware.RequireStaff(), curriculumControllers.DeleteChapter)
	unitGroup.Post("/item/create", curriculumValidators.CreateItem(), middleware.RequireStaff(), curriculumControllers.CreateItem)
	unitGroup.Patch("/item/:id", middleware.RequireStaff(), curriculumControllers.UpdateItem)
	unitGroup.Delete("/item/:id", middleware.RequireStaff(), curriculumControllers.DeleteItem)
	unitGroup.Get("/:id/curriculum", middleware.RequireStaff(), curriculumControllers.GetUnitCurriculum)

	// Learning interface and progress
	unitGroup.Get("/:id/learn", learningControllers.GetLearningInterface)
	unitGroup.Post("/progress", learningControllers.UpdateProgress)

	// Results
	unitGroup.Post("/:id/results", middleware.RequireStaff(), resultsControllers.RecordResult)
	unitGroup.Get("/:id/results", middleware.RequireStaff(), resultsControllers.UnitResults)
	unitGroup.Get("/:id/results/export", middleware.RequireStaff(), resultsControllers.ExportUnitResults)

	// Attendance
	unitGroup.Post("/:id/attendance/open", middleware.RequireStaff(), attendanceControllers.OpenSession)
	unitGroup.Post("/:id/attendance/mark", attendanceControllers.MarkAttendance)
	unitGroup.Get("/:id/attendance/status", attendanceControllers.SessionStatus)
	unitGroup.Get("/:id/attendance/history", middleware.RequireStaff(), attendanceControllers.SessionHistory)

	// Announcements and the weekly class link
	unitGroup.Post("/:id/announcements", middleware.RequireStaff(), announcementsControllers.CreateAnnouncement)
	unitGroup.Get("/:id/announcements", announcementsControllers.ListAnnouncements)
	unitGroup.Put("/:id/weekly-link", middleware.RequireStaff(), announcementsControllers.SetWeeklyLink)
	unitGroup.Get("/:id/weekly-link", announcementsControllers.GetWeeklyLink)

	// Resources
	unitGroup.Post("/:id/resources", middleware.RequireStaff(), resourcesControllers.UploadResource)
	unitGroup.Get("/:id/resources", resourcesControllers.ListResources)

	attendanceGroup := app.Group("/attendance", middleware.JWTMiddleware)
	attendanceGroup.Post("/session/:id/close", middleware.RequireStaff(), attendanceControllers.CloseSession)

	announcementGroup := app.Group("/announcement", middleware.JWTMiddleware)
	announcementGroup.Delete("/:id", middleware.RequireStaff(), announcementsControllers.DeleteAnnouncement)

	resourceGroup := app.Group("/resource", middleware.JWTMiddleware)
	resourceGroup.Delete("/:id", middleware.RequireStaff(), resourcesControllers.DeleteResource)
}

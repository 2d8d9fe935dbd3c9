package adminRoutes

import (
	adminControllers "campus/controllers/admin"
	integrationsControllers "campus/controllers/integrations"
	"campus/middleware"
	adminValidators "campus/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireAdmin())

	adminGroup.Post("/user/list", adminValidators.UserList(), adminControllers.UserList)
	adminGroup.Patch("/user/:id/active", adminControllers.SetUserActive)
	adminGroup.Post("/user/:id/reset-password", adminControllers.ResetUserPassword)
	adminGroup.Delete("/user/:id", adminControllers.DeleteUser)
	adminGroup.Get("/activity-log", adminControllers.ActivityLogList)

	integrationsGroup := app.Group("/integrations", middleware.JWTMiddleware, middleware.RequireStaff())
	integrationsGroup.Get("/classroom/courses", integrationsControllers.ListClassroomCourses)
	integrationsGroup.Get("/classroom/courses/:courseId/announcements", integrationsControllers.ListClassroomAnnouncements)
	integrationsGroup.Get("/jotform/:formId/submissions", integrationsControllers.ListFormSubmissions)
}

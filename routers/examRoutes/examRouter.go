package examRoutes

import (
	examControllers "campus/controllers/exam"
	resultsControllers "campus/controllers/results"
	"campus/middleware"
	examValidators "campus/validators/exam"

	"github.com/gofiber/fiber/v2"
)

func SetupExamRoutes(app *fiber.App) {
	examGroup := app.Group("/unit/:id/exam", middleware.JWTMiddleware)

	examGroup.Post("/create", examValidators.CreateExam(), middleware.RequireStaff(), examControllers.CreateExam)
	examGroup.Get("/", examControllers.GetExamLanding)
	examGroup.Get("/start", examControllers.StartExam)
	examGroup.Post("/submit", examValidators.SubmitExam(), examControllers.SubmitExam)
	examGroup.Get("/attempt", examControllers.GetMyAttempt)

	app.Get("/student/results", middleware.JWTMiddleware, resultsControllers.MyResults)
}

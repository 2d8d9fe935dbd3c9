package userRoutes

import (
	userControllers "campus/controllers/userControllers"
	"campus/middleware"
	authValidators "campus/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/profile", userControllers.GetProfile)
	userGroup.Patch("/profile", userControllers.UpdateProfile)
	userGroup.Put("/change/password", authValidators.ChangePassword(), userControllers.ChangePassword)
}

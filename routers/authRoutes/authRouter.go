package authRoutes

import (
	authControllers "campus/controllers/auth"
	"campus/middleware"
	authValidators "campus/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/login/verify-code", authValidators.VerifyLoginCode(), authControllers.VerifyLoginCode)
	authGroup.Post("/login/verify-totp", authValidators.VerifyTOTPLogin(), authControllers.VerifyTOTPLogin)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authControllers.LoginHistoryList)

	authGroup.Post("/2fa/setup", middleware.JWTMiddleware, authControllers.SetupTOTP)
	authGroup.Post("/2fa/confirm", authValidators.VerifyTOTP(), middleware.JWTMiddleware, authControllers.ConfirmTOTP)
	authGroup.Post("/2fa/disable", authValidators.VerifyTOTP(), middleware.JWTMiddleware, authControllers.DisableTOTP)
}

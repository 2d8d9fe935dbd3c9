package authController

import (
	"campus/database"
	"campus/middleware"
	"campus/models"
	authValidator "campus/validators/auth"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
)

// SetupTOTP generates an authenticator secret for the signed in user. The
// secret stays pending until ConfirmTOTP verifies a code against it.
func SetupTOTP(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.TOTPSecret != "" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Two-factor authentication is already enabled!", nil)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Campus Portal",
		AccountName: user.Email,
	})
	if err != nil {
		log.Printf("Error generating TOTP secret: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.PendingTOTPSecret = key.Secret()
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving pending TOTP secret: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Scan the QR code with your authenticator app, then confirm with a code.", fiber.Map{
		"secret":      key.Secret(),
		"otpauth_url": key.URL(),
	})
}

// ConfirmTOTP verifies a code against the pending secret and enables 2FA.
func ConfirmTOTP(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTOTP").(*authValidator.TOTPVerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.PendingTOTPSecret == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No pending two-factor setup found!", nil)
	}

	if !totp.Validate(reqData.Code, user.PendingTOTPSecret) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid authenticator code!", nil)
	}

	user.TOTPSecret = user.PendingTOTPSecret
	user.PendingTOTPSecret = ""
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error enabling 2FA: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Two-factor authentication enabled.", nil)
}

// DisableTOTP turns off authenticator 2FA after verifying a current code.
func DisableTOTP(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTOTP").(*authValidator.TOTPVerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.TOTPSecret == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Two-factor authentication is not enabled!", nil)
	}

	if !totp.Validate(reqData.Code, user.TOTPSecret) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid authenticator code!", nil)
	}

	user.TOTPSecret = ""
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error disabling 2FA: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Two-factor authentication disabled.", nil)
}

// VerifyTOTPLogin completes sign in for accounts with authenticator 2FA. The
// login token issued by Login after the password check is required and single
// use, so the authenticator code alone never grants a session.
func VerifyTOTPLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTOTPLogin").(*authValidator.TOTPLoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if user.TOTPSecret == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Two-factor authentication is not enabled!", nil)
	}

	var ticket models.OTP
	err := db.Where("user_id = ? AND purpose = ? AND code = ? AND is_used = ? AND expires_at > ?",
		user.ID, models.OTPPurposeTOTPLogin, reqData.LoginToken, false, time.Now()).
		Order("created_at desc").First(&ticket).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired login token!", nil)
	}

	if !totp.Validate(reqData.Code, user.TOTPSecret) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid authenticator code!", nil)
	}

	ticket.IsUsed = true
	if err := db.Save(&ticket).Error; err != nil {
		log.Printf("Error marking login token used: %v", err)
	}

	return completeLogin(c, &user)
}

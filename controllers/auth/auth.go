package authController

import (
	"campus/config"
	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/utils"
	authValidator "campus/validators/auth"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var loginLimiter utils.LoginLimiter

// InitLoginLimiter wires the rate limiter used by Login. Called from main
// after config is loaded.
func InitLoginLimiter() error {
	limiter, err := utils.NewLoginLimiter()
	if err != nil {
		return err
	}
	loginLimiter = limiter
	return nil
}

func clientIP(c *fiber.Ctx) string {
	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}
	return ip
}

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Check if admission number already exists
	if reqData.AdmissionNo != "" {
		if err := db.Where("admission_no = ?", reqData.AdmissionNo).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Admission number is already registered!", nil)
		}
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     reqData.Role,
		College:  reqData.College,
		IsActive: true,
	}
	if reqData.AdmissionNo != "" {
		admissionNo := reqData.AdmissionNo
		newUser.AdmissionNo = &admissionNo
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	go func(email, name string) {
		if err := utils.SendWelcomeEmail(email, name); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}(newUser.Email, newUser.Name)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	ip := clientIP(c)

	blocked, err := loginLimiter.Blocked(c.Context(), ip)
	if err != nil {
		log.Printf("Error checking login limiter: %v", err)
	}
	if blocked {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many failed attempts. Try again later.", nil)
	}

	var user models.User
	result := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	if result.Error != nil {
		loginLimiter.Hit(c.Context(), ip)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Account is deactivated!", nil)
	}

	// Check if the user is blocked
	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	lockoutWindow := time.Duration(config.AppConfig.LockoutMinutes) * time.Minute
	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > lockoutWindow {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		database.Database.Db.Save(&user)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		loginLimiter.Hit(c.Context(), ip)

		user.FailedLoginAttempts++
		now := time.Now()
		user.LastFailedLogin = &now

		if user.FailedLoginAttempts >= config.AppConfig.MaxLoginAttempts {
			user.IsBlocked = true
			unblockTime := now.Add(lockoutWindow)
			user.BlockedUntil = &unblockTime
		}

		if err := database.Database.Db.Save(&user).Error; err != nil {
			log.Printf("Error saving failed login state: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	loginLimiter.Reset(c.Context(), ip)

	// Staff accounts confirm sign in with an emailed code
	if user.Role == models.RoleAdmin || user.Role == models.RoleSuperAdmin {
		code := utils.GenerateOTP()
		otp := models.OTP{
			UserID:    user.ID,
			Purpose:   models.OTPPurposeAdminLogin,
			Code:      code,
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}
		if err := database.Database.Db.Create(&otp).Error; err != nil {
			log.Printf("Error saving verification code: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		go func(email, code string) {
			if err := utils.SendAdminLoginCode(email, code); err != nil {
				log.Printf("Error sending verification code: %v", err)
			}
		}(user.Email, code)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification code sent to your email.", fiber.Map{
			"stage": "code_required",
			"email": user.Email,
		})
	}

	// Accounts with authenticator 2FA confirm with a TOTP code. The login
	// token proves the password stage succeeded and is consumed on verify.
	if user.TOTPSecret != "" {
		ticket := models.OTP{
			UserID:    user.ID,
			Purpose:   models.OTPPurposeTOTPLogin,
			Code:      uuid.NewString(),
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}
		if err := database.Database.Db.Create(&ticket).Error; err != nil {
			log.Printf("Error saving login token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enter your authenticator code.", fiber.Map{
			"stage":       "totp_required",
			"email":       user.Email,
			"login_token": ticket.Code,
		})
	}

	return completeLogin(c, &user)
}

// completeLogin finalises a successful sign in: bookkeeping, tracking, token.
func completeLogin(c *fiber.Ctx, user *models.User) error {
	now := time.Now()
	user.LastLogin = now
	user.FailedLoginAttempts = 0
	user.IsBlocked = false
	user.BlockedUntil = nil
	if err := database.Database.Db.Save(user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: clientIP(c),
		Device:    c.Get("User-Agent"),
		Timestamp: now,
	}
	if err := database.Database.Db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	user.TOTPSecret = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// VerifyLoginCode completes the admin email-code sign in stage.
func VerifyLoginCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCode").(*authValidator.VerifyCodeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	var otp models.OTP
	err := db.Where("user_id = ? AND purpose = ? AND code = ? AND is_used = ? AND expires_at > ?",
		user.ID, models.OTPPurposeAdminLogin, reqData.Code, false, time.Now()).
		Order("created_at desc").First(&otp).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired code!", nil)
	}

	otp.IsUsed = true
	if err := db.Save(&otp).Error; err != nil {
		log.Printf("Error marking verification code used: %v", err)
	}

	return completeLogin(c, &user)
}

func LoginHistoryList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var history []models.LoginTracking
	if err := database.Database.Db.Where("user_id = ?", userId).
		Order("timestamp desc").Limit(50).Find(&history).Error; err != nil {
		log.Printf("Error fetching login history: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched successfully.", history)
}

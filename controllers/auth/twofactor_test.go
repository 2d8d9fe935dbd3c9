package authController

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"campus/config"
	"campus/database"
	"campus/models"
	authValidator "campus/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func totpApp(db *gorm.DB) *fiber.App {
	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		SaltRound:        4,
		MaxLoginAttempts: 5,
		LockoutMinutes:   15,
	}
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/login/verify-totp", authValidator.VerifyTOTPLogin(), VerifyTOTPLogin)
	return app
}

func seedTOTPUser(t *testing.T, db *gorm.DB) (models.User, string) {
	t.Helper()

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "Campus Portal", AccountName: "jane@uni.edu"})
	require.NoError(t, err)

	user := models.User{
		Name:       "Jane Doe",
		Email:      "jane@uni.edu",
		Password:   "$2a$04$notachance",
		Role:       models.RoleStudent,
		IsActive:   true,
		TOTPSecret: key.Secret(),
	}
	require.NoError(t, db.Create(&user).Error)
	return user, key.Secret()
}

func issueLoginTicket(t *testing.T, db *gorm.DB, userID uint) string {
	t.Helper()

	ticket := models.OTP{
		UserID:    userID,
		Purpose:   models.OTPPurposeTOTPLogin,
		Code:      uuid.NewString(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	require.NoError(t, db.Create(&ticket).Error)
	return ticket.Code
}

func postTOTPLogin(t *testing.T, app *fiber.App, payload map[string]string) int {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/auth/login/verify-totp", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestVerifyTOTPLogin_RequiresLoginToken(t *testing.T) {
	db := testDB(t)
	app := totpApp(db)
	_, secret := seedTOTPUser(t, db)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	// valid authenticator code, but no password stage behind it
	status := postTOTPLogin(t, app, map[string]string{
		"email": "jane@uni.edu",
		"code":  code,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status = postTOTPLogin(t, app, map[string]string{
		"email":       "jane@uni.edu",
		"login_token": uuid.NewString(),
		"code":        code,
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestVerifyTOTPLogin_TicketPlusCodeSucceeds(t *testing.T) {
	db := testDB(t)
	app := totpApp(db)
	user, secret := seedTOTPUser(t, db)
	token := issueLoginTicket(t, db, user.ID)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	status := postTOTPLogin(t, app, map[string]string{
		"email":       "jane@uni.edu",
		"login_token": token,
		"code":        code,
	})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestVerifyTOTPLogin_TicketIsSingleUse(t *testing.T) {
	db := testDB(t)
	app := totpApp(db)
	user, secret := seedTOTPUser(t, db)
	token := issueLoginTicket(t, db, user.ID)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	payload := map[string]string{
		"email":       "jane@uni.edu",
		"login_token": token,
		"code":        code,
	}
	require.Equal(t, fiber.StatusOK, postTOTPLogin(t, app, payload))
	assert.Equal(t, fiber.StatusUnauthorized, postTOTPLogin(t, app, payload))
}

func TestVerifyTOTPLogin_ExpiredTicketRejected(t *testing.T) {
	db := testDB(t)
	app := totpApp(db)
	user, secret := seedTOTPUser(t, db)

	ticket := models.OTP{
		UserID:    user.ID,
		Purpose:   models.OTPPurposeTOTPLogin,
		Code:      uuid.NewString(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&ticket).Error)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	status := postTOTPLogin(t, app, map[string]string{
		"email":       "jane@uni.edu",
		"login_token": ticket.Code,
		"code":        code,
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

package adminController

import (
	"fmt"
	"log"

	"campus/config"
	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/utils"
	adminValidator "campus/validators/admin"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// logActivity records an admin action for the audit trail.
func logActivity(c *fiber.Ctx, adminID uint, action, details string) {
	entry := models.ActivityLog{
		AdminID:   adminID,
		Action:    action,
		Details:   details,
		IPAddress: c.IP(),
	}
	if err := database.Database.Db.Create(&entry).Error; err != nil {
		log.Printf("Error writing activity log: %v", err)
	}
}

func UserList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*adminValidator.UserListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	db := database.Database.Db
	query := db.Where("is_deleted = ? AND role != ?", false, models.RoleSuperAdmin)
	if reqData.Role != "" {
		query = query.Where("role = ?", reqData.Role)
	}

	var users []models.User
	var total int64

	if err := query.Offset(offset).Limit(*reqData.Limit).Order("id asc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	countQuery := db.Model(&models.User{}).Where("is_deleted = ? AND role != ?", false, models.RoleSuperAdmin)
	if reqData.Role != "" {
		countQuery = countQuery.Where("role = ?", reqData.Role)
	}
	countQuery.Count(&total)

	response := map[string]interface{}{
		"users": users,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", response)
}

// SetUserActive activates or deactivates an account.
func SetUserActive(c *fiber.Ctx) error {
	adminId, _ := c.Locals("userId").(uint)

	targetId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		IsActive bool `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role == models.RoleSuperAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot modify this account!", nil)
	}

	user.IsActive = reqData.IsActive
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user state: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	action := "deactivate_user"
	if reqData.IsActive {
		action = "activate_user"
	}
	logActivity(c, adminId, action, fmt.Sprintf("user %d (%s)", user.ID, user.Email))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", nil)
}

// ResetUserPassword sets a fresh random password and emails it to the user.
func ResetUserPassword(c *fiber.Ctx) error {
	adminId, _ := c.Locals("userId").(uint)

	targetId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	newPassword := utils.GenerateSecurePassword()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	user.Password = string(hashedPassword)
	user.FailedLoginAttempts = 0
	user.IsBlocked = false
	user.BlockedUntil = nil
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving new password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	go func(email, name, password string) {
		if err := utils.SendPasswordResetEmail(email, name, password); err != nil {
			log.Printf("Error sending reset email: %v", err)
		}
	}(user.Email, user.Name, newPassword)

	logActivity(c, adminId, "reset_password", fmt.Sprintf("user %d (%s)", user.ID, user.Email))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset and emailed to the user.", nil)
}

// DeleteUser soft-deletes an account.
func DeleteUser(c *fiber.Ctx) error {
	adminId, _ := c.Locals("userId").(uint)

	targetId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role == models.RoleSuperAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot delete this account!", nil)
	}

	user.IsDeleted = true
	user.IsActive = false
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error deleting user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	logActivity(c, adminId, "delete_user", fmt.Sprintf("user %d (%s)", user.ID, user.Email))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}

// ActivityLogList returns the most recent admin actions.
func ActivityLogList(c *fiber.Ctx) error {
	var entries []models.ActivityLog
	if err := database.Database.Db.Order("created_at desc").Limit(200).Find(&entries).Error; err != nil {
		log.Printf("Error fetching activity log: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch activity log!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity log fetched.", entries)
}

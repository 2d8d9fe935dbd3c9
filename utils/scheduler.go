package utils

import (
	"campus/database"
	"campus/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// closeExpiredAttendanceSessions closes open sessions whose closing time has passed
func closeExpiredAttendanceSessions() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&models.AttendanceSession{}).
		Where("is_open = ? AND closes_at IS NOT NULL AND closes_at <= ?", true, now).
		Update("is_open", false)
	if result.Error != nil {
		logScheduler("Error closing attendance sessions: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Closed expired attendance sessions")
	}
}

// purgeExpiredOTPs removes used or expired verification codes
func purgeExpiredOTPs() {
	db := database.Database.Db
	now := time.Now()

	result := db.Unscoped().
		Where("is_used = ? OR expires_at <= ?", true, now).
		Delete(&models.OTP{})
	if result.Error != nil {
		logScheduler("Error purging verification codes: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Purged expired verification codes")
	}
}

// StartSchedulers starts the background cron jobs
func StartSchedulers() *cron.Cron {
	c := cron.New()

	// Every minute: close attendance sessions past their closing time
	c.AddFunc("* * * * *", closeExpiredAttendanceSessions)

	// Every hour: purge stale verification codes
	c.AddFunc("0 * * * *", purgeExpiredOTPs)

	c.Start()
	logScheduler("Background schedulers started")
	return c
}

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleLecturer   = "LECTURER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	gorm.Model
	Name                string  `gorm:"default:''" json:"name"`
	Email               string  `gorm:"unique;not null" json:"email"`
	Role                string  `gorm:"default:'STUDENT'" json:"role"` // STUDENT, LECTURER, ADMIN, SUPER_ADMIN
	Password            string  `gorm:"not null" json:"-"`
	AdmissionNo         *string `gorm:"uniqueIndex" json:"admission_no,omitempty"` // students only
	College             string  `gorm:"default:'Not assigned'" json:"college"`
	GoogleID            *string `gorm:"uniqueIndex" json:"-"`
	TOTPSecret          string  `gorm:"default:''" json:"-"`
	PendingTOTPSecret   string  `gorm:"default:''" json:"-"` // set during 2FA setup, promoted once confirmed
	IsActive            bool    `gorm:"default:true" json:"is_active"`
	LastLogin           time.Time
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `gorm:"default:false" json:"-"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `gorm:"default:false" json:"-"`
}

// IsStaff reports whether the user may author curriculum content.
func (u *User) IsStaff() bool {
	return u.Role == RoleLecturer || u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// AttendanceSession is an open/close window during which students of a
// unit can mark themselves present. At most one open session per unit.
type AttendanceSession struct {
	gorm.Model
	UnitID     uint       `json:"unit_id" gorm:"index;not null"`
	LecturerID uint       `json:"lecturer_id"`
	WeekLabel  string     `json:"week_label"` // e.g. "Week 3"
	OpenedAt   time.Time  `json:"opened_at"`
	ClosesAt   *time.Time `json:"closes_at"`
	IsOpen     bool       `json:"is_open" gorm:"default:true;index"`
	IsDeleted  bool       `gorm:"default:false"`
}

type AttendanceMark struct {
	gorm.Model
	SessionID uint      `json:"session_id" gorm:"not null;uniqueIndex:idx_attendance_mark"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_mark"`
	MarkedAt  time.Time `json:"marked_at"`
	IsDeleted bool      `gorm:"default:false"`
}

package models

import "gorm.io/gorm"

// ActivityLog records sensitive admin actions for auditing
type ActivityLog struct {
	gorm.Model
	AdminID   uint   `json:"admin_id" gorm:"index;not null"`
	Action    string `json:"action" gorm:"not null"`
	Details   string `json:"details" gorm:"type:text"`
	IPAddress string `json:"ip_address"`
	IsDeleted bool   `gorm:"default:false"`
}

package models

import "gorm.io/gorm"

// Resource is an uploaded file attached to a unit; only the stored
// filename is kept here, the bytes live on disk under the upload dir.
type Resource struct {
	gorm.Model
	UnitID     uint   `json:"unit_id" gorm:"index;not null"`
	Title      string `json:"title" gorm:"not null"`
	Filename   string `json:"filename" gorm:"not null"`
	UploadedBy uint   `json:"uploaded_by"`
	IsDeleted  bool   `gorm:"default:false"`
}

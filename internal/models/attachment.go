package models

import "time"

type Attachment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TodoID     uint64    `gorm:"not null;index" json:"todo_id"`
	FilePath   string    `gorm:"type:varchar(512);not null" json:"file_path"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relations
	Todo Todo `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"todo,omitempty"`
}

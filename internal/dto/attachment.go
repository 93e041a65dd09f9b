package dto

import (
	"time"

	"github.com/ecotrash/todo-backend/internal/models"
)

// AttachmentDTO represents an attachment in API responses
type AttachmentDTO struct {
	ID         uint64    `json:"id"`
	TodoID     uint64    `json:"todo_id"`
	Filename   string    `json:"filename"`
	FileURL    string    `json:"file_url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO. fileURL may
// be empty when the backend cannot resolve one.
func ToAttachmentDTO(attachment models.Attachment, fileURL string) AttachmentDTO {
	return AttachmentDTO{
		ID:         attachment.ID,
		TodoID:     attachment.TodoID,
		Filename:   attachment.Filename,
		FileURL:    fileURL,
		UploadedAt: attachment.UploadedAt,
	}
}

package repository

import (
	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/database"
	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/utils"
)

// GormAttachmentRepository is a GORM implementation of AttachmentRepository
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Create creates a new attachment record
func (r *GormAttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// FindByID finds an attachment by ID
func (r *GormAttachmentRepository) FindByID(id uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// List returns a page of attachments, optionally restricted to one todo
func (r *GormAttachmentRepository) List(todoID *uint64, params utils.PaginationParams) ([]models.Attachment, int64, error) {
	query := r.db.Model(&models.Attachment{})
	if todoID != nil {
		query = query.Where("todo_id = ?", *todoID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attachments []models.Attachment
	err := query.Order("uploaded_at DESC").
		Scopes(database.Paginate(params)).
		Find(&attachments).Error
	if err != nil {
		return nil, 0, err
	}
	return attachments, total, nil
}

// ListByTodo returns all attachments of a todo, unpaginated
func (r *GormAttachmentRepository) ListByTodo(todoID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := r.db.Where("todo_id = ?", todoID).Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete removes an attachment record
func (r *GormAttachmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Attachment{}, id).Error
}

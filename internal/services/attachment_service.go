package services

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/casdoor/oss"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/repository"
	"github.com/ecotrash/todo-backend/internal/utils"
)

// AttachmentService handles attachments: the records live in the database,
// the payloads in the storage backend.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	todoRepo       repository.TodoRepository
	storage        oss.StorageInterface
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	todoRepo repository.TodoRepository,
	storage oss.StorageInterface,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		todoRepo:       todoRepo,
		storage:        storage,
	}
}

// Upload stores the payload and binds it to an existing todo
func (s *AttachmentService) Upload(todoID uint64, filename string, reader io.Reader) (*models.Attachment, error) {
	if _, err := s.todoRepo.FindByID(todoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	key := path.Join("todo_attachments", uuid.NewString()+path.Ext(filename))
	if _, err := s.storage.Put(key, reader); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	attachment := &models.Attachment{
		TodoID:   todoID,
		FilePath: key,
		Filename: filename,
	}

	if err := s.attachmentRepo.Create(attachment); err != nil {
		// The record never existed, drop the orphaned payload.
		removeStoredFiles(s.storage, []models.Attachment{{FilePath: key}})
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}

	return attachment, nil
}

// GetAttachment returns an attachment record
func (s *AttachmentService) GetAttachment(id uint64) (*models.Attachment, error) {
	attachment, err := s.attachmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}
	return attachment, nil
}

// ListAttachments returns a page of attachments, optionally restricted to
// one todo
func (s *AttachmentService) ListAttachments(todoID *uint64, params utils.PaginationParams) ([]models.Attachment, int64, error) {
	attachments, total, err := s.attachmentRepo.List(todoID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, total, nil
}

// Open returns the stored payload stream for an attachment
func (s *AttachmentService) Open(id uint64) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.GetAttachment(id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.GetStream(attachment.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return attachment, stream, nil
}

// FileURL resolves the backend URL of the stored payload
func (s *AttachmentService) FileURL(attachment *models.Attachment) string {
	url, err := s.storage.GetURL(attachment.FilePath)
	if err != nil {
		return ""
	}
	return url
}

// DeleteAttachment removes the record and the stored payload
func (s *AttachmentService) DeleteAttachment(id uint64) error {
	attachment, err := s.GetAttachment(id)
	if err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	removeStoredFiles(s.storage, []models.Attachment{*attachment})
	return nil
}

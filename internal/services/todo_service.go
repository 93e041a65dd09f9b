package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/casdoor/oss"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/constants"
	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/repository"
)

var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleEmpty         = errors.New("title cannot be empty")
)

// TodoService handles todo business logic: lifecycle rules, filtered
// listings and statistics.
type TodoService struct {
	todoRepo       repository.TodoRepository
	categoryRepo   repository.CategoryRepository
	userRepo       repository.UserRepository
	attachmentRepo repository.AttachmentRepository
	storage        oss.StorageInterface
}

// NewTodoService creates a new TodoService
func NewTodoService(
	todoRepo repository.TodoRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	attachmentRepo repository.AttachmentRepository,
	storage oss.StorageInterface,
) *TodoService {
	return &TodoService{
		todoRepo:       todoRepo,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
	}
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	Title       string
	Description *string
	Priority    models.TodoPriority
	Status      models.TodoStatus
	DueDate     *time.Time
	UserID      *uint64
	CategoryID  *uint64
}

// UpdateTodoInput represents input for updating a todo. Nil fields are left
// untouched; the Clear flags distinguish "absent" from "explicit null".
type UpdateTodoInput struct {
	Title         *string
	Description   *string
	Priority      *models.TodoPriority
	Status        *models.TodoStatus
	DueDate       *time.Time
	ClearDueDate  bool
	UserID        *uint64
	ClearUser     bool
	CategoryID    *uint64
	ClearCategory bool
}

// TodoStats holds the aggregate view over a filtered todo set.
type TodoStats struct {
	Total          int64
	Pending        int64
	InProgress     int64
	Completed      int64
	Cancelled      int64
	Overdue        int64
	CompletionRate float64
	ByPriority     map[string]int64
	ByCategory     map[string]int64
}

// applyStatus performs a status transition with the completed_at rule:
// entering completed stamps the time, leaving completed clears it, and a
// todo that is already completed keeps its original timestamp so repeated
// completion calls stay idempotent.
func applyStatus(todo *models.Todo, status models.TodoStatus, now time.Time) {
	if status == models.StatusCompleted {
		if todo.Status != models.StatusCompleted {
			todo.CompletedAt = &now
		}
	} else {
		todo.CompletedAt = nil
	}
	todo.Status = status
}

// ListTodos returns todos matching the filter, default-ordered
func (s *TodoService) ListTodos(filter repository.TodoFilter) ([]models.Todo, int64, error) {
	todos, total, err := s.todoRepo.List(filter, time.Now())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, total, nil
}

// GetTodo returns a todo with its category and attachments
func (s *TodoService) GetTodo(id uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(id, "Category", "Attachments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// CreateTodo creates a new todo with validation and defaults
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if input.Status == "" {
		input.Status = models.StatusPending
	}

	if err := s.checkReferences(input.UserID, input.CategoryID); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		DueDate:     input.DueDate,
		UserID:      input.UserID,
		CategoryID:  input.CategoryID,
	}

	if input.Status == models.StatusCompleted {
		now := time.Now()
		todo.CompletedAt = &now
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return s.todoRepo.FindByID(todo.ID, "Category", "Attachments")
}

// UpdateTodo applies the provided fields to an existing todo
func (s *TodoService) UpdateTodo(id uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = input.Description
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.Status != nil {
		applyStatus(todo, *input.Status, time.Now())
	}
	if input.ClearDueDate {
		todo.DueDate = nil
	} else if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}

	if input.ClearUser {
		todo.UserID = nil
	} else if input.UserID != nil {
		todo.UserID = input.UserID
	}
	if input.ClearCategory {
		todo.CategoryID = nil
	} else if input.CategoryID != nil {
		todo.CategoryID = input.CategoryID
	}
	if err := s.checkReferences(todo.UserID, todo.CategoryID); err != nil {
		return nil, err
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return s.todoRepo.FindByID(todo.ID, "Category", "Attachments")
}

// UpdateStatus performs a status-only update with the completed_at rule
func (s *TodoService) UpdateStatus(id uint64, status models.TodoStatus) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	applyStatus(todo, status, time.Now())

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.todoRepo.FindByID(todo.ID, "Category", "Attachments")
}

// MarkCompleted marks a todo completed regardless of its prior status. An
// already completed todo keeps its completion timestamp.
func (s *TodoService) MarkCompleted(id uint64) (*models.Todo, error) {
	return s.UpdateStatus(id, models.StatusCompleted)
}

// DeleteTodo removes a todo, its attachment records and their stored files
func (s *TodoService) DeleteTodo(id uint64) error {
	if _, err := s.todoRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to find todo: %w", err)
	}

	attachments, err := s.attachmentRepo.ListByTodo(id)
	if err != nil {
		return fmt.Errorf("failed to list attachments: %w", err)
	}

	if err := s.todoRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	removeStoredFiles(s.storage, attachments)
	return nil
}

// Stats computes the aggregate view over the filtered todo set as of now.
// Nothing is cached; every call recomputes from current state.
func (s *TodoService) Stats(filter repository.TodoFilter) (*TodoStats, error) {
	now := time.Now()

	byStatus, err := s.todoRepo.CountByStatus(filter, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	overdue, err := s.todoRepo.CountOverdue(filter, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue: %w", err)
	}

	byPriority, err := s.todoRepo.CountByPriority(filter, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count by priority: %w", err)
	}

	byCategory, err := s.todoRepo.CountByCategory(filter, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count by category: %w", err)
	}

	stats := &TodoStats{
		Pending:    byStatus[models.StatusPending],
		InProgress: byStatus[models.StatusInProgress],
		Completed:  byStatus[models.StatusCompleted],
		Cancelled:  byStatus[models.StatusCancelled],
		Overdue:    overdue,
		ByPriority: make(map[string]int64, len(byPriority)),
		ByCategory: make(map[string]int64, len(byCategory)),
	}
	for _, count := range byStatus {
		stats.Total += count
	}

	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}

	for priority, count := range byPriority {
		stats.ByPriority[string(priority)] = count
	}
	for name, count := range byCategory {
		if name == "" {
			name = constants.UncategorizedLabel
		}
		stats.ByCategory[name] = count
	}

	return stats, nil
}

// checkReferences verifies that the optional user and category references
// resolve to existing records
func (s *TodoService) checkReferences(userID, categoryID *uint64) error {
	if userID != nil {
		if _, err := s.userRepo.FindByID(*userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(*categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("failed to find category: %w", err)
		}
	}
	return nil
}

// removeStoredFiles deletes attachment payloads from the storage backend.
// Record deletion has already committed, so failures are only logged.
func removeStoredFiles(storage oss.StorageInterface, attachments []models.Attachment) {
	if storage == nil {
		return
	}
	for _, attachment := range attachments {
		if err := storage.Delete(attachment.FilePath); err != nil {
			zap.L().Warn("failed to remove stored attachment file",
				zap.String("path", attachment.FilePath),
				zap.Error(err))
		}
	}
}

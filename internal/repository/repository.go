package repository

import (
	"time"

	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/utils"
)

// TodoFilter holds the filtering options for listing todos. Dimensions
// compose with AND; zero values mean "no restriction".
type TodoFilter struct {
	Status     *models.TodoStatus
	Priorities []models.TodoPriority
	CategoryID *uint64
	UserID     *uint64
	Search     string
	Overdue    bool
	Page       int
	PageSize   int
}

// StatusCounts maps each status to the number of todos holding it.
type StatusCounts map[models.TodoStatus]int64

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByID finds a todo by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Todo, error)

	// List retrieves todos matching the filter, default-ordered and paginated
	List(filter TodoFilter, now time.Time) ([]models.Todo, int64, error)

	// Update persists all fields of a todo
	Update(todo *models.Todo) error

	// Delete removes a todo and its attachments
	Delete(id uint64) error

	// CountByStatus counts filtered todos grouped by status
	CountByStatus(filter TodoFilter, now time.Time) (StatusCounts, error)

	// CountOverdue counts filtered todos that are overdue as of now
	CountOverdue(filter TodoFilter, now time.Time) (int64, error)

	// CountByPriority counts filtered todos grouped by priority
	CountByPriority(filter TodoFilter, now time.Time) (map[models.TodoPriority]int64, error)

	// CountByCategory counts filtered todos grouped by category name; todos
	// without a category are reported under the empty key
	CountByCategory(filter TodoFilter, now time.Time) (map[string]int64, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// List returns all categories ordered by name
	List() ([]models.Category, error)

	// Update persists all fields of a category
	Update(category *models.Category) error

	// Delete removes a category, clearing the reference on its todos
	Delete(id uint64) error

	// CountTodos counts todos currently referencing each given category
	CountTodos(categoryIDs []uint64) (map[uint64]int64, error)
}

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	// Create creates a new attachment record
	Create(attachment *models.Attachment) error

	// FindByID finds an attachment by ID
	FindByID(id uint64) (*models.Attachment, error)

	// List returns a page of attachments, optionally restricted to one todo
	List(todoID *uint64, params utils.PaginationParams) ([]models.Attachment, int64, error)

	// ListByTodo returns all attachments of a todo
	ListByTodo(todoID uint64) ([]models.Attachment, error)

	// Delete removes an attachment record
	Delete(id uint64) error
}

// UserRepository defines the interface for reference-user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// Delete removes a user and cascades to their todos and attachments,
	// returning the attachment records removed so stored files can be
	// cleaned up
	Delete(id uint64) ([]models.Attachment, error)
}

package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/models"
)

// priorityRankExpr orders priorities by their declared enumeration order
// rather than lexically.
const priorityRankExpr = "CASE priority WHEN 'urgent' THEN 3 WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END"

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds a todo by ID with optional preloading
func (r *GormTodoRepository) FindByID(id uint64, preload ...string) (*models.Todo, error) {
	var todo models.Todo
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&todo, id).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// filtered builds the base query for the given filter. Pagination is not
// applied here; counts and aggregates reuse the same restriction set.
func (r *GormTodoRepository) filtered(filter TodoFilter, now time.Time) *gorm.DB {
	query := r.db.Model(&models.Todo{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if len(filter.Priorities) == 1 {
		query = query.Where("priority = ?", filter.Priorities[0])
	} else if len(filter.Priorities) > 1 {
		query = query.Where("priority IN ?", filter.Priorities)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.Overdue {
		query = query.Where("due_date < ? AND status IN ?", now,
			[]models.TodoStatus{models.StatusPending, models.StatusInProgress})
	}

	return query
}

// List retrieves todos with filtering and pagination
func (r *GormTodoRepository) List(filter TodoFilter, now time.Time) ([]models.Todo, int64, error) {
	query := r.filtered(filter, now)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC, " + priorityRankExpr + " DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	var todos []models.Todo
	if err := listQuery.Preload("Category").Preload("Attachments").Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

// Update persists all fields of a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete removes a todo together with its attachment records
func (r *GormTodoRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Todo{}, id).Error
	})
}

// CountByStatus counts filtered todos grouped by status
func (r *GormTodoRepository) CountByStatus(filter TodoFilter, now time.Time) (StatusCounts, error) {
	var rows []struct {
		Status models.TodoStatus
		Count  int64
	}

	err := r.filtered(filter, now).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(StatusCounts, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountOverdue counts filtered todos whose due date has passed while still
// pending or in progress
func (r *GormTodoRepository) CountOverdue(filter TodoFilter, now time.Time) (int64, error) {
	var count int64
	err := r.filtered(filter, now).
		Where("due_date < ? AND status IN ?", now,
			[]models.TodoStatus{models.StatusPending, models.StatusInProgress}).
		Count(&count).Error
	return count, err
}

// CountByPriority counts filtered todos grouped by priority
func (r *GormTodoRepository) CountByPriority(filter TodoFilter, now time.Time) (map[models.TodoPriority]int64, error) {
	var rows []struct {
		Priority models.TodoPriority
		Count    int64
	}

	err := r.filtered(filter, now).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TodoPriority]int64, len(rows))
	for _, row := range rows {
		counts[row.Priority] = row.Count
	}
	return counts, nil
}

// CountByCategory counts filtered todos grouped by category name. Todos
// without a category land under the empty key; the service applies the
// display sentinel.
func (r *GormTodoRepository) CountByCategory(filter TodoFilter, now time.Time) (map[string]int64, error) {
	var rows []struct {
		Name  *string
		Count int64
	}

	err := r.filtered(filter, now).
		Select("categories.name AS name, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = todos.category_id").
		Group("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		if row.Name == nil {
			counts[""] += row.Count
			continue
		}
		counts[*row.Name] = row.Count
	}
	return counts, nil
}

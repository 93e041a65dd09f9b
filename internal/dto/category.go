package dto

import (
	"time"

	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/services"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	Icon        *string   `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	TasksCount  *int64    `json:"tasks_count,omitempty"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
		Icon:        category.Icon,
		CreatedAt:   category.CreatedAt,
	}
}

// ToCategoryWithCountDTO converts a category with its live todo count
func ToCategoryWithCountDTO(category services.CategoryWithCount) CategoryDTO {
	dto := ToCategoryDTO(category.Category)
	count := category.TasksCount
	dto.TasksCount = &count
	return dto
}

// ToCategoryListResponse converts categories with counts to the list shape
func ToCategoryListResponse(categories []services.CategoryWithCount) []CategoryDTO {
	items := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = ToCategoryWithCountDTO(category)
	}
	return items
}

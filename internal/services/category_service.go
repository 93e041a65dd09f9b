package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/repository"
)

var ErrDuplicateCategoryName = errors.New("a category with this name already exists")

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	Name        string
	Description *string
	Color       string
	Icon        *string
}

// UpdateCategoryInput represents input for updating a category
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

// CategoryWithCount pairs a category with the number of todos referencing it
type CategoryWithCount struct {
	models.Category
	TasksCount int64
}

// CreateCategory creates a new category; the name must be unique
func (s *CategoryService) CreateCategory(input CreateCategoryInput) (*models.Category, error) {
	if input.Color == "" {
		input.Color = models.DefaultCategoryColor
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategoryName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetCategory returns a category with its live todo count
func (s *CategoryService) GetCategory(id uint64) (*CategoryWithCount, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	counts, err := s.categoryRepo.CountTodos([]uint64{id})
	if err != nil {
		return nil, fmt.Errorf("failed to count todos: %w", err)
	}

	return &CategoryWithCount{Category: *category, TasksCount: counts[id]}, nil
}

// ListCategories returns all categories with live todo counts
func (s *CategoryService) ListCategories() ([]CategoryWithCount, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	ids := make([]uint64, len(categories))
	for i, category := range categories {
		ids[i] = category.ID
	}

	counts, err := s.categoryRepo.CountTodos(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count todos: %w", err)
	}

	result := make([]CategoryWithCount, len(categories))
	for i, category := range categories {
		result[i] = CategoryWithCount{Category: category, TasksCount: counts[category.ID]}
	}
	return result, nil
}

// UpdateCategory applies the provided fields to an existing category
func (s *CategoryService) UpdateCategory(id uint64, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.Icon != nil {
		category.Icon = input.Icon
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategoryName
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category; referencing todos keep existing with
// their category cleared
func (s *CategoryService) DeleteCategory(id uint64) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

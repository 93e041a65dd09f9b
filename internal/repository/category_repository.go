package repository

import (
	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/models"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns all categories ordered by name
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update persists all fields of a category
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category. Referencing todos survive with their category
// reference cleared.
func (r *GormCategoryRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Todo{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Category{}, id).Error
	})
}

// CountTodos counts todos currently referencing each given category
func (r *GormCategoryRepository) CountTodos(categoryIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CategoryID uint64
		Count      int64
	}

	err := r.db.Model(&models.Todo{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

package repository

import (
	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user and cascades to their todos and the todos'
// attachment records, all in one transaction. The removed attachments are
// returned so the caller can clean up stored files.
func (r *GormUserRepository) Delete(id uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var todoIDs []uint64
		err := tx.Model(&models.Todo{}).
			Where("user_id = ?", id).
			Pluck("id", &todoIDs).Error
		if err != nil {
			return err
		}

		if len(todoIDs) > 0 {
			if err := tx.Where("todo_id IN ?", todoIDs).Find(&attachments).Error; err != nil {
				return err
			}
			if err := tx.Where("todo_id IN ?", todoIDs).Delete(&models.Attachment{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Todo{}, todoIDs).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return attachments, nil
}

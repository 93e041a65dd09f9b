package services

import (
	"errors"
	"fmt"

	"github.com/casdoor/oss"
	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/repository"
)

var ErrDuplicateUsername = errors.New("a user with this username already exists")

// UserService handles the reference-user store
type UserService struct {
	userRepo repository.UserRepository
	storage  oss.StorageInterface
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, storage oss.StorageInterface) *UserService {
	return &UserService{userRepo: userRepo, storage: storage}
}

// CreateUser creates a reference user; the username must be unique
func (s *UserService) CreateUser(username, email string) (*models.User, error) {
	user := &models.User{
		Username: username,
		Email:    email,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user; their todos and those todos' attachments go
// with them
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}

	attachments, err := s.userRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	removeStoredFiles(s.storage, attachments)
	return nil
}

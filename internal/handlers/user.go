package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecotrash/todo-backend/internal/dto"
	apierrors "github.com/ecotrash/todo-backend/internal/errors"
	"github.com/ecotrash/todo-backend/internal/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers returns all reference users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	items := make([]dto.UserDTO, len(users))
	for i, user := range users {
		items[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{"users": items})
}

// GetUser returns a specific user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates a reference user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string `json:"username" binding:"required,max=150"`
		Email    string `json:"email" binding:"omitempty,email"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, err := h.service.CreateUser(req.Username, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// DeleteUser destroys a user; their todos and attachments go with them
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrDuplicateUsername):
		apierrors.Conflict(c, err.Error())
	default:
		zap.L().Error("user request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

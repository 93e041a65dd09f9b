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

type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// ListCategories returns all categories with live todo counts
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		zap.L().Error("failed to list categories", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryListResponse(categories)})
}

// GetCategory returns a specific category by ID
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.service.GetCategory(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryWithCountDTO(*category))
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name        string  `json:"name" binding:"required,max=100"`
		Description *string `json:"description"`
		Color       string  `json:"color" binding:"omitempty,hexcolor"`
		Icon        *string `json:"icon" binding:"omitempty,max=50"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	category, err := h.service.CreateCategory(services.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// UpdateCategory applies the provided fields to a category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateCategoryRequest struct {
		Name        *string `json:"name" binding:"omitempty,max=100"`
		Description *string `json:"description"`
		Color       *string `json:"color" binding:"omitempty,hexcolor"`
		Icon        *string `json:"icon" binding:"omitempty,max=50"`
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	category, err := h.service.UpdateCategory(id, services.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory destroys a category; its todos survive uncategorized
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, "Category not found")
	case errors.Is(err, services.ErrDuplicateCategoryName):
		apierrors.Conflict(c, err.Error())
	default:
		zap.L().Error("category request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecotrash/todo-backend/internal/dto"
	apierrors "github.com/ecotrash/todo-backend/internal/errors"
	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/repository"
	"github.com/ecotrash/todo-backend/internal/services"
	"github.com/ecotrash/todo-backend/internal/utils"
)

type TodoHandler struct {
	service *services.TodoService
}

func NewTodoHandler(service *services.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// buildTodoFilter translates query parameters into a TodoFilter. An invalid
// enum value aborts the request with a field-level 400.
func buildTodoFilter(c *gin.Context) (repository.TodoFilter, bool) {
	var filter repository.TodoFilter

	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseTodoStatus(raw)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid filter", map[string]string{"status": err.Error()})
			return filter, false
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, err := models.ParseTodoPriority(raw)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid filter", map[string]string{"priority": err.Error()})
			return filter, false
		}
		filter.Priorities = []models.TodoPriority{priority}
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid filter", map[string]string{"category": "must be a numeric id"})
			return filter, false
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("user"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid filter", map[string]string{"user": "must be a numeric id"})
			return filter, false
		}
		filter.UserID = &id
	}
	filter.Search = c.Query("search")
	filter.Overdue = utils.ParseBoolish(c.Query("overdue"))

	return filter, true
}

func (h *TodoHandler) list(c *gin.Context, filter repository.TodoFilter) {
	params := utils.GetPaginationParams(c)
	filter.Page = params.Page
	filter.PageSize = params.Limit

	todos, total, err := h.service.ListTodos(filter)
	if err != nil {
		zap.L().Error("failed to list todos", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch todos")
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoListResponse(todos, params, total))
}

// ListTodos returns todos matching the query filters
func (h *TodoHandler) ListTodos(c *gin.Context) {
	filter, ok := buildTodoFilter(c)
	if !ok {
		return
	}
	h.list(c, filter)
}

// ListOverdue is the convenience view over overdue todos
func (h *TodoHandler) ListOverdue(c *gin.Context) {
	filter, ok := buildTodoFilter(c)
	if !ok {
		return
	}
	filter.Overdue = true
	h.list(c, filter)
}

// ListHighPriority is the convenience view over high and urgent todos
func (h *TodoHandler) ListHighPriority(c *gin.Context) {
	filter, ok := buildTodoFilter(c)
	if !ok {
		return
	}
	filter.Priorities = []models.TodoPriority{models.PriorityHigh, models.PriorityUrgent}
	h.list(c, filter)
}

// GetTodo returns a specific todo by ID
func (h *TodoHandler) GetTodo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	todo, err := h.service.GetTodo(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo, time.Now()))
}

// CreateTodo creates a new todo
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	type CreateTodoRequest struct {
		Title       string     `json:"title" binding:"required,max=200"`
		Description *string    `json:"description"`
		Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
		Status      string     `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
		DueDate     *time.Time `json:"due_date"`
		UserID      *uint64    `json:"user_id"`
		CategoryID  *uint64    `json:"category_id"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	todo, err := h.service.CreateTodo(services.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TodoPriority(req.Priority),
		Status:      models.TodoStatus(req.Status),
		DueDate:     req.DueDate,
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo, time.Now()))
}

// UpdateTodo applies a full or partial update. The raw JSON is inspected so
// absent fields stay untouched while explicit nulls clear values.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, details := buildUpdateInput(rawReq)
	if len(details) > 0 {
		apierrors.BadRequestWithDetails(c, "Invalid request body", details)
		return
	}

	todo, err := h.service.UpdateTodo(id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo, time.Now()))
}

// UpdateStatus updates only the status of a todo
func (h *TodoHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	todo, err := h.service.UpdateStatus(id, models.TodoStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo, time.Now()))
}

// MarkCompleted marks a todo as completed
func (h *TodoHandler) MarkCompleted(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	todo, err := h.service.MarkCompleted(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo, time.Now()))
}

// DeleteTodo destroys a todo and its attachments
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTodo(id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats returns the aggregate view over the filtered todo set
func (h *TodoHandler) Stats(c *gin.Context) {
	filter, ok := buildTodoFilter(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(filter)
	if err != nil {
		zap.L().Error("failed to compute todo stats", zap.Error(err))
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoStatsDTO(stats))
}

func (h *TodoHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{"title": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{"user_id": err.Error()})
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{"category_id": err.Error()})
	default:
		zap.L().Error("todo request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

// buildUpdateInput maps the raw JSON body onto an UpdateTodoInput, collecting
// per-field problems along the way
func buildUpdateInput(rawReq map[string]any) (services.UpdateTodoInput, map[string]string) {
	var input services.UpdateTodoInput
	details := make(map[string]string)

	if raw, ok := rawReq["title"]; ok {
		if title, ok := raw.(string); ok {
			if len(title) > 200 {
				details["title"] = "must be at most 200 characters"
			}
			input.Title = &title
		} else {
			details["title"] = "must be a string"
		}
	}
	if raw, ok := rawReq["description"]; ok {
		if raw == nil {
			empty := ""
			input.Description = &empty
		} else if description, ok := raw.(string); ok {
			input.Description = &description
		} else {
			details["description"] = "must be a string"
		}
	}
	if raw, ok := rawReq["priority"]; ok {
		str, isStr := raw.(string)
		if !isStr {
			details["priority"] = "must be a string"
		} else if priority, err := models.ParseTodoPriority(str); err != nil {
			details["priority"] = err.Error()
		} else {
			input.Priority = &priority
		}
	}
	if raw, ok := rawReq["status"]; ok {
		str, isStr := raw.(string)
		if !isStr {
			details["status"] = "must be a string"
		} else if status, err := models.ParseTodoStatus(str); err != nil {
			details["status"] = err.Error()
		} else {
			input.Status = &status
		}
	}
	if raw, ok := rawReq["due_date"]; ok {
		if raw == nil {
			input.ClearDueDate = true
		} else if str, isStr := raw.(string); isStr {
			parsed, err := time.Parse(time.RFC3339, str)
			if err != nil {
				details["due_date"] = "must be an RFC 3339 timestamp"
			} else {
				input.DueDate = &parsed
			}
		} else {
			details["due_date"] = "must be an RFC 3339 timestamp or null"
		}
	}
	if raw, ok := rawReq["user_id"]; ok {
		if raw == nil {
			input.ClearUser = true
		} else if id, ok := numericID(raw); ok {
			input.UserID = &id
		} else {
			details["user_id"] = "must be a numeric id or null"
		}
	}
	if raw, ok := rawReq["category_id"]; ok {
		if raw == nil {
			input.ClearCategory = true
		} else if id, ok := numericID(raw); ok {
			input.CategoryID = &id
		} else {
			details["category_id"] = "must be a numeric id or null"
		}
	}

	return input, details
}

// numericID accepts the JSON number representation of an identifier
func numericID(raw any) (uint64, bool) {
	f, ok := raw.(float64)
	if !ok || f < 0 || f != float64(uint64(f)) {
		return 0, false
	}
	return uint64(f), true
}

// parseIDParam parses the :id path parameter, answering 404 on garbage since
// no resource can live at such a path
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

package dto

import (
	"time"

	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/services"
	"github.com/ecotrash/todo-backend/internal/utils"
)

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID              uint64              `json:"id"`
	Title           string              `json:"title"`
	Description     *string             `json:"description"`
	Priority        models.TodoPriority `json:"priority"`
	PriorityDisplay string              `json:"priority_display"`
	Status          models.TodoStatus   `json:"status"`
	StatusDisplay   string              `json:"status_display"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DueDate         *time.Time          `json:"due_date"`
	CompletedAt     *time.Time          `json:"completed_at"`
	UserID          *uint64             `json:"user_id"`
	CategoryID      *uint64             `json:"category_id"`
	CategoryDetails *CategoryDTO        `json:"category_details,omitempty"`
	Attachments     []AttachmentDTO     `json:"attachments"`
	IsOverdue       bool                `json:"is_overdue"`
	DaysUntilDue    *int                `json:"days_until_due"`
}

// TodoListResponse represents a paginated list of todos
type TodoListResponse struct {
	Todos      []TodoDTO                `json:"todos"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// TodoStatsDTO represents the aggregate statistics response
type TodoStatsDTO struct {
	TotalTasks      int64            `json:"total_tasks"`
	PendingTasks    int64            `json:"pending_tasks"`
	InProgressTasks int64            `json:"in_progress_tasks"`
	CompletedTasks  int64            `json:"completed_tasks"`
	CancelledTasks  int64            `json:"cancelled_tasks"`
	OverdueTasks    int64            `json:"overdue_tasks"`
	CompletionRate  float64          `json:"completion_rate"`
	TasksByPriority map[string]int64 `json:"tasks_by_priority"`
	TasksByCategory map[string]int64 `json:"tasks_by_category"`
}

// ToTodoDTO converts a Todo model to TodoDTO; derived fields are evaluated
// against now
func ToTodoDTO(todo models.Todo, now time.Time) TodoDTO {
	dto := TodoDTO{
		ID:              todo.ID,
		Title:           todo.Title,
		Description:     todo.Description,
		Priority:        todo.Priority,
		PriorityDisplay: todo.Priority.Display(),
		Status:          todo.Status,
		StatusDisplay:   todo.Status.Display(),
		CreatedAt:       todo.CreatedAt,
		UpdatedAt:       todo.UpdatedAt,
		DueDate:         todo.DueDate,
		CompletedAt:     todo.CompletedAt,
		UserID:          todo.UserID,
		CategoryID:      todo.CategoryID,
		Attachments:     make([]AttachmentDTO, 0, len(todo.Attachments)),
		IsOverdue:       todo.IsOverdue(now),
		DaysUntilDue:    todo.DaysUntilDue(now),
	}

	// Include category if preloaded
	if todo.Category != nil {
		category := ToCategoryDTO(*todo.Category)
		dto.CategoryDetails = &category
	}

	for _, attachment := range todo.Attachments {
		dto.Attachments = append(dto.Attachments, ToAttachmentDTO(attachment, ""))
	}

	return dto
}

// ToTodoListResponse converts a slice of todos to TodoListResponse
func ToTodoListResponse(todos []models.Todo, params utils.PaginationParams, total int64) TodoListResponse {
	now := time.Now()
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo, now)
	}

	return TodoListResponse{
		Todos: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}

// ToTodoStatsDTO converts service statistics to the response shape
func ToTodoStatsDTO(stats *services.TodoStats) TodoStatsDTO {
	return TodoStatsDTO{
		TotalTasks:      stats.Total,
		PendingTasks:    stats.Pending,
		InProgressTasks: stats.InProgress,
		CompletedTasks:  stats.Completed,
		CancelledTasks:  stats.Cancelled,
		OverdueTasks:    stats.Overdue,
		CompletionRate:  stats.CompletionRate,
		TasksByPriority: stats.ByPriority,
		TasksByCategory: stats.ByCategory,
	}
}

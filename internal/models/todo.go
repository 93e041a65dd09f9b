package models

import (
	"fmt"
	"time"
)

type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in_progress"
	StatusCompleted  TodoStatus = "completed"
	StatusCancelled  TodoStatus = "cancelled"
)

type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
	PriorityUrgent TodoPriority = "urgent"
)

// ParseTodoStatus validates a status value coming from a request
func ParseTodoStatus(s string) (TodoStatus, error) {
	switch TodoStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return TodoStatus(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// ParseTodoPriority validates a priority value coming from a request
func ParseTodoPriority(s string) (TodoPriority, error) {
	switch TodoPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return TodoPriority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

// Display returns the human-readable label for a status
func (s TodoStatus) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Display returns the human-readable label for a priority
func (p TodoPriority) Display() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return string(p)
}

// Rank maps a priority to its position in the declared enumeration order,
// used for sorting. Higher means more urgent.
func (p TodoPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	}
	return -1
}

type Todo struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Priority    TodoPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status      TodoStatus   `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	DueDate     *time.Time   `json:"due_date"`
	CompletedAt *time.Time   `json:"completed_at"`
	UserID      *uint64      `gorm:"index" json:"user_id"`
	CategoryID  *uint64      `gorm:"index" json:"category_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TodoID" json:"attachments,omitempty"`
}

// IsOverdue reports whether the todo's due date has passed while it is still
// actionable. Completed and cancelled todos are never overdue, nor are todos
// without a due date.
func (t *Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status != StatusPending && t.Status != StatusInProgress {
		return false
	}
	return now.After(*t.DueDate)
}

// DaysUntilDue returns the number of whole calendar days between now and the
// due date, or nil when no due date is set. Negative for past dates.
func (t *Todo) DaysUntilDue(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := t.DueDate.In(now.Location())
	dueDate := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	days := int(dueDate.Sub(nowDate).Hours() / 24)
	return &days
}

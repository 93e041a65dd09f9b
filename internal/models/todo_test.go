package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodo_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		dueDate *time.Time
		status  TodoStatus
		want    bool
	}{
		{"no due date", nil, StatusPending, false},
		{"past due pending", &past, StatusPending, true},
		{"past due in progress", &past, StatusInProgress, true},
		{"past due completed", &past, StatusCompleted, false},
		{"past due cancelled", &past, StatusCancelled, false},
		{"future due pending", &future, StatusPending, false},
		{"due exactly now", &now, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo := Todo{DueDate: tt.dueDate, Status: tt.status}
			assert.Equal(t, tt.want, todo.IsOverdue(now))
		})
	}
}

func TestTodo_DaysUntilDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)

	t.Run("no due date", func(t *testing.T) {
		todo := Todo{}
		assert.Nil(t, todo.DaysUntilDue(now))
	})

	t.Run("due tomorrow morning counts as one day", func(t *testing.T) {
		due := time.Date(2025, 6, 16, 1, 0, 0, 0, time.UTC)
		todo := Todo{DueDate: &due}
		days := todo.DaysUntilDue(now)
		assert.NotNil(t, days)
		assert.Equal(t, 1, *days)
	})

	t.Run("overdue yields negative days", func(t *testing.T) {
		due := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
		todo := Todo{DueDate: &due}
		days := todo.DaysUntilDue(now)
		assert.NotNil(t, days)
		assert.Equal(t, -2, *days)
	})
}

func TestParseTodoStatus(t *testing.T) {
	for _, valid := range []string{"pending", "in_progress", "completed", "cancelled"} {
		status, err := ParseTodoStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, TodoStatus(valid), status)
	}

	_, err := ParseTodoStatus("done")
	assert.Error(t, err)
	_, err = ParseTodoStatus("")
	assert.Error(t, err)
}

func TestParseTodoPriority(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high", "urgent"} {
		priority, err := ParseTodoPriority(valid)
		assert.NoError(t, err)
		assert.Equal(t, TodoPriority(valid), priority)
	}

	_, err := ParseTodoPriority("critical")
	assert.Error(t, err)
}

func TestTodoPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityUrgent.Rank())
}

func TestDisplayLabels(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Display())
	assert.Equal(t, "Pending", StatusPending.Display())
	assert.Equal(t, "Urgent", PriorityUrgent.Display())
	assert.Equal(t, "Low", PriorityLow.Display())
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casdoor/oss/filesystem"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ecotrash/todo-backend/internal/database"
	"github.com/ecotrash/todo-backend/internal/models"
	"github.com/ecotrash/todo-backend/internal/repository"
	"github.com/ecotrash/todo-backend/internal/services"
)

// TodoHandlerTestSuite defines the test suite for TodoHandler
type TodoHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TodoHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Todo{},
		&models.Attachment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	storage := filesystem.New(suite.T().TempDir())

	todoRepo := repository.NewTodoRepository(suite.db)
	categoryRepo := repository.NewCategoryRepository(suite.db)
	attachmentRepo := repository.NewAttachmentRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	service := services.NewTodoService(todoRepo, categoryRepo, userRepo, attachmentRepo, storage)
	handler := NewTodoHandler(service)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Create router
	suite.router = gin.New()
	todos := suite.router.Group("/api/todos")
	{
		todos.GET("", handler.ListTodos)
		todos.POST("", handler.CreateTodo)
		todos.GET("/stats", handler.Stats)
		todos.GET("/overdue", handler.ListOverdue)
		todos.GET("/high_priority", handler.ListHighPriority)
		todos.GET("/:id", handler.GetTodo)
		todos.PATCH("/:id", handler.UpdateTodo)
		todos.DELETE("/:id", handler.DeleteTodo)
		todos.PATCH("/:id/update_status", handler.UpdateStatus)
		todos.POST("/:id/mark_completed", handler.MarkCompleted)
	}
}

// TearDownTest runs after each test
func (suite *TodoHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TodoHandlerTestSuite) createTestTodo(title string, status models.TodoStatus, priority models.TodoPriority) *models.Todo {
	todo := &models.Todo{
		Title:    title,
		Status:   status,
		Priority: priority,
	}
	suite.db.Create(todo)
	return todo
}

func (suite *TodoHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TodoHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (suite *TodoHandlerTestSuite) TestCreateTodo() {
	w := suite.request(http.MethodPost, "/api/todos", gin.H{"title": "Buy groceries"})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	resp := suite.decode(w)
	assert.Equal(suite.T(), "Buy groceries", resp["title"])
	assert.Equal(suite.T(), "medium", resp["priority"])
	assert.Equal(suite.T(), "Medium", resp["priority_display"])
	assert.Equal(suite.T(), "pending", resp["status"])
	assert.Equal(suite.T(), false, resp["is_overdue"])
	assert.Nil(suite.T(), resp["completed_at"])
}

func (suite *TodoHandlerTestSuite) TestCreateTodoMissingTitle() {
	w := suite.request(http.MethodPost, "/api/todos", gin.H{"priority": "high"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	resp := suite.decode(w)
	details, ok := resp["details"].(map[string]any)
	suite.Require().True(ok)
	assert.Contains(suite.T(), details, "title")
}

func (suite *TodoHandlerTestSuite) TestCreateTodoInvalidPriority() {
	w := suite.request(http.MethodPost, "/api/todos", gin.H{
		"title":    "Bad priority",
		"priority": "extreme",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	resp := suite.decode(w)
	details, ok := resp["details"].(map[string]any)
	suite.Require().True(ok)
	assert.Contains(suite.T(), details, "priority")
}

func (suite *TodoHandlerTestSuite) TestCreateTodoUnknownCategory() {
	w := suite.request(http.MethodPost, "/api/todos", gin.H{
		"title":       "Orphan",
		"category_id": 999,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	resp := suite.decode(w)
	details, ok := resp["details"].(map[string]any)
	suite.Require().True(ok)
	assert.Contains(suite.T(), details, "category_id")
}

func (suite *TodoHandlerTestSuite) TestGetTodoNotFound() {
	w := suite.request(http.MethodGet, "/api/todos/999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// Garbage IDs cannot address a resource either
	w = suite.request(http.MethodGet, "/api/todos/abc", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TodoHandlerTestSuite) TestListTodosFilterByStatus() {
	suite.createTestTodo("One", models.StatusPending, models.PriorityMedium)
	suite.createTestTodo("Two", models.StatusCompleted, models.PriorityMedium)
	suite.createTestTodo("Three", models.StatusPending, models.PriorityLow)

	w := suite.request(http.MethodGet, "/api/todos?status=pending", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	todos, ok := resp["todos"].([]any)
	suite.Require().True(ok)
	assert.Len(suite.T(), todos, 2)

	pagination, ok := resp["pagination"].(map[string]any)
	suite.Require().True(ok)
	assert.Equal(suite.T(), float64(2), pagination["total"])
}

func (suite *TodoHandlerTestSuite) TestListTodosInvalidStatusFilter() {
	w := suite.request(http.MethodGet, "/api/todos?status=done", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	resp := suite.decode(w)
	details, ok := resp["details"].(map[string]any)
	suite.Require().True(ok)
	assert.Contains(suite.T(), details, "status")
}

func (suite *TodoHandlerTestSuite) TestListOverdue() {
	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	late := suite.createTestTodo("Late", models.StatusPending, models.PriorityMedium)
	suite.db.Model(late).Update("due_date", yesterday)
	onTime := suite.createTestTodo("On time", models.StatusPending, models.PriorityMedium)
	suite.db.Model(onTime).Update("due_date", tomorrow)
	done := suite.createTestTodo("Done late", models.StatusCompleted, models.PriorityMedium)
	suite.db.Model(done).Update("due_date", yesterday)

	w := suite.request(http.MethodGet, "/api/todos/overdue", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	todos, ok := resp["todos"].([]any)
	suite.Require().True(ok)
	suite.Require().Len(todos, 1)

	first, ok := todos[0].(map[string]any)
	suite.Require().True(ok)
	assert.Equal(suite.T(), "Late", first["title"])
	assert.Equal(suite.T(), true, first["is_overdue"])
}

func (suite *TodoHandlerTestSuite) TestListHighPriority() {
	suite.createTestTodo("Low", models.StatusPending, models.PriorityLow)
	suite.createTestTodo("High", models.StatusPending, models.PriorityHigh)
	suite.createTestTodo("Urgent", models.StatusPending, models.PriorityUrgent)

	w := suite.request(http.MethodGet, "/api/todos/high_priority", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	todos, ok := resp["todos"].([]any)
	suite.Require().True(ok)
	assert.Len(suite.T(), todos, 2)
}

func (suite *TodoHandlerTestSuite) TestUpdateStatusStampsCompletedAt() {
	todo := suite.createTestTodo("Finish report", models.StatusPending, models.PriorityMedium)

	w := suite.request(http.MethodPatch, fmt.Sprintf("/api/todos/%d/update_status", todo.ID), gin.H{"status": "completed"})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	assert.Equal(suite.T(), "completed", resp["status"])
	assert.NotNil(suite.T(), resp["completed_at"])

	// Leaving completed clears the stamp
	w = suite.request(http.MethodPatch, fmt.Sprintf("/api/todos/%d/update_status", todo.ID), gin.H{"status": "pending"})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp = suite.decode(w)
	assert.Equal(suite.T(), "pending", resp["status"])
	assert.Nil(suite.T(), resp["completed_at"])
}

func (suite *TodoHandlerTestSuite) TestUpdateStatusRejectsUnknownValue() {
	todo := suite.createTestTodo("Finish report", models.StatusPending, models.PriorityMedium)

	w := suite.request(http.MethodPatch, fmt.Sprintf("/api/todos/%d/update_status", todo.ID), gin.H{"status": "done"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestMarkCompletedIsIdempotent() {
	todo := suite.createTestTodo("Water plants", models.StatusPending, models.PriorityLow)

	w := suite.request(http.MethodPost, fmt.Sprintf("/api/todos/%d/mark_completed", todo.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	first := suite.decode(w)["completed_at"]
	suite.Require().NotNil(first)

	w = suite.request(http.MethodPost, fmt.Sprintf("/api/todos/%d/mark_completed", todo.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), first, suite.decode(w)["completed_at"])
}

func (suite *TodoHandlerTestSuite) TestPartialUpdateLeavesAbsentFields() {
	todo := suite.createTestTodo("Original", models.StatusPending, models.PriorityHigh)

	w := suite.request(http.MethodPatch, fmt.Sprintf("/api/todos/%d", todo.ID), gin.H{"title": "Renamed"})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	assert.Equal(suite.T(), "Renamed", resp["title"])
	assert.Equal(suite.T(), "high", resp["priority"])
	assert.Equal(suite.T(), "pending", resp["status"])
}

func (suite *TodoHandlerTestSuite) TestPartialUpdateClearsDueDateWithNull() {
	todo := suite.createTestTodo("Dated", models.StatusPending, models.PriorityMedium)
	suite.db.Model(todo).Update("due_date", time.Now().Add(48*time.Hour))

	w := suite.request(http.MethodPatch, fmt.Sprintf("/api/todos/%d", todo.ID), gin.H{"due_date": nil})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	assert.Nil(suite.T(), resp["due_date"])
	assert.Nil(suite.T(), resp["days_until_due"])
}

func (suite *TodoHandlerTestSuite) TestDeleteTodo() {
	todo := suite.createTestTodo("Ephemeral", models.StatusPending, models.PriorityMedium)

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/todos/%d", todo.ID), nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/todos/%d", todo.ID), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TodoHandlerTestSuite) TestStats() {
	suite.createTestTodo("A", models.StatusPending, models.PriorityHigh)
	suite.createTestTodo("B", models.StatusCompleted, models.PriorityMedium)
	suite.createTestTodo("C", models.StatusInProgress, models.PriorityMedium)
	suite.createTestTodo("D", models.StatusCancelled, models.PriorityLow)

	w := suite.request(http.MethodGet, "/api/todos/stats", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	assert.Equal(suite.T(), float64(4), resp["total_tasks"])
	assert.Equal(suite.T(), float64(1), resp["pending_tasks"])
	assert.Equal(suite.T(), float64(1), resp["in_progress_tasks"])
	assert.Equal(suite.T(), float64(1), resp["completed_tasks"])
	assert.Equal(suite.T(), float64(1), resp["cancelled_tasks"])
	assert.Equal(suite.T(), float64(0), resp["overdue_tasks"])
	assert.Equal(suite.T(), 25.0, resp["completion_rate"])

	byPriority, ok := resp["tasks_by_priority"].(map[string]any)
	suite.Require().True(ok)
	assert.Equal(suite.T(), float64(1), byPriority["high"])
	assert.Equal(suite.T(), float64(2), byPriority["medium"])

	byCategory, ok := resp["tasks_by_category"].(map[string]any)
	suite.Require().True(ok)
	assert.Equal(suite.T(), float64(4), byCategory["uncategorized"])
}

func (suite *TodoHandlerTestSuite) TestStatsEmptySet() {
	w := suite.request(http.MethodGet, "/api/todos/stats", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp := suite.decode(w)
	assert.Equal(suite.T(), float64(0), resp["total_tasks"])
	assert.Equal(suite.T(), float64(0), resp["completion_rate"])
}

// TestTodoHandlerTestSuite runs the test suite
func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}

package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecotrash/todo-backend/internal/config"
	"github.com/ecotrash/todo-backend/internal/database"
	"github.com/ecotrash/todo-backend/internal/handlers"
	"github.com/ecotrash/todo-backend/internal/middleware"
	"github.com/ecotrash/todo-backend/internal/repository"
	"github.com/ecotrash/todo-backend/internal/services"
	"github.com/ecotrash/todo-backend/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Attachment file storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Wire repositories and services
	db := database.GetDB()
	todoRepo := repository.NewTodoRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	todoService := services.NewTodoService(todoRepo, categoryRepo, userRepo, attachmentRepo, fileStorage)
	categoryService := services.NewCategoryService(categoryRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, todoRepo, fileStorage)
	userService := services.NewUserService(userRepo, fileStorage)

	todoHandler := handlers.NewTodoHandler(todoService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Todo backend is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		todos := api.Group("/todos")
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.GET("/stats", todoHandler.Stats)
			todos.GET("/overdue", todoHandler.ListOverdue)
			todos.GET("/high_priority", todoHandler.ListHighPriority)
			todos.GET("/:id", todoHandler.GetTodo)
			todos.PUT("/:id", todoHandler.UpdateTodo)
			todos.PATCH("/:id", todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
			todos.PATCH("/:id/update_status", todoHandler.UpdateStatus)
			todos.POST("/:id/mark_completed", todoHandler.MarkCompleted)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.PATCH("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		attachments := api.Group("/attachments")
		{
			attachments.GET("", attachmentHandler.ListAttachments)
			attachments.POST("", attachmentHandler.UploadAttachment)
			attachments.GET("/:id", attachmentHandler.GetAttachment)
			attachments.GET("/:id/download", attachmentHandler.DownloadAttachment)
			attachments.DELETE("/:id", attachmentHandler.DeleteAttachment)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Start server
	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

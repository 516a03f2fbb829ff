package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/handlers"
	"github.com/taskflow/taskflow-api/internal/logger"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	zlog := logger.Get()
	defer zlog.Sync()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)
	statusRepo := repository.NewTaskStatusRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, cfg.BcryptCost)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)
	tagService := services.NewTagService(tagRepo)
	statusService := services.NewTaskStatusService(statusRepo)
	auditService := services.NewAuditService(auditRepo, zlog, cfg.AuditQueueSize)
	defer auditService.Close()
	adminService := services.NewAdminService(adminRepo, cfg.BcryptCost)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	projectHandler := handlers.NewProjectHandler(projectService, auditService)
	taskHandler := handlers.NewTaskHandler(taskService, auditService)
	tagHandler := handlers.NewTagHandler(tagService)
	statusHandler := handlers.NewTaskStatusHandler(statusService)
	adminHandler := handlers.NewAdminHandler(adminService, auditService)

	// Daily audit retention prune
	retention := time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		pruned, err := auditService.PruneOlderThan(retention)
		if err != nil {
			zlog.Error("audit prune failed", zap.Error(err))
			return
		}
		zlog.Info("audit prune finished", zap.Int64("pruned", pruned))
	}); err != nil {
		log.Fatalf("Failed to schedule audit prune: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			projects := authed.Group("/projects")
			{
				projects.GET("", projectHandler.ListProjects)
				projects.POST("", projectHandler.CreateProject)
				projects.GET("/:id", projectHandler.GetProject)
				projects.PUT("/:id", projectHandler.UpdateProject)
				projects.DELETE("/:id", projectHandler.DeleteProject)
				projects.GET("/:id/users", projectHandler.GetProjectUsers)
				projects.POST("/:id/users", projectHandler.AddProjectUsers)
				projects.DELETE("/:id/users/:userId", projectHandler.RemoveProjectUser)
				projects.GET("/:id/tasks", projectHandler.GetProjectTasks)
			}

			tasks := authed.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", taskHandler.CreateTask)
				tasks.GET("/:id", taskHandler.GetTask)
				tasks.PUT("/:id", taskHandler.UpdateTask)
				tasks.DELETE("/:id", taskHandler.DeleteTask)
				tasks.POST("/:id/archive", taskHandler.ArchiveTask)
				tasks.GET("/:id/users", taskHandler.GetTaskUsers)
				tasks.POST("/:id/users", taskHandler.AddTaskUsers)
				tasks.DELETE("/:id/users/:userId", taskHandler.RemoveTaskUser)
				tasks.GET("/:id/tags", taskHandler.GetTaskTags)
				tasks.POST("/:id/tags", taskHandler.AddTaskTags)
				tasks.DELETE("/:id/tags/:tagId", taskHandler.RemoveTaskTag)
			}

			curator := middleware.RequireRole(models.RoleManager, models.RoleAdmin)

			tags := authed.Group("/tags")
			{
				tags.GET("", tagHandler.ListTags)
				tags.GET("/:id", tagHandler.GetTag)
				tags.POST("", curator, tagHandler.CreateTag)
				tags.PUT("/:id", curator, tagHandler.UpdateTag)
				tags.DELETE("/:id", curator, tagHandler.DeleteTag)
			}

			statuses := authed.Group("/task-statuses")
			{
				statuses.GET("", statusHandler.ListStatuses)
				statuses.GET("/:id", statusHandler.GetStatus)
				statuses.POST("", curator, statusHandler.CreateStatus)
				statuses.PUT("/:id", curator, statusHandler.UpdateStatus)
				statuses.DELETE("/:id", curator, statusHandler.DeleteStatus)
			}

			profile := authed.Group("/user")
			{
				profile.GET("/profile", userHandler.GetProfile)
				profile.PUT("/profile", userHandler.UpdateProfile)
				profile.PUT("/avatar", userHandler.UpdateAvatar)
				profile.GET("/projects", userHandler.GetMyProjects)
				profile.GET("/tasks", userHandler.GetMyTasks)
			}

			adminOnly := middleware.RequireRole(models.RoleAdmin)

			users := authed.Group("/users")
			users.Use(adminOnly)
			{
				users.GET("", userHandler.ListUsers)
				users.POST("", userHandler.CreateUser)
				users.GET("/:id", userHandler.GetUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}

			admin := authed.Group("/admin")
			admin.Use(adminOnly)
			{
				admin.POST("/reset-db", adminHandler.ResetDatabase)
				admin.GET("/stats", adminHandler.Stats)
				admin.GET("/activity", adminHandler.RecentActivity)
				admin.DELETE("/activity", adminHandler.ClearActivity)
			}
		}
	}

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

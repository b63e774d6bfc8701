package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhub/task-system/internal/api/handler"
	"github.com/taskhub/task-system/internal/api/middleware"
	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
	"github.com/taskhub/task-system/internal/core/service"
	mongodb "github.com/taskhub/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-system/internal/infrastructure/db/redis"
	healthhandlers "github.com/taskhub/task-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	tokens := service.NewTokenIssuer(jwtSecret, 24*time.Hour)
	limiter := redisdb.NewLoginLimiter(rdb)

	authService := service.NewAuthService(userRepo, tokens, limiter, audit, log)
	taskService := service.NewTaskService(taskRepo, audit, log)
	adminService := service.NewAdminService(userRepo, taskRepo, auditRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(adminService)

	authRequired := middleware.Auth(tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	ownerRequired := middleware.Owner(taskRepo)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Task routes (owner-scoped) ---
	tasks := e.Group("/tasks", authRequired)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.PUT("/:id", taskHandler.Update, ownerRequired)
	tasks.DELETE("/:id", taskHandler.Delete, ownerRequired)

	// --- Admin routes (role-gated, ownership bypassed) ---
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/tasks", adminHandler.ListTasks)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.DELETE("/tasks/:id", adminHandler.DeleteTask)
	admin.GET("/audit", adminHandler.Audit)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamops/teamops-api/internal/api/handler"
	"github.com/teamops/teamops-api/internal/api/middleware"
	"github.com/teamops/teamops-api/internal/core/service"
	"github.com/teamops/teamops-api/internal/core/token"
	mongodb "github.com/teamops/teamops-api/internal/infrastructure/db/mongo"
	redisdb "github.com/teamops/teamops-api/internal/infrastructure/db/redis"
	"github.com/teamops/teamops-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Route classes: /auth/*, /health*, and /metrics are public; everything
// under /api requires a verified identity. Unregistered paths fall through
// to Echo's 404 — nothing is reachable without being declared here.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("teamops"))

	// --- Dependencies ---
	codec := token.NewCodec([]byte(cfg.JWT.Secret), cfg.TokenTTL())

	accountRepo := mongodb.NewAccountRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	projectCache := redisdb.NewProjectCache(rdb, cfg.Redis.CacheTTL)

	authService := service.NewAuthService(accountRepo, codec)
	projectService := service.NewProjectService(projectRepo, taskRepo, projectCache, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated routes ---
	apiGroup := e.Group("/api", middleware.ResolveIdentity(codec), middleware.RequireAuth())
	apiGroup.GET("/me", authHandler.Me)

	apiGroup.GET("/projects", projectHandler.List)
	apiGroup.POST("/projects", projectHandler.Create)
	apiGroup.GET("/projects/:projectId", projectHandler.Get)
	apiGroup.PATCH("/projects/:projectId", projectHandler.Update)
	apiGroup.DELETE("/projects/:projectId", projectHandler.Delete)

	apiGroup.GET("/projects/:projectId/tasks", taskHandler.List)
	apiGroup.POST("/projects/:projectId/tasks", taskHandler.Create)
	apiGroup.GET("/projects/:projectId/tasks/:taskId", taskHandler.Get)
	apiGroup.PATCH("/projects/:projectId/tasks/:taskId", taskHandler.Update)
	apiGroup.DELETE("/projects/:projectId/tasks/:taskId", taskHandler.Delete)

	// ADMIN is modeled (middleware.RequireRoles) but no route grants admins
	// cross-owner access yet; see DESIGN.md.

	return e
}

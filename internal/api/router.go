package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bonehealth/analysis-system/internal/api/handler"
	"github.com/bonehealth/analysis-system/internal/api/middleware"
	"github.com/bonehealth/analysis-system/internal/core/domain"
	"github.com/bonehealth/analysis-system/internal/core/ports"
	"github.com/bonehealth/analysis-system/internal/core/service"
	mongodb "github.com/bonehealth/analysis-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bonehealth/analysis-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, model ports.ModelClient, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bonehealth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	analysisRepo := mongodb.NewAnalysisRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	sessionService := service.NewSessionService(model, analysisRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessionService, sessionStore)
	sessionHandler := handler.NewSessionHandler(sessionService, sessionStore, analysisRepo)
	taskHandler := handler.NewTaskHandler()

	authMiddleware := middleware.Auth(jwtSecret)
	doctorOnly := middleware.RBAC(string(domain.RoleDoctor))

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/tasks", taskHandler.List)
	v1.POST("/session/task", sessionHandler.SelectTask)
	v1.POST("/session/analyze", sessionHandler.Analyze)
	v1.POST("/session/chat", sessionHandler.Chat)
	v1.GET("/session/history", sessionHandler.History)
	v1.GET("/session/analyses", sessionHandler.Analyses)
	v1.GET("/session/context", sessionHandler.Context, doctorOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

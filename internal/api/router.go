package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/assettracker/admin-console/internal/api/handler"
	"github.com/assettracker/admin-console/internal/api/middleware"
	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/service"
	"github.com/assettracker/admin-console/internal/infrastructure/config"
	mongodb "github.com/assettracker/admin-console/internal/infrastructure/db/mongo"
	redisdb "github.com/assettracker/admin-console/internal/infrastructure/db/redis"
	"github.com/assettracker/admin-console/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered, plus the
// audit dispatcher the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("admin_console"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	gate := service.NewGate()
	authService := service.NewAuthService(userRepo, roleRepo, log)
	sessionService := service.NewSessionService(sessionStore, cfg.Session.TTL, log)
	auditService := service.NewAuditService(auditRepo, gate, log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
	userService := service.NewUserAdminService(userRepo, roleRepo, gate, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService, sessionService, userRepo, dispatcher, cfg.Session.CookieName, cfg.Session.TTL)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)

	sessionRequired := middleware.Session(sessionService, cfg.Session.CookieName)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/dashboard", authHandler.Dashboard, sessionRequired)

	// --- User administration ---
	users := e.Group("/v1/users", sessionRequired)
	users.GET("", userHandler.List, middleware.RBAC(gate, domain.PermUsersRead))
	users.POST("", userHandler.Create, middleware.RBAC(gate, domain.PermUsersWrite))
	users.PUT("/:id", userHandler.Update, middleware.RBAC(gate, domain.PermUsersWrite))
	users.POST("/:id/deactivate", userHandler.Deactivate, middleware.RBAC(gate, domain.PermUsersWrite))
	users.POST("/:id/reactivate", userHandler.Reactivate, middleware.RBAC(gate, domain.PermUsersWrite))

	e.GET("/v1/roles", userHandler.Roles, sessionRequired, middleware.RBAC(gate, domain.PermUsersRead))
	e.GET("/v1/audit", auditHandler.List, sessionRequired, middleware.RBAC(gate, domain.PermAuditRead))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}

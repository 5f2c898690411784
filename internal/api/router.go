package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/frenchreborn/province-chat/internal/api/handler"
	"github.com/frenchreborn/province-chat/internal/api/middleware"
	"github.com/frenchreborn/province-chat/internal/core/domain"
	"github.com/frenchreborn/province-chat/internal/core/ports"
	"github.com/frenchreborn/province-chat/internal/infrastructure/http/handlers"
)

// Services bundles the use-case implementations the router wires up.
type Services struct {
	Auth       ports.AuthService
	Chat       ports.ChatService
	Moderation ports.ModerationService
	Roles      ports.RoleService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, svcs Services, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("provincechat"))
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	chatHandler := handler.NewChatHandler(svcs.Chat)
	provinceHandler := handler.NewProvinceHandler(svcs.Chat)
	moderationHandler := handler.NewModerationHandler(svcs.Moderation)
	roleHandler := handler.NewRoleHandler(svcs.Roles)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret))

	v1.GET("/provinces", provinceHandler.List)
	v1.POST("/province", provinceHandler.Choose)
	v1.GET("/provinces/stats", provinceHandler.Stats)

	v1.GET("/messages", chatHandler.List)
	v1.POST("/messages", chatHandler.Post)

	v1.POST("/moderation/mute", moderationHandler.Mute,
		middleware.Permission(svcs.Roles, domain.PermMute))
	v1.POST("/moderation/unmute", moderationHandler.Unmute,
		middleware.Permission(svcs.Roles, domain.PermUnmute))

	roles := v1.Group("/roles", middleware.Permission(svcs.Roles, domain.PermManageRoles))
	roles.POST("", roleHandler.Create)
	roles.POST("/assign", roleHandler.Assign)
	roles.GET("", roleHandler.List)

	v1.GET("/me/permissions", roleHandler.MyPermissions)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

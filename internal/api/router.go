package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/redtable/pos-system/internal/api/handler"
	"github.com/redtable/pos-system/internal/api/middleware"
	"github.com/redtable/pos-system/internal/core/ports"
	"github.com/redtable/pos-system/internal/core/service"
	"github.com/redtable/pos-system/internal/infrastructure/db/postgres"
	redisdb "github.com/redtable/pos-system/internal/infrastructure/db/redis"
	"github.com/redtable/pos-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, sqlDB *sql.DB, rdb *redis.Client, events ports.OrderEventPublisher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pos"))

	// --- Dependencies ---
	db := postgres.NewDB(sqlDB, log, cfg.Postgres.StatementTimeout)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)
	authService := service.NewAuthService(sessions, cfg.SessionSecret, cfg.SessionTTL, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	menuHandler := handler.NewMenuHandler()
	orderHandler := handler.NewOrderHandler(events)
	userHandler := handler.NewUserHandler()

	// Every route outside the allow list requires a valid session cookie.
	e.Use(middleware.Session(cfg.SessionSecret, sessions, middleware.DefaultAllowList, log))

	// --- Static assets (allow-listed, no session required) ---
	e.Static("/static", cfg.StaticDir)

	// --- Health probes and metrics (allow-listed) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(sqlDB, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API routes (session-gated, one transaction per request) ---
	apiGroup := e.Group("/api", middleware.Transaction(db, log))

	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.GET("/user/current", userHandler.Current)

	apiGroup.GET("/menu", menuHandler.GetMenu)
	apiGroup.GET("/menu/dishes", menuHandler.ListDishes)
	apiGroup.GET("/menu/categories", menuHandler.ListCategories)
	apiGroup.GET("/menu/search", menuHandler.Search)
	apiGroup.GET("/menu/dishes/:id", menuHandler.GetDish)

	apiGroup.POST("/orders", orderHandler.Create)
	apiGroup.GET("/orders/today", orderHandler.ListToday)
	apiGroup.GET("/orders/:id", orderHandler.Get)
	apiGroup.PUT("/orders/:id/status", orderHandler.UpdateStatus)

	apiGroup.GET("/stats/today", orderHandler.TodayStats)
	apiGroup.GET("/stats/categories", menuHandler.CategoryStats)
	apiGroup.GET("/stats/price-range", menuHandler.PriceRange)

	// --- Admin routes: menu management and account administration ---
	adminGroup := apiGroup.Group("", middleware.Admin())

	adminGroup.POST("/menu/dishes", menuHandler.CreateDish)
	adminGroup.PATCH("/menu/dishes/:id", menuHandler.UpdateDish)
	adminGroup.DELETE("/menu/dishes/:id", menuHandler.DeleteDish)
	adminGroup.PUT("/menu/dishes/:id/availability", menuHandler.SetAvailability)

	adminGroup.GET("/accounts", userHandler.ListAccounts)
	adminGroup.POST("/accounts", userHandler.CreateAccount)

	return e
}

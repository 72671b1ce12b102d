// Package devapi is an in-process implementation of the marketplace HTTP API
// backed by memory. It serves local development and integration tests.
//
//	@title						sachcu development API
//	@version					1.0
//	@description				In-memory emulator of the second-hand book marketplace API.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package devapi

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sachcu/marketplace-client/internal/devapi/docs"
	"github.com/sachcu/marketplace-client/internal/devapi/handler"
	"github.com/sachcu/marketplace-client/internal/devapi/middleware"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
	"github.com/sachcu/marketplace-client/internal/pkg/validate"
)

// DefaultBasePath is the prefix every API route is mounted under.
const DefaultBasePath = "/api"

// Options configures NewRouter.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// BasePath defaults to DefaultBasePath. Use "/" to mount at the root.
	BasePath string
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(st *store.Store, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	reg := prometheus.NewRegistry()
	e.Use(requestLogger(opts.Logger))
	e.Use(middleware.Metrics(reg))
	e.Use(middleware.RenderErrors())

	base := opts.BasePath
	if base == "" {
		base = DefaultBasePath
	}
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = ""
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(st, opts.JWTSecret, opts.TokenTTL)
	bookHandler := handler.NewBookHandler(st)
	categoryHandler := handler.NewCategoryHandler(st)
	postHandler := handler.NewPostHandler(st)
	userHandler := handler.NewUserHandler(st)
	imageHandler := handler.NewImageHandler(st, base)
	adminHandler := handler.NewAdminHandler(st)

	auth := middleware.Auth(opts.JWTSecret)
	optional := middleware.OptionalAuth(opts.JWTSecret)
	userOnly := middleware.RBAC(middleware.RoleUser)
	adminOnly := middleware.RBAC(middleware.RoleAdmin)

	api := e.Group(base)

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/admin/login", authHandler.AdminLogin)

	// --- Public catalogue ---
	api.GET("/books", bookHandler.List, optional)
	api.GET("/books/search", bookHandler.Search, optional)
	api.GET("/books/province/:province", bookHandler.ByProvince, optional)
	api.GET("/books/:id", bookHandler.Get, optional)
	api.GET("/categories", categoryHandler.List)
	api.GET("/posts/:id", postHandler.Get, optional)
	api.GET("/images/:name", imageHandler.Get)

	// --- User routes ---
	api.POST("/posts", postHandler.Create, auth, userOnly)
	api.GET("/my-posts", postHandler.Mine, auth, userOnly)
	api.PUT("/my-posts/:id", postHandler.Update, auth, userOnly)
	api.DELETE("/my-posts/:id", postHandler.Delete, auth, userOnly)
	api.PUT("/my-posts/:id/sold", postHandler.MarkSold, auth, userOnly)
	api.GET("/users/:id", userHandler.Get, auth, userOnly)
	api.PUT("/users/:id", userHandler.Update, auth, userOnly)
	api.POST("/users/:id/change-password", userHandler.ChangePassword, auth, userOnly)
	api.POST("/images/upload", imageHandler.Upload, auth)
	api.DELETE("/images/:name", imageHandler.Delete, auth)

	// --- Admin routes ---
	admin := api.Group("/admin", auth, adminOnly)
	admin.GET("/posts", adminHandler.Posts)
	admin.GET("/posts/status/:status", adminHandler.PostsByStatus)
	admin.PUT("/posts/:id/status", adminHandler.UpdatePostStatus)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/users/:id", adminHandler.User)
	admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/reports", adminHandler.Reports)
	admin.PUT("/reports/:id/status", adminHandler.UpdateReportStatus)
	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)

	// --- Health, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Debug()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URI).
				Int("status", v.Status).
				Dur("duration", v.Latency).
				Str("request_id", v.RequestID).
				Msg("devapi request")
			return nil
		},
	})
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanxuanju/monument-api/internal/api/handler"
	"github.com/wanxuanju/monument-api/internal/api/middleware"
	"github.com/wanxuanju/monument-api/internal/core/ports"
	"github.com/wanxuanju/monument-api/internal/infrastructure/storage"
)

// Dependencies carries everything the router needs, assembled in main.
type Dependencies struct {
	Log   zerolog.Logger
	Mongo *mongo.Database
	Redis *redis.Client

	Backend       ports.AuthBackend
	MetaRepo      ports.MetaRepository
	Store         ports.SessionActions
	Announcements ports.AnnouncementService
	Attachments   ports.AttachmentManager
	Objects       *storage.GridFSStorage

	StorageBucket string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("monument"))
	e.Use(middleware.Session(deps.Backend, deps.MetaRepo))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Store)

	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/register", authHandler.Register)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.GET("/session", authHandler.Session)

	// --- Informational content (public) ---
	contentHandler := handler.NewContentHandler()

	contentGroup := e.Group("/api/content")
	contentGroup.GET("/history", contentHandler.History)
	contentGroup.GET("/directors", contentHandler.Directors)
	contentGroup.GET("/features", contentHandler.Features)
	contentGroup.GET("/public-affairs", contentHandler.PublicAffairs)

	// --- Announcements: public reads, admin writes ---
	announcementHandler := handler.NewAnnouncementHandler(deps.Announcements)
	attachmentHandler := handler.NewAttachmentHandler(deps.Attachments)
	admin := middleware.RequireAdmin()

	e.GET("/api/announcements", announcementHandler.List)
	e.GET("/api/announcements/:id", announcementHandler.Get)
	e.GET("/api/announcements/:id/attachments", attachmentHandler.List)

	e.POST("/api/announcements", announcementHandler.Create, admin)
	e.PUT("/api/announcements/:id", announcementHandler.Update, admin)
	e.DELETE("/api/announcements/:id", announcementHandler.Delete, admin)

	e.POST("/api/announcements/:id/attachments", attachmentHandler.Upload, admin)
	e.DELETE("/api/attachments/:id", attachmentHandler.Delete, admin)
	e.GET("/api/attachments/signed-url", attachmentHandler.SignedURL, admin)

	// --- Stored objects ---
	objectHandler := handler.NewObjectHandler(deps.Objects, deps.StorageBucket)

	e.GET("/storage/v1/object/public/:bucket/*", objectHandler.Public)
	e.GET("/storage/v1/object/sign/:bucket/*", objectHandler.Signed)

	// --- Admin pages, behind the navigation guard ---
	pageHandler := handler.NewPageHandler()

	pages := e.Group("/admin", middleware.PageGuard())
	pages.GET("", pageHandler.AdminShell)
	pages.GET("/*", pageHandler.AdminShell)

	return e
}

// Package server contains the HTTP handlers and route table of the API.
package server

import (
	"context"
	"errors"
	"time"

	"soupbox/internal/bootstrap"
	"soupbox/internal/config"
	"soupbox/internal/featureflags"
	"soupbox/internal/middleware"
	"soupbox/internal/models"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager
	soups          SoupService
	comments       CommentService
	users          UserService
	now            func() time.Time
}

// NewServer creates a server over an initialized runtime.
func NewServer(rt *bootstrap.Runtime) *Server {
	return &Server{
		config:         rt.Config,
		db:             rt.DB,
		redis:          rt.Redis,
		promMiddleware: middleware.InitMetrics("soupbox-api"),
		featureFlags:   rt.Flags,
		soups:          rt.Soups,
		comments:       rt.Comments,
		users:          rt.Users,
		now:            time.Now,
	}
}

// NewApp builds the fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Soupbox API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler reports errors that escaped the handlers. Route misses and
// other fiber errors keep their status; everything else is a generic 500.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Tracing before the context middleware so trace_id reaches the logs.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so error responses still carry CORS headers.
	origins := ""
	if s.config != nil {
		origins = s.config.AllowedOrigins
	}
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	secret := s.jwtSecret()
	authRequired := middleware.AuthRequired(secret)
	optionalAuth := middleware.OptionalAuth(secret)

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/feature-flags", optionalAuth, s.GetFeatureFlags)

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	users := api.Group("/users")
	// /me routes before the generic /:id routes
	users.Get("/me", authRequired, s.GetMyProfile)
	users.Get("/me/star-soups", authRequired, s.GetMyStarSoups)
	users.Get("/me/star-comments", authRequired, s.GetMyStarComments)
	users.Get("/:id/star-soups", s.GetUserStarSoups)
	users.Get("/:id/star-comments", s.GetUserStarComments)
	users.Get("/:id", s.GetUserProfile)

	soups := api.Group("/soups")
	soups.Get("/", optionalAuth, s.ListSoups)
	soups.Post("/", authRequired,
		middleware.RateLimit(s.redis, 10, time.Minute, "create_soup"), s.CreateSoup)
	// specific /:id/:resource routes before the generic /:id routes
	soups.Get("/:id/star", optionalAuth, s.GetSoupStar)
	soups.Post("/:id/star/toggle", authRequired, s.ToggleSoupStar)
	soups.Post("/:id/star", authRequired, s.StarSoup)
	soups.Delete("/:id/star", authRequired, s.UnStarSoup)
	soups.Get("/:id/comments/count", s.GetSoupCommentsCount)
	soups.Get("/:id/comments", s.GetSoupComments)
	soups.Post("/:id/comments", authRequired,
		middleware.RateLimit(s.redis, 5, time.Minute, "create_comment"), s.CreateSoupComment)
	soups.Get("/:id", s.GetSoup)
	soups.Put("/:id", authRequired, s.UpdateSoup)
	soups.Delete("/:id", authRequired, s.DeleteSoup)

	comments := api.Group("/comments")
	comments.Get("/:id/star", optionalAuth, s.GetCommentStar)
	comments.Post("/:id/star/toggle", authRequired, s.ToggleCommentStar)
	comments.Post("/:id/star", authRequired, s.StarComment)
	comments.Delete("/:id/star", authRequired, s.UnStarComment)
}

func (s *Server) jwtSecret() string {
	if s.config == nil {
		return ""
	}
	return s.config.JWTSecret
}

// Build creates the app that Start serves and Shutdown stops. It must run
// before Shutdown can be called from another goroutine.
func (s *Server) Build() *fiber.App {
	s.app = s.NewApp()
	return s.app
}

// Start blocks serving the app created by Build.
func (s *Server) Start() error {
	if s.app == nil {
		return errors.New("server not built")
	}
	port := "8375"
	if s.config != nil && s.config.Port != "" {
		port = s.config.Port
	}
	middleware.Logger.Info("Server starting", "port", port)
	return s.app.Listen(":" + port)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	return s.app.ShutdownWithContext(ctx)
}

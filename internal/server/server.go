package server

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/emilythestrangee/devflow/backend/internal/auth"
	"github.com/emilythestrangee/devflow/backend/internal/config"
	"github.com/emilythestrangee/devflow/backend/internal/database"
	"github.com/emilythestrangee/devflow/backend/internal/handlers"
	"github.com/emilythestrangee/devflow/backend/internal/middleware"
	"github.com/emilythestrangee/devflow/backend/internal/telemetry"
)

// HealthChecker reports the state of a backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) database.HealthReport
}

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	db      HealthChecker
	handler *handlers.Handler
	tokens  *auth.Tokens
}

// NewServer creates and configures a new server
func NewServer(cfg *config.Config, log *slog.Logger, db HealthChecker, handler *handlers.Handler, tokens *auth.Tokens) *http.Server {
	newServer := &Server{
		cfg:     cfg,
		log:     log,
		db:      db,
		handler: handler,
		tokens:  tokens,
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	// credentials cannot be combined with a wildcard origin
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(s.log),
		middleware.Metrics(),
		otelgin.Middleware(telemetry.ServiceName),
		cors.New(corsConfig(s.cfg.CORSOrigins)),
	)

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(s.tokens))
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// OAuth routes
		api.POST("/auth/google", s.handler.Auth.GoogleLogin)
		api.POST("/auth/github", s.handler.Auth.GitHubLogin)

		// Question routes (public reads)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)
		api.GET("/questions/:id/answers", s.handler.Answer.GetAnswers)

		// Tag routes
		api.GET("/tags", s.handler.Tag.GetTags)
		api.GET("/tags/:name/questions", s.handler.Tag.GetTagQuestions)
		api.POST("/drafts/tags", s.handler.Draft.EditTags)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.tokens))
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)
			protected.POST("/questions/:id/vote", s.handler.Vote.VoteQuestion)
			protected.POST("/questions/:id/collection", s.handler.Collection.ToggleSave)
			protected.GET("/collections", s.handler.Collection.GetCollection)

			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.DELETE("/answers/:id", s.handler.Answer.DeleteAnswer)
			protected.POST("/answers/:id/vote", s.handler.Vote.VoteAnswer)

			protected.POST("/interactions", s.handler.Interaction.RecordInteraction)
			protected.GET("/me/interactions", s.handler.Interaction.GetMyInteractions)
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	db := s.db.Health(c.Request.Context())
	status, code := database.StatusUp, http.StatusOK
	if !db.Up() {
		status, code = database.StatusDown, http.StatusServiceUnavailable
		s.log.WarnContext(c.Request.Context(), "health check failed", "error", db.Error)
	}
	c.JSON(code, gin.H{
		"status":   status,
		"service":  telemetry.ServiceName,
		"database": db,
	})
}

package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/responder/core/docs"
	httpHandlers "github.com/responder/core/internal/adapters/http"
	"github.com/responder/core/internal/adapters/repository"
	"github.com/responder/core/internal/application/services"
	"github.com/responder/core/internal/infrastructure/config"
	"github.com/responder/core/internal/infrastructure/database"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/infrastructure/metrics"
	"github.com/responder/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	metrics *metrics.Metrics

	questionService ports.QuestionService
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. db is nil unless the postgres storage driver is in use.
func New(cfg *config.Config, storage ports.QuestionStorage, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}

	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	questionRepo := repository.NewQuestionRepository(storage)
	questionService := services.NewQuestionService(questionRepo, storage, appLogger, m)
	questionHandler := httpHandlers.NewQuestionHandler(questionService, appLogger)

	server := &Server{
		echo:            e,
		config:          cfg,
		logger:          appLogger,
		db:              db,
		metrics:         m,
		questionService: questionService,
	}

	server.setupMiddleware()

	if m != nil {
		server.setupMetrics()
	}

	server.setupRoutes(questionHandler)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(questionHandler *httpHandlers.QuestionHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	s.echo.GET("/", questionHandler.Welcome)

	questions := s.echo.Group("/questions")
	questions.GET("", questionHandler.ListQuestions)
	questions.POST("", questionHandler.CreateQuestion)
	questions.GET("/:questionId", questionHandler.GetQuestion)
	questions.GET("/:questionId/answers", questionHandler.GetAnswers)
	questions.POST("/:questionId/answers", questionHandler.CreateAnswer)
	questions.GET("/:questionId/answers/:answerId", questionHandler.GetAnswer)
}

// setupMetrics exposes the Prometheus registry
func (s *Server) setupMetrics() {
	s.echo.Use(metricsMiddleware(s.metrics))

	metricsHandler := promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	status := "ok"
	checks := make(map[string]interface{})

	storeStatus, err := s.questionService.StoreStatus(ctx)
	if err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status":    "ok",
			"backend":   storeStatus.Backend,
			"questions": storeStatus.Questions,
		}
	}

	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			status = "error"
			checks["database"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status": "ok",
				"stats":  s.db.GetConnectionInfo(),
			}
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if _, err := s.questionService.StoreStatus(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

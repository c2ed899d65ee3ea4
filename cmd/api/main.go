package main

import (
	"context"
	stdErrors "errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/meeting-minute/backend/internal/adapter/handler"
	"github.com/meeting-minute/backend/internal/usecase/summarize"
	"github.com/meeting-minute/backend/pkg/ai"
	"github.com/meeting-minute/backend/pkg/config"
	pkgvalidator "github.com/meeting-minute/backend/pkg/validator"
)

// @title           Meeting Minute API
// @version         1.0
// @description     Transcribes meeting recordings and generates summaries and per-participant action items via watsonx.ai

func main() {
	// Load configuration; a missing required variable aborts startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.Origins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Uncaught errors are logged in full server side and masked for clients.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var httpErr *echo.HTTPError
		if stdErrors.As(err, &httpErr) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		logger.Error("unhandled error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "An internal server error occurred",
		})
	}

	// Provider clients: configuration-bound, injected into the pipeline.
	logger.Info("initializing provider clients")
	speechClient := ai.NewSpeechClient(&cfg.Speech)
	iamClient := ai.NewIAMClient(&cfg.WatsonX, logger)
	watsonxClient := ai.NewWatsonXClient(&cfg.WatsonX, cfg.Generation, logger)

	pipeline := summarize.NewService(speechClient, iamClient, watsonxClient, cfg.Generation.Concurrency, logger)

	summarizeController := handler.NewSummarizeController(pipeline, logger)
	itemsController := handler.NewItemsController()

	router := handler.NewRouter(cfg, summarizeController, itemsController)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.Server.Addr()
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}

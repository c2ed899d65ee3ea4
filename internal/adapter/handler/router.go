package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meeting-minute/backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg        *config.Config
	summarizer *SummarizeController
	items      *ItemsController
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, summarizer *SummarizeController, items *ItemsController) *Router {
	return &Router{
		cfg:        cfg,
		summarizer: summarizer,
		items:      items,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.welcome)
	e.GET("/health", rt.healthCheck)

	api := e.Group("/api")
	api.POST("/summarize", rt.summarizer.Summarize)
	api.POST("/emails", rt.summarizer.DraftEmails)

	rt.setupItemRoutes(api.Group("/v1"))
}

// setupItemRoutes configures the static items demo routes
func (rt *Router) setupItemRoutes(g *echo.Group) {
	itemsGroup := g.Group("/items")
	itemsGroup.GET("", rt.items.List)
	itemsGroup.GET("/:id", rt.items.Get)
	itemsGroup.POST("", rt.items.Create)
	itemsGroup.PUT("/:id", rt.items.Update)
}

// welcome returns the service banner
func (rt *Router) welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to Meeting Minute API",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

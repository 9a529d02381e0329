// Package http wires the Gin engine, middleware and handlers.
package http

import (
	"github.com/gin-gonic/gin"

	"razones/internal/infrastructure/config"
	"razones/internal/interfaces/http/handlers"
	"razones/internal/interfaces/http/middleware"
	"razones/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine             *gin.Engine
	pageHandler        *handlers.PageHandler
	razonesHandler     *handlers.RazonesHandler
	ordenesPagoHandler *handlers.OrdenesPagoHandler
	runHandler         *handlers.RunHandler
	healthHandler      *handlers.HealthHandler
	logger             logger.Interface
}

// NewRouter creates a new Router with the given handlers
func NewRouter(
	pageHandler *handlers.PageHandler,
	razonesHandler *handlers.RazonesHandler,
	ordenesPagoHandler *handlers.OrdenesPagoHandler,
	runHandler *handlers.RunHandler,
	healthHandler *handlers.HealthHandler,
	log logger.Interface,
) *Router {
	return &Router{
		engine:             gin.New(),
		pageHandler:        pageHandler,
		razonesHandler:     razonesHandler,
		ordenesPagoHandler: ordenesPagoHandler,
		runHandler:         runHandler,
		healthHandler:      healthHandler,
		logger:             log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.MaxMultipartMemory = int64(cfg.Generation.MaxUploadMB) << 20

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.ErrorHandler())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.LoadHTMLGlob("web/templates/*.html")

	r.engine.GET("/health", r.healthHandler.Check)
	r.engine.GET("/", r.pageHandler.Index)
	r.engine.GET("/ordenes-pago", r.pageHandler.OrdenesPago)

	api := r.engine.Group("/api")
	{
		api.POST("/generar-razones", r.razonesHandler.Generate)
		api.POST("/procesar-ordenes-pago", r.ordenesPagoHandler.Process)
		api.GET("/runs", r.runHandler.List)
	}
}

// GetEngine returns the underlying Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

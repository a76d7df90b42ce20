package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tiendascan/pkg/config"
	"tiendascan/pkg/handlers"
	"tiendascan/pkg/logger"
	"tiendascan/pkg/middleware"
)

// Server constants
const (
	DefaultReadTimeout = 30 * time.Second
	DefaultIdleTimeout = 120 * time.Second
)

// HTTPServer represents the HTTP server component
type HTTPServer struct {
	server     *http.Server
	engine     *gin.Engine
	cfg        *config.Config
	handlerSvc *handlers.HandlerService
}

// NewHTTPServer creates a new HTTP server instance
func NewHTTPServer(cfg *config.Config, handlerSvc *handlers.HandlerService) *HTTPServer {
	if !cfg.App.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.GinZapLogger())
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	s := &HTTPServer{
		engine:     engine,
		cfg:        cfg,
		handlerSvc: handlerSvc,
	}
	s.setupRoutes()

	// The write timeout would cut the SSE stream, so the outer server
	// leaves it to the handlers that actually need one
	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	s.server = &http.Server{
		Addr:        addr,
		Handler:     engine,
		ReadTimeout: DefaultReadTimeout,
		IdleTimeout: DefaultIdleTimeout,
	}

	logger.Info("HTTP server initialized", zap.String("listen_addr", addr))
	return s
}

// setupRoutes configures all HTTP routes
func (s *HTTPServer) setupRoutes() {
	h := s.handlerSvc
	guard := middleware.RequireAPIToken(s.cfg.Server.APIToken)

	s.engine.GET("/health", h.HealthCheck)
	s.engine.GET("/buscar_producto", h.SearchProduct)
	s.engine.GET("/stream", h.Stream)
	s.engine.GET("/alertas/recientes", h.RecentAlerts)

	// Branches
	s.engine.GET("/sucursales", h.ListBranches)
	s.engine.GET("/sucursales/:sucursal_id", h.GetBranch)
	s.engine.POST("/sucursales", guard, h.CreateBranches)
	s.engine.PUT("/sucursales/:sucursal_id", guard, h.UpdateBranch)
	s.engine.DELETE("/sucursales/:sucursal_id", guard, h.DeleteBranch)

	// Products
	s.engine.GET("/productos", h.ListProducts)
	s.engine.GET("/productos/:producto_id", h.GetProduct)
	s.engine.POST("/productos", guard, h.CreateProducts)
	s.engine.PUT("/productos/:producto_id", guard, h.UpdateProduct)
	s.engine.DELETE("/productos/:producto_id", guard, h.DeleteProduct)

	// Stock
	s.engine.GET("/stock", h.ListStock)
	s.engine.POST("/stock/bulk", guard, h.BulkLoadStock)
	s.engine.GET("/sucursales/:sucursal_id/productos/:producto_id/stock", h.GetStock)
	s.engine.POST("/sucursales/:sucursal_id/productos/:producto_id/stock", guard, h.CreateStock)
	s.engine.PUT("/sucursales/:sucursal_id/productos/:producto_id/stock", guard, h.UpdateStock)
	s.engine.DELETE("/sucursales/:sucursal_id/productos/:producto_id/stock", guard, h.DeleteStock)

	// Sales
	s.engine.GET("/ventas", h.ListSales)
	s.engine.GET("/ventas/:venta_id", h.GetSale)
	s.engine.POST("/ventas", h.RegisterSale)
	s.engine.DELETE("/ventas/:venta_id", guard, h.DeleteSale)

	// Admin
	s.engine.GET("/admin/log_level", h.GetLogLevel)
	s.engine.PUT("/admin/log_level", guard, h.UpdateLogLevel)

	logger.Info("HTTP routes configured")
}

// Engine exposes the router. Used by tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	return nil
}

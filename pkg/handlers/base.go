package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tiendascan/pkg/alerts"
	"tiendascan/pkg/config"
	"tiendascan/pkg/store"
)

// HandlerService provides HTTP handlers for the API
type HandlerService struct {
	store Store
	hub   *alerts.Hub
	cfg   *config.Config
}

// NewHandlerService creates a new handler service
func NewHandlerService(st Store, hub *alerts.Hub, cfg *config.Config) *HandlerService {
	return &HandlerService{
		store: st,
		hub:   hub,
		cfg:   cfg,
	}
}

// uintParam parses a numeric path parameter
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro inválido: " + name})
		return 0, false
	}
	return uint(value), true
}

// notFoundStatus maps store sentinel errors to HTTP status codes
func notFoundStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrBranchNotFound),
		errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrStockNotFound),
		errors.Is(err, store.ErrSaleNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrStockExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// storeError writes an error response with the mapped status
func storeError(c *gin.Context, err error) {
	status := notFoundStatus(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
		c.JSON(status, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

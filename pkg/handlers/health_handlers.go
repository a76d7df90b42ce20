package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tiendascan/pkg/logger"
)

// HealthCheck handles GET /health. Reports the database connection and the
// number of connected alert subscribers.
func (h *HandlerService) HealthCheck(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"service":   "tiendascan",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": gin.H{
			"database": h.checkDatabaseHealth(),
			"alerts": gin.H{
				"status":      "healthy",
				"subscribers": h.hub.SubscriberCount(),
			},
		},
	}

	if h.checkDatabaseHealth()["status"] != "healthy" {
		health["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// GetLogLevel handles GET /admin/log_level
func (h *HandlerService) GetLogLevel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"nivel": logger.GetLogLevel()})
}

// UpdateLogLevel handles PUT /admin/log_level. Changes the level of the
// running process without a restart.
func (h *HandlerService) UpdateLogLevel(c *gin.Context) {
	var payload struct {
		Level string `json:"nivel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, indica un nivel de log"})
		return
	}

	if err := logger.SetLogLevel(payload.Level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nivel de log inválido: " + payload.Level})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nivel": logger.GetLogLevel()})
}

func (h *HandlerService) checkDatabaseHealth() gin.H {
	if h.store == nil {
		return gin.H{"status": "unhealthy", "error": "store not initialized"}
	}
	if err := h.store.Ping(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}
	return gin.H{"status": "healthy"}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendascan/internal/models"
	"tiendascan/pkg/logger"
)

type branchPayload struct {
	Name    string `json:"nombre" binding:"required"`
	Address string `json:"direccion" binding:"required"`
}

// ListBranches handles GET /sucursales
func (h *HandlerService) ListBranches(c *gin.Context) {
	branches, err := h.store.ListBranches(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sucursales": branches})
}

// GetBranch handles GET /sucursales/:sucursal_id
func (h *HandlerService) GetBranch(c *gin.Context) {
	id, ok := uintParam(c, "sucursal_id")
	if !ok {
		return
	}

	branch, err := h.store.GetBranch(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sucursal": branch})
}

// CreateBranches handles POST /sucursales with a list payload
func (h *HandlerService) CreateBranches(c *gin.Context) {
	var payload []branchPayload
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, envía una lista de sucursales"})
		return
	}

	branches := make([]models.Branch, 0, len(payload))
	for _, item := range payload {
		branches = append(branches, models.Branch{Name: item.Name, Address: item.Address})
	}

	created, err := h.store.CreateBranches(c.Request.Context(), branches)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sucursales": created})
}

// UpdateBranch handles PUT /sucursales/:sucursal_id
func (h *HandlerService) UpdateBranch(c *gin.Context) {
	id, ok := uintParam(c, "sucursal_id")
	if !ok {
		return
	}

	var payload struct {
		Name    string `json:"nombre"`
		Address string `json:"direccion"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
		return
	}

	branch, err := h.store.UpdateBranch(c.Request.Context(), id, payload.Name, payload.Address)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sucursal": branch})
}

// DeleteBranch handles DELETE /sucursales/:sucursal_id
func (h *HandlerService) DeleteBranch(c *gin.Context) {
	id, ok := uintParam(c, "sucursal_id")
	if !ok {
		return
	}

	if err := h.store.DeleteBranch(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}

	logger.WithBranch(logger.FromContext(c.Request.Context()), id).Info("sucursal eliminada")
	c.JSON(http.StatusOK, gin.H{"resultado": true})
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tiendascan/pkg/catalog"
	"tiendascan/pkg/logger"
)

// SearchProduct handles GET /buscar_producto?nombre=
//
// Offers with zero stock each publish one low-stock alert to the SSE hub,
// so connected widgets hear about the shortage as soon as anyone surfaces
// it in a search.
func (h *HandlerService) SearchProduct(c *gin.Context) {
	name := c.Query("nombre")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, proporciona un nombre de producto"})
		return
	}

	ctx := logger.WithSearchID(c.Request.Context(), uuid.New().String())
	start := time.Now()

	records, err := h.store.SearchProducts(ctx, name)
	if err != nil {
		storeError(c, err)
		return
	}

	logger.FromContext(ctx).Info("product search",
		zap.String("nombre", name),
		zap.Int("resultados", len(records)),
		logger.DurationField(time.Since(start).Milliseconds()),
	)

	for _, record := range records {
		if record.StockAvailable == 0 {
			h.hub.PublishAlert(ctx, fmt.Sprintf(
				"¡El producto %s en la sucursal %s tiene stock 0!",
				record.ProductName, record.BranchName))
		}
	}

	if records == nil {
		records = []catalog.SearchRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"resultados": records})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock/:id", h.GetStock)
}

// GetStock serves the live stock level of one product.
func (h *InventoryHandler) GetStock(c *gin.Context) {
	id := c.Param("id")
	stock, err := h.uc.FetchStock(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Stock is temporarily unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.StockResponse{
		ProductID: id,
		Stock:     stock,
		InStock:   stock > 0,
	})
}

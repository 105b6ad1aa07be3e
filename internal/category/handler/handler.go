package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/response"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/resolve", h.ResolveCategory)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	counts, err := h.uc.ListBuckets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(c, "Failed to load categories"))
		return
	}
	c.JSON(http.StatusOK, response.Success(c, "Categories retrieved successfully", counts))
}

// ResolveCategory maps a deep-link slug to the bucket the storefront should select.
func (h *CategoryHandler) ResolveCategory(c *gin.Context) {
	b := h.uc.Resolve(c.Query("slug"))
	c.JSON(http.StatusOK, response.Success(c, "Category resolved", gin.H{"bucket": b}))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/product/pipeline"
	"github.com/fekuna/omnipos-storefront-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgPriceRange = "Minimum price cannot be greater than maximum price"

type ProductHandler struct {
	uc       product.UseCase
	logger   logger.ZapLogger
	pageSize int
}

func NewProductHandler(uc product.UseCase, pageSize int, log logger.ZapLogger) *ProductHandler {
	if pageSize <= 0 {
		pageSize = dto.DefaultPageSize
	}
	return &ProductHandler{
		uc:       uc,
		logger:   log,
		pageSize: pageSize,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:id", h.GetProduct)
	rg.GET("/catalog", h.Browse)
}

// ListProducts returns the whole normalized catalog as a bare array.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.uc.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("failed to get product", zap.String("product_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// Browse runs the filter/sort/paginate pipeline for one storefront page.
func (h *ProductHandler) Browse(c *gin.Context) {
	filters := dto.ProductFilters{
		SearchQuery: c.Query("search"),
		Category:    c.Query("category"),
		MinPrice:    c.Query("minPrice"),
		MaxPrice:    c.Query("maxPrice"),
		SortBy:      c.Query("sort"),
		Page:        dto.ParseInt(c.Query("page"), 1),
		PageSize:    dto.ParseInt(c.Query("limit"), h.pageSize),
	}

	q, err := filters.ToFilterQuery()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(c, msgPriceRange))
		return
	}
	page, pageSize := filters.Pagination()

	res, err := h.uc.Browse(c.Request.Context(), q, page, pageSize)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidPriceRange) {
			c.JSON(http.StatusBadRequest, response.Error(c, msgPriceRange))
			return
		}
		h.logger.Error("failed to browse catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error(c, "Failed to load products"))
		return
	}

	message := "Products retrieved successfully"
	if res.TotalCount == 0 {
		message = "No products found"
	}
	c.JSON(http.StatusOK, response.Paginated(c, message, dto.NewProductResponses(res.Visible), &response.Pagination{
		Page:       page,
		Limit:      pageSize,
		Total:      res.TotalCount,
		TotalPages: res.TotalPages,
	}))
}

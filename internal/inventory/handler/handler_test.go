package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubUseCase struct{}

func (stubUseCase) FetchStock(_ context.Context, id string) (int, error) {
	switch id {
	case "p1":
		return 4, nil
	case "p0":
		return 0, nil
	case "down":
		return 0, inventory.ErrNetwork
	default:
		return 0, inventory.ErrNotFound
	}
}

func (stubUseCase) ApplyStockChange(context.Context, *dto.StockChangeInput) error { return nil }

func TestGetStock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewInventoryHandler(stubUseCase{}, logger.NewNop()).RegisterRoutes(r.Group("/api"))

	tests := []struct {
		id     string
		status int
		body   string
	}{
		{"p1", http.StatusOK, `{"productId":"p1","stock":4,"inStock":true}`},
		{"p0", http.StatusOK, `{"productId":"p0","stock":0,"inStock":false}`},
		{"missing", http.StatusNotFound, `{"error":"Product not found"}`},
		{"down", http.StatusBadGateway, `{"error":"Stock is temporarily unavailable"}`},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stock/"+tt.id, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

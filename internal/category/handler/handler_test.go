package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	err error
}

func (s stubUseCase) ListBuckets(context.Context) ([]model.BucketCount, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.BucketCount{{Bucket: "all", Count: 2}, {Bucket: "paints", Count: 2}}, nil
}

func (s stubUseCase) Resolve(slug string) category.Bucket {
	return category.NormalizeRequested(slug)
}

func serve(uc category.UseCase, target string) (*httptest.ResponseRecorder, map[string]any) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewCategoryHandler(uc, logger.NewNop()).RegisterRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestListCategories(t *testing.T) {
	w, body := serve(stubUseCase{}, "/api/categories")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "paints", data[1].(map[string]any)["bucket"])

	w, body = serve(stubUseCase{err: errors.New("boom")}, "/api/categories")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, true, body["error"])
}

func TestResolveCategory(t *testing.T) {
	w, body := serve(stubUseCase{}, "/api/categories/resolve?slug=plumbing")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "plumbing-fixtures", body["data"].(map[string]any)["bucket"])
}

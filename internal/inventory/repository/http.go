package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"go.uber.org/zap"
)

const maxStockBody = 1 << 20

type HTTPConfig struct {
	BaseURL     string
	Timeout     time.Duration // per attempt
	MaxAttempts int
	BaseBackoff time.Duration
}

// HTTPRepository reads stock from the products API (GET /api/products/:id),
// retrying transport failures and 5xx answers with exponential backoff.
type HTTPRepository struct {
	cfg    HTTPConfig
	client *http.Client
	logger logger.ZapLogger
}

func NewHTTPRepository(cfg HTTPConfig, log logger.ZapLogger) *HTTPRepository {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPRepository{
		cfg:    cfg,
		client: &http.Client{},
		logger: log,
	}
}

// errRetryable marks a failed attempt that is worth repeating.
var errRetryable = errors.New("retryable")

func (r *HTTPRepository) FindStock(ctx context.Context, productID string) (*int, error) {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := r.wait(ctx, attempt); err != nil {
				return nil, fmt.Errorf("%w: %w", inventory.ErrNetwork, err)
			}
		}

		stock, found, err := r.fetch(ctx, productID)
		if err == nil {
			if !found {
				return nil, nil
			}
			return &stock, nil
		}
		lastErr = err
		if !errors.Is(err, errRetryable) || ctx.Err() != nil {
			break
		}
		r.logger.Warn("stock lookup attempt failed",
			zap.String("product_id", productID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return nil, fmt.Errorf("%w: %w", inventory.ErrNetwork, lastErr)
}

// wait sleeps BaseBackoff * 2^(attempt-2) or until ctx is done.
func (r *HTTPRepository) wait(ctx context.Context, attempt int) error {
	d := r.cfg.BaseBackoff << (attempt - 2)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *HTTPRepository) fetch(ctx context.Context, productID string) (int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/api/products/"+url.PathEscape(productID), nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("%w: request failed: %w", errRetryable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, false, nil
	case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
		return 0, false, fmt.Errorf("%w: status %d", errRetryable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return 0, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStockBody))
	if err != nil {
		return 0, false, fmt.Errorf("%w: failed to read response: %w", errRetryable, err)
	}
	p, err := dto.DecodeProduct(body)
	if err != nil {
		return 0, false, fmt.Errorf("failed to decode product: %w", err)
	}
	return p.StockQuantity, true, nil
}

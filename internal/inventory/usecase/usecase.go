package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"go.uber.org/zap"
)

// StockUpdater is the catalog side of a stock change. product.UseCase satisfies it.
type StockUpdater interface {
	UpdateStock(ctx context.Context, productID string, stock int) error
}

type inventoryUseCase struct {
	repo    inventory.Repository
	catalog StockUpdater
	logger  logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, catalog StockUpdater, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:    repo,
		catalog: catalog,
		logger:  log,
	}
}

// FetchStock never reports a failure as zero stock: unknown products yield
// ErrNotFound and every other failure ErrNetwork.
func (uc *inventoryUseCase) FetchStock(ctx context.Context, productID string) (int, error) {
	stock, err := uc.repo.FindStock(ctx, productID)
	if err != nil {
		uc.logger.Warn("stock lookup failed", zap.String("product_id", productID), zap.Error(err))
		if errors.Is(err, inventory.ErrNetwork) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", inventory.ErrNetwork, err)
	}
	if stock == nil {
		return 0, fmt.Errorf("stock for %q: %w", productID, inventory.ErrNotFound)
	}
	if *stock < 0 {
		return 0, nil
	}
	return *stock, nil
}

func (uc *inventoryUseCase) ApplyStockChange(ctx context.Context, input *dto.StockChangeInput) error {
	if input.ProductID == "" {
		return errors.New("stock change without product id")
	}
	if err := uc.catalog.UpdateStock(ctx, input.ProductID, input.StockQuantity); err != nil {
		return fmt.Errorf("failed to apply stock change: %w", err)
	}
	uc.logger.Info("stock updated",
		zap.String("product_id", input.ProductID),
		zap.Int("stock_quantity", input.StockQuantity),
		zap.String("source", input.Source),
	)
	return nil
}

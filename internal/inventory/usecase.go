package inventory

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
)

type UseCase interface {
	StockLookup

	// ApplyStockChange pushes a stock change from the event stream into the
	// catalog snapshot.
	ApplyStockChange(ctx context.Context, input *dto.StockChangeInput) error
}

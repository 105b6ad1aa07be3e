package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type InventoryListener struct {
	consumer   MessageReader
	uc         inventory.UseCase
	logger     logger.ZapLogger
	errBackoff time.Duration
}

func NewInventoryListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer:   consumer,
		uc:         uc,
		logger:     logger,
		errBackoff: time.Second,
	}
}

// Start consumes stock events until ctx is done.
func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping Inventory Kafka Listener")
				return
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				l.logger.Info("Stopping Inventory Kafka Listener")
				return
			case <-time.After(l.errBackoff):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event dto.StockChangedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != dto.EventStockChanged {
		return
	}

	input := &dto.StockChangeInput{
		ProductID:     event.Payload.ProductID,
		StockQuantity: event.Payload.StockQuantity,
		Source:        event.EventID,
	}
	if err := l.uc.ApplyStockChange(ctx, input); err != nil {
		l.logger.Error("Failed to apply stock change",
			zap.String("event_id", event.EventID),
			zap.String("product_id", event.Payload.ProductID),
			zap.Error(err),
		)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/broker"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Publisher is satisfied by broker.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

func newStockCmd() *cobra.Command {
	stockCmd := &cobra.Command{
		Use:   "stock",
		Short: "Publish inventory events",
	}

	var brokers []string
	setCmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Publish a StockChanged event for one product",
		Long: `Publish a StockChanged event on the inventory topic. Running storefront
instances pick it up and update their catalog snapshot.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a whole number: %w", err)
			}
			if len(brokers) == 0 {
				brokers = cfg.Kafka.Brokers
			}
			if len(brokers) == 0 {
				return fmt.Errorf("no kafka brokers: pass --brokers or set KAFKA_BROKERS")
			}

			producer := broker.NewProducer(&broker.Config{Brokers: brokers, Topic: cfg.Kafka.Topic})
			defer producer.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return publishStock(ctx, cmd.OutOrStdout(), producer, args[0], qty, time.Now())
		},
	}
	setCmd.Flags().StringSliceVar(&brokers, "brokers", nil, "Kafka brokers (default KAFKA_BROKERS)")

	stockCmd.AddCommand(setCmd)
	return stockCmd
}

func publishStock(ctx context.Context, w io.Writer, pub Publisher, productID string, qty int, now time.Time) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	event := dto.StockChangedEvent{
		EventID:   uuid.NewString(),
		EventType: dto.EventStockChanged,
		Payload: dto.StockChangePayload{
			ProductID:     productID,
			StockQuantity: qty,
		},
		Timestamp: now.UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := pub.Publish(ctx, productID, value); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	_, err = fmt.Fprintf(w, "published %s for %s (stock %d)\n", event.EventID, productID, qty)
	return err
}

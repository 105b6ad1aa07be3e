package dto

import "time"

const EventStockChanged = "StockChanged"

// StockChangedEvent is the envelope published on the inventory topic.
type StockChangedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Payload   StockChangePayload `json:"payload"`
	Timestamp time.Time          `json:"timestamp"`
}

type StockChangePayload struct {
	ProductID     string `json:"product_id"`
	StockQuantity int    `json:"stock_quantity"`
}

type StockChangeInput struct {
	ProductID     string
	StockQuantity int
	Source        string // event id, for logs
}

// StockResponse is the body of GET /api/stock/:id.
type StockResponse struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
	InStock   bool   `json:"inStock"`
}

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the canonical event wrapper published to the bus.
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	CorrelationID uuid.UUID       `json:"correlation_id"`
	Topic         string          `json:"topic"`
	EventType     string          `json:"event_type"`
	Version       string          `json:"version"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// OrderEvent is the payload for order lifecycle events.
type OrderEvent struct {
	Venue         string    `json:"venue"`
	Identifier    string    `json:"identifier"`
	Side          string    `json:"side,omitempty"`
	Size          float64   `json:"size,omitempty"`
	Price         float64   `json:"price,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	ClientOrderID string    `json:"client_order_id,omitempty"`
	Status        string    `json:"status"`
	Attempts      int       `json:"attempts,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

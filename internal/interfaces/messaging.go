package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderPlacedMessage tells the fulfillment system a PENDING order exists.
type OrderPlacedMessage struct {
	OrderID   uuid.UUID       `json:"order_id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Total     decimal.Decimal `json:"total"`
	LineCount int             `json:"line_count"`
	Channel   string          `json:"channel"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// Messaging interfaces (Adapter/RabbitMQ)

type MessagePublisher interface {
	PublishOrderPlaced(ctx context.Context, msg OrderPlacedMessage) error
}

type MessageConsumer interface {
	ConsumeOrderPlaced(ctx context.Context, handler OrderPlacedHandler) error
}

type OrderPlacedHandler func(ctx context.Context, body []byte) error

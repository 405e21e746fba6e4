package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zahub/storefront/internal/adapter/logger"
	"github.com/zahub/storefront/internal/interfaces"
)

// OrderPlacedHandler is the notification-subscriber side: it announces new
// PENDING orders on stdout for the fulfillment crew.
type OrderPlacedHandler struct {
	logger logger.Logger
}

func NewOrderPlacedHandler(lgr logger.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{logger: lgr}
}

func (h *OrderPlacedHandler) HandleOrderPlaced(ctx context.Context, body []byte) error {
	var msg interfaces.OrderPlacedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order-placed message", "", nil, err)
		return err
	}

	h.logger.Debug("order_placed_received", fmt.Sprintf("Received order %s", msg.OrderID),
		msg.OrderID.String(), map[string]interface{}{
			"order_id":   msg.OrderID.String(),
			"total":      msg.Total.String(),
			"line_count": msg.LineCount,
		})

	fmt.Printf("New %s order %s: %d line(s), total %s\n",
		msg.Channel, msg.OrderID, msg.LineCount, msg.Total.StringFixed(2))

	return nil
}

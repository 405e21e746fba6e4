package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the immutable record a checkout produces. Total is a frozen
// snapshot of the cart's line subtotals at creation time; it is never
// recomputed afterwards. This core only creates orders in state PENDING;
// every later transition belongs to the fulfillment system.
type Order struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	Status          Status
	Total           decimal.Decimal
	DeliveryAddress string
	Channel         string
	AssignedAgentID *uuid.UUID
	Lines           []OrderLine
	CreatedAt       time.Time
}

// OrderLine is a snapshot of a cart line, decoupled from the cart: deleting
// the cart line afterwards does not touch it.
type OrderLine struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	BaseProductID *uuid.UUID
	DisplayName   string
	Size          Size
	Quantity      int
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	Modifiers     []LineModifier
}

// Delivery details are confirmed later by the fulfillment side; orders placed
// from the app start with this placeholder.
const PendingDeliveryAddress = "To be confirmed (placed from ZaHub app)"

// NewPendingOrder freezes the cart total into a PENDING order shell.
func NewPendingOrder(clientID uuid.UUID, total decimal.Decimal) *Order {
	return &Order{
		ClientID:        clientID,
		Status:          StatusPending,
		Total:           total,
		DeliveryAddress: PendingDeliveryAddress,
		Channel:         ChannelMobileApp,
	}
}

// CartTotal sums line subtotals. Used as a cross-check at checkout: each
// subtotal was already derived and persisted by the cart.
func CartTotal(lines []*CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// SnapshotLine copies a cart line into an order line. Modifiers are copied
// separately once the line row exists.
func SnapshotLine(orderID uuid.UUID, line *CartLine) *OrderLine {
	return &OrderLine{
		OrderID:       orderID,
		BaseProductID: line.BaseProductID,
		DisplayName:   line.DisplayName,
		Size:          line.Size,
		Quantity:      line.Quantity,
		UnitPrice:     line.UnitPrice,
		Subtotal:      line.Subtotal,
	}
}

// SnapshotModifiers copies cart-line modifiers for an order line. The copies
// get fresh identity; only ingredient, kind and charge carry over.
func SnapshotModifiers(orderLineID uuid.UUID, mods []LineModifier) []LineModifier {
	out := make([]LineModifier, 0, len(mods))
	for _, m := range mods {
		out = append(out, LineModifier{
			LineID:       orderLineID,
			IngredientID: m.IngredientID,
			Kind:         m.Kind,
			ExtraCharge:  m.ExtraCharge,
		})
	}
	return out
}

package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/adapter/logger"
	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

// Service commits a cart into an order. The pipeline is deliberately
// best-effort past the order insert: a cart line that fails to copy is
// skipped, and the cart is cleared regardless, so a retry cannot submit the
// same cart twice. Only the order insert itself aborts the checkout.
type Service struct {
	cart      interfaces.CartService
	cartRepo  interfaces.CartRepository
	orders    interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
}

func NewService(
	cart interfaces.CartService,
	cartRepo interfaces.CartRepository,
	orders interfaces.OrderRepository,
	publisher interfaces.MessagePublisher,
	lgr logger.Logger,
) *Service {
	return &Service{
		cart:      cart,
		cartRepo:  cartRepo,
		orders:    orders,
		publisher: publisher,
		logger:    lgr,
	}
}

func (s *Service) Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	lines, err := s.cart.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Cross-check only: each subtotal was derived when the line was written.
	total := domain.CartTotal(lines)

	order := domain.NewPendingOrder(userID, total)
	if err := s.orders.InsertOrder(ctx, order); err != nil {
		s.logger.Error("order_insert_failed", "Failed to create order, checkout aborted", "", nil, err)
		return nil, err
	}

	for _, line := range lines {
		snapshot := domain.SnapshotLine(order.ID, line)
		if err := s.orders.InsertLine(ctx, snapshot); err != nil {
			s.logger.Error("order_line_insert_failed", "Failed to copy cart line, skipping", "",
				map[string]interface{}{
					"order_id":     order.ID.String(),
					"cart_line_id": line.ID.String(),
				}, err)
			continue
		}

		mods, err := s.cartRepo.ListModifiers(ctx, line.ID)
		if err != nil {
			s.logger.Error("order_modifier_load_failed", "Failed to load cart line modifiers, skipping", "",
				map[string]interface{}{"cart_line_id": line.ID.String()}, err)
			continue
		}

		snapshot.Modifiers = domain.SnapshotModifiers(snapshot.ID, mods)
		if len(snapshot.Modifiers) > 0 {
			if err := s.orders.InsertModifiers(ctx, snapshot.Modifiers); err != nil {
				s.logger.Error("order_modifier_insert_failed", "Failed to copy line modifiers", "",
					map[string]interface{}{"order_line_id": snapshot.ID.String()}, err)
			}
		}

		order.Lines = append(order.Lines, *snapshot)
	}

	// Cleared even when some lines failed to copy: the caller reports
	// success either way, and a stale cart would only invite a duplicate
	// order on the next attempt.
	if err := s.cart.Clear(ctx, userID); err != nil {
		s.logger.Error("cart_clear_failed", "Failed to clear cart after checkout", "",
			map[string]interface{}{"user_id": userID.String()}, err)
	}

	s.notifyFulfillment(ctx, order, len(lines))

	return order, nil
}

func (s *Service) notifyFulfillment(ctx context.Context, order *domain.Order, lineCount int) {
	msg := interfaces.OrderPlacedMessage{
		OrderID:   order.ID,
		ClientID:  order.ClientID,
		Total:     order.Total,
		LineCount: lineCount,
		Channel:   order.Channel,
		PlacedAt:  time.Now().UTC(),
	}

	if err := s.publisher.PublishOrderPlaced(ctx, msg); err != nil {
		// The order and the cleared cart already exist; surfacing a broker
		// error here would push the client into resubmitting a gone cart.
		s.logger.Error("order_publish_failed", "Failed to publish order-placed event", "",
			map[string]interface{}{"order_id": order.ID.String()}, err)
		return
	}

	s.logger.Debug("order_published", "Order-placed event published", "",
		map[string]interface{}{"order_id": order.ID.String()})
}

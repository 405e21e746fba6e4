package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) InsertOrder(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (client_id, status, total, delivery_address, channel,
		                    assigned_agent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	order.CreatedAt = time.Now().UTC()
	err := r.db.QueryRow(ctx, query,
		order.ClientID, order.Status, order.Total, order.DeliveryAddress,
		order.Channel, order.AssignedAgentID, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) InsertLine(ctx context.Context, line *domain.OrderLine) error {
	query := `
		INSERT INTO order_line (order_id, base_product_id, display_name, size,
		                        quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		line.OrderID, line.BaseProductID, line.DisplayName, line.Size,
		line.Quantity, line.UnitPrice, line.Subtotal,
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order line: %w", err)
	}
	return nil
}

func (r *orderRepository) InsertModifiers(ctx context.Context, mods []domain.LineModifier) error {
	query := `
		INSERT INTO order_line_modifier (order_line_id, ingredient_id, kind, extra_charge)
		VALUES ($1, $2, $3, $4)
	`
	for _, mod := range mods {
		if _, err := r.db.Exec(ctx, query, mod.LineID, mod.IngredientID, mod.Kind, mod.ExtraCharge); err != nil {
			return fmt.Errorf("failed to insert order line modifier: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT id, client_id, status, total, delivery_address, channel,
		       assigned_agent_id, created_at
		FROM orders
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.ClientID, &order.Status, &order.Total,
			&order.DeliveryAddress, &order.Channel, &order.AssignedAgentID, &order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	for _, order := range orders {
		lines, err := r.listLines(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Lines = lines
	}

	return orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, client_id, status, total, delivery_address, channel,
		       assigned_agent_id, created_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.ClientID, &order.Status, &order.Total,
		&order.DeliveryAddress, &order.Channel, &order.AssignedAgentID, &order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderNotFound, err)
	}

	lines, err := r.listLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	for i := range order.Lines {
		mods, err := r.listModifiers(ctx, order.Lines[i].ID)
		if err != nil {
			return nil, err
		}
		order.Lines[i].Modifiers = mods
	}

	return &order, nil
}

func (r *orderRepository) listLines(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLine, error) {
	query := `
		SELECT id, order_id, base_product_id, display_name, size, quantity, unit_price, subtotal
		FROM order_line
		WHERE order_id = $1
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.BaseProductID, &line.DisplayName,
			&line.Size, &line.Quantity, &line.UnitPrice, &line.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (r *orderRepository) listModifiers(ctx context.Context, orderLineID uuid.UUID) ([]domain.LineModifier, error) {
	query := `
		SELECT id, order_line_id, ingredient_id, kind, extra_charge
		FROM order_line_modifier
		WHERE order_line_id = $1
	`

	rows, err := r.db.Query(ctx, query, orderLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order line modifiers: %w", err)
	}
	defer rows.Close()

	var mods []domain.LineModifier
	for rows.Next() {
		var mod domain.LineModifier
		if err := rows.Scan(&mod.ID, &mod.LineID, &mod.IngredientID, &mod.Kind, &mod.ExtraCharge); err != nil {
			return nil, fmt.Errorf("failed to scan order line modifier: %w", err)
		}
		mods = append(mods, mod)
	}

	return mods, rows.Err()
}

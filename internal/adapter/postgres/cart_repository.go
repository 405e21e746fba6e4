package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

type cartRepository struct {
	db DB
}

func NewCartRepository(db DB) interfaces.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]*domain.CartLine, error) {
	query := `
		SELECT id, user_id, base_product_id, display_name, size, crust_style, crust_edge,
		       quantity, unit_price, subtotal, created_at
		FROM cart_line
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	var lines []*domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID, &line.UserID, &line.BaseProductID, &line.DisplayName, &line.Size,
			&line.CrustStyle, &line.CrustEdge, &line.Quantity, &line.UnitPrice,
			&line.Subtotal, &line.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart lines: %w", err)
	}

	for _, line := range lines {
		mods, err := r.ListModifiers(ctx, line.ID)
		if err != nil {
			return nil, err
		}
		line.Modifiers = mods
	}

	return lines, nil
}

func (r *cartRepository) FindLine(ctx context.Context, lineID uuid.UUID) (*domain.CartLine, error) {
	query := `
		SELECT id, user_id, base_product_id, display_name, size, crust_style, crust_edge,
		       quantity, unit_price, subtotal, created_at
		FROM cart_line
		WHERE id = $1
	`

	var line domain.CartLine
	err := r.db.QueryRow(ctx, query, lineID).Scan(
		&line.ID, &line.UserID, &line.BaseProductID, &line.DisplayName, &line.Size,
		&line.CrustStyle, &line.CrustEdge, &line.Quantity, &line.UnitPrice,
		&line.Subtotal, &line.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLineNotFound, err)
	}

	return &line, nil
}

func (r *cartRepository) InsertLine(ctx context.Context, line *domain.CartLine) error {
	query := `
		INSERT INTO cart_line (user_id, base_product_id, display_name, size, crust_style,
		                       crust_edge, quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	line.CreatedAt = time.Now().UTC()
	err := r.db.QueryRow(ctx, query,
		line.UserID, line.BaseProductID, line.DisplayName, line.Size, line.CrustStyle,
		line.CrustEdge, line.Quantity, line.UnitPrice, line.Subtotal, line.CreatedAt,
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("failed to insert cart line: %w", err)
	}
	return nil
}

func (r *cartRepository) InsertModifier(ctx context.Context, mod *domain.LineModifier) error {
	query := `
		INSERT INTO cart_line_modifier (cart_line_id, ingredient_id, kind, extra_charge)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		mod.LineID, mod.IngredientID, mod.Kind, mod.ExtraCharge,
	).Scan(&mod.ID)
	if err != nil {
		return fmt.Errorf("failed to insert cart line modifier: %w", err)
	}
	return nil
}

func (r *cartRepository) ListModifiers(ctx context.Context, lineID uuid.UUID) ([]domain.LineModifier, error) {
	query := `
		SELECT id, cart_line_id, ingredient_id, kind, extra_charge
		FROM cart_line_modifier
		WHERE cart_line_id = $1
	`

	rows, err := r.db.Query(ctx, query, lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart line modifiers: %w", err)
	}
	defer rows.Close()

	var mods []domain.LineModifier
	for rows.Next() {
		var mod domain.LineModifier
		if err := rows.Scan(&mod.ID, &mod.LineID, &mod.IngredientID, &mod.Kind, &mod.ExtraCharge); err != nil {
			return nil, fmt.Errorf("failed to scan cart line modifier: %w", err)
		}
		mods = append(mods, mod)
	}

	return mods, rows.Err()
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int, subtotal decimal.Decimal) error {
	query := `
		UPDATE cart_line
		SET quantity = $1, subtotal = $2
		WHERE id = $3
	`
	tag, err := r.db.Exec(ctx, query, quantity, subtotal, lineID)
	if err != nil {
		return fmt.Errorf("failed to update cart line quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *cartRepository) DeleteModifiersByLine(ctx context.Context, lineID uuid.UUID) error {
	query := `DELETE FROM cart_line_modifier WHERE cart_line_id = $1`
	if _, err := r.db.Exec(ctx, query, lineID); err != nil {
		return fmt.Errorf("failed to delete cart line modifiers: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	query := `DELETE FROM cart_line WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, lineID); err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteModifiersByUser(ctx context.Context, userID uuid.UUID) error {
	query := `
		DELETE FROM cart_line_modifier
		WHERE cart_line_id IN (SELECT id FROM cart_line WHERE user_id = $1)
	`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete user's cart modifiers: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteLinesByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM cart_line WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete user's cart lines: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) interfaces.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	query := `
		SELECT id, name, category, extra_charge, active
		FROM ingredient
		WHERE active = true
		ORDER BY category ASC, name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.ExtraCharge, &ing.Active); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, tag, image_url, active
		FROM product
		WHERE active = true
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Tag, &p.ImageURL, &p.Active); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *catalogRepository) FindProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, tag, image_url, active
		FROM product
		WHERE id = $1 AND active = true
	`

	var p domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Tag, &p.ImageURL, &p.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProductNotFound, err)
	}

	return &p, nil
}

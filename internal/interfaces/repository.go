package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zahub/storefront/internal/domain"
)

// Repository interfaces (Adapter/Postgres)

type UserRepository interface {
	// ResolveAppUser maps an external auth identity to the app-user id,
	// failing with domain.ErrNotAuthenticated when no profile row exists.
	ResolveAppUser(ctx context.Context, authUserID string) (uuid.UUID, error)
}

type CatalogRepository interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type CartRepository interface {
	// ListLines returns the user's lines with modifiers attached, oldest first.
	ListLines(ctx context.Context, userID uuid.UUID) ([]*domain.CartLine, error)
	FindLine(ctx context.Context, lineID uuid.UUID) (*domain.CartLine, error)
	InsertLine(ctx context.Context, line *domain.CartLine) error
	InsertModifier(ctx context.Context, mod *domain.LineModifier) error
	ListModifiers(ctx context.Context, lineID uuid.UUID) ([]domain.LineModifier, error)
	UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int, subtotal decimal.Decimal) error
	DeleteModifiersByLine(ctx context.Context, lineID uuid.UUID) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	DeleteModifiersByUser(ctx context.Context, userID uuid.UUID) error
	DeleteLinesByUser(ctx context.Context, userID uuid.UUID) error
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, order *domain.Order) error
	InsertLine(ctx context.Context, line *domain.OrderLine) error
	InsertModifiers(ctx context.Context, mods []domain.LineModifier) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/domain"
)

// Service interfaces (Business Logic)

type CartService interface {
	ListLines(ctx context.Context, userID uuid.UUID) ([]*domain.CartLine, error)
	AddLine(ctx context.Context, userID uuid.UUID, cmd AddLineCommand) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error
	RemoveLine(ctx context.Context, lineID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type CheckoutService interface {
	// Checkout converts the user's whole cart into one PENDING order and
	// clears the cart. Fails with domain.ErrEmptyCart on an empty cart.
	Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
}

type CatalogService interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
}

// AddLineCommand carries either a catalog product reference or a full custom
// build. BaseProductID wins when both are present.
type AddLineCommand struct {
	BaseProductID *uuid.UUID
	DisplayName   string
	Size          string
	CrustStyle    string
	CrustEdge     string
	Quantity      int
	Selections    []SelectionCommand
}

type SelectionCommand struct {
	IngredientID uuid.UUID
	Kind         string
}

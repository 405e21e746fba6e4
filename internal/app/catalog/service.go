package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/adapter/logger"
	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

// Service serves the read side: menu data written by the external
// menu-management process, and the user's own order history.
type Service struct {
	catalog interfaces.CatalogRepository
	orders  interfaces.OrderRepository
	logger  logger.Logger
}

func NewService(catalog interfaces.CatalogRepository, orders interfaces.OrderRepository, lgr logger.Logger) *Service {
	return &Service{
		catalog: catalog,
		orders:  orders,
		logger:  lgr,
	}
}

func (s *Service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.catalog.ListIngredients(ctx)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.orders.ListByClient(ctx, userID)
}

// GetOrder hides other clients' orders behind not-found.
func (s *Service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != userID {
		return nil, fmt.Errorf("%w: order belongs to another client", domain.ErrOrderNotFound)
	}
	return order, nil
}

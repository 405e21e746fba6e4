package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/adapter/logger"
	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

// Service owns the mutable cart: listing, adding builds, quantity changes,
// removal. Deletion ordering is modifiers first, then lines; a modifier
// failure is logged and the line operation proceeds anyway, so the worst
// leftover is an orphaned modifier no read can reach (reads always join on
// an existing line).
type Service struct {
	repo    interfaces.CartRepository
	catalog interfaces.CatalogRepository
	logger  logger.Logger
}

func NewService(repo interfaces.CartRepository, catalog interfaces.CatalogRepository, lgr logger.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  lgr,
	}
}

func (s *Service) ListLines(ctx context.Context, userID uuid.UUID) ([]*domain.CartLine, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.repo.ListLines(ctx, userID)
}

func (s *Service) AddLine(ctx context.Context, userID uuid.UUID, cmd interfaces.AddLineCommand) (*domain.CartLine, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	line, err := s.assembleLine(ctx, userID, cmd)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertLine(ctx, line); err != nil {
		s.logger.Error("cart_line_insert_failed", "Failed to insert cart line", "", nil, err)
		return nil, err
	}

	// Best effort: the line is valid on its own, so a failed modifier insert
	// is logged and skipped rather than rolling the line back.
	persisted := line.Modifiers[:0]
	for i := range line.Modifiers {
		line.Modifiers[i].LineID = line.ID
		if err := s.repo.InsertModifier(ctx, &line.Modifiers[i]); err != nil {
			s.logger.Error("cart_modifier_insert_failed", "Failed to insert cart line modifier", "",
				map[string]interface{}{
					"cart_line_id":  line.ID.String(),
					"ingredient_id": line.Modifiers[i].IngredientID.String(),
				}, err)
			continue
		}
		persisted = append(persisted, line.Modifiers[i])
	}
	line.Modifiers = persisted

	s.logger.Debug("cart_line_added", "Cart line added", "", map[string]interface{}{
		"cart_line_id": line.ID.String(),
		"subtotal":     line.Subtotal.String(),
	})

	return line, nil
}

func (s *Service) assembleLine(ctx context.Context, userID uuid.UUID, cmd interfaces.AddLineCommand) (*domain.CartLine, error) {
	if cmd.BaseProductID != nil {
		product, err := s.catalog.FindProduct(ctx, *cmd.BaseProductID)
		if err != nil {
			return nil, err
		}
		return domain.NewProductCartLine(userID, product, cmd.Quantity), nil
	}

	selections := make([]domain.IngredientSelection, 0, len(cmd.Selections))
	for _, sel := range cmd.Selections {
		selections = append(selections, domain.IngredientSelection{
			IngredientID: sel.IngredientID,
			Kind:         domain.ModifierKind(sel.Kind),
		})
	}

	build, err := domain.NewBuild(cmd.DisplayName, domain.Size(cmd.Size), cmd.CrustStyle, cmd.CrustEdge, cmd.Quantity, selections)
	if err != nil {
		return nil, fmt.Errorf("invalid build: %w", err)
	}

	catalog, err := s.ingredientIndex(ctx)
	if err != nil {
		return nil, err
	}

	mods := build.Modifiers(catalog)
	unitPrice := domain.UnitPrice(build.Size, mods)

	return domain.NewCartLine(userID, build, unitPrice, mods), nil
}

func (s *Service) ingredientIndex(ctx context.Context) (map[uuid.UUID]domain.Ingredient, error) {
	ingredients, err := s.catalog.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient catalog: %w", err)
	}
	index := make(map[uuid.UUID]domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		index[ing.ID] = ing
	}
	return index, nil
}

// UpdateQuantity recomputes the subtotal from the stored unit price and
// persists both fields together. Non-positive quantities remove the line.
func (s *Service) UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveLine(ctx, lineID)
	}

	line, err := s.repo.FindLine(ctx, lineID)
	if err != nil {
		return err
	}

	if err := line.Requantify(quantity); err != nil {
		return err
	}

	return s.repo.UpdateQuantity(ctx, lineID, line.Quantity, line.Subtotal)
}

func (s *Service) RemoveLine(ctx context.Context, lineID uuid.UUID) error {
	if err := s.repo.DeleteModifiersByLine(ctx, lineID); err != nil {
		s.logger.Error("cart_modifier_delete_failed", "Failed to delete cart line modifiers", "",
			map[string]interface{}{"cart_line_id": lineID.String()}, err)
	}
	return s.repo.DeleteLine(ctx, lineID)
}

func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrNotAuthenticated
	}
	if err := s.repo.DeleteModifiersByUser(ctx, userID); err != nil {
		s.logger.Error("cart_modifier_delete_failed", "Failed to delete cart modifiers on clear", "",
			map[string]interface{}{"user_id": userID.String()}, err)
	}
	return s.repo.DeleteLinesByUser(ctx, userID)
}

package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineModifier associates one ingredient with one cart or order line. At most
// one modifier exists per (line, ingredient) pair. ExtraCharge is the resolved
// charge stored on the row: the ingredient's extra charge for EXTRA, zero for
// INCLUDED and EXCLUDED.
type LineModifier struct {
	ID           uuid.UUID
	LineID       uuid.UUID
	IngredientID uuid.UUID
	Kind         ModifierKind
	ExtraCharge  decimal.Decimal
}

// CartLine is one mutable entry of a user's cart.
type CartLine struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	BaseProductID *uuid.UUID
	DisplayName   string
	Size          Size
	CrustStyle    string
	CrustEdge     string
	Quantity      int
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	Modifiers     []LineModifier
	CreatedAt     time.Time
}

// Build is a validated custom-Za request: the output of the selection flow,
// ready to be priced and persisted as a cart line.
type Build struct {
	DisplayName string
	Size        Size
	CrustStyle  string
	CrustEdge   string
	Quantity    int
	Selections  []IngredientSelection
}

// NewBuild validates a custom build against the fixed option sets and
// collapses duplicate ingredient selections (last toggle wins).
func NewBuild(displayName string, size Size, crustStyle, crustEdge string, quantity int, selections []IngredientSelection) (*Build, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("unknown size %q", size)
	}
	if !contains(CrustStyles, crustStyle) {
		return nil, fmt.Errorf("unknown crust style %q", crustStyle)
	}
	if !contains(CrustEdges, crustEdge) {
		return nil, fmt.Errorf("unknown crust edge %q", crustEdge)
	}
	if displayName == "" {
		return nil, errors.New("display name is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	deduped := make([]IngredientSelection, 0, len(selections))
	seen := make(map[uuid.UUID]int)
	for _, sel := range selections {
		if !sel.Kind.Valid() {
			return nil, fmt.Errorf("unknown modifier kind %q", sel.Kind)
		}
		if i, ok := seen[sel.IngredientID]; ok {
			deduped[i] = sel
			continue
		}
		seen[sel.IngredientID] = len(deduped)
		deduped = append(deduped, sel)
	}

	return &Build{
		DisplayName: displayName,
		Size:        size,
		CrustStyle:  crustStyle,
		CrustEdge:   crustEdge,
		Quantity:    quantity,
		Selections:  deduped,
	}, nil
}

// Modifiers resolves the build's selections against the ingredient catalog.
// Selections for ingredients missing from the catalog carry a zero charge,
// as the storefront treats an unknown id as priceless rather than an error.
func (b *Build) Modifiers(catalog map[uuid.UUID]Ingredient) []LineModifier {
	mods := make([]LineModifier, 0, len(b.Selections))
	for _, sel := range b.Selections {
		charge := decimal.Zero
		if sel.Kind == ModifierExtra {
			if ing, ok := catalog[sel.IngredientID]; ok {
				charge = ing.ExtraCharge
			}
		}
		mods = append(mods, LineModifier{
			IngredientID: sel.IngredientID,
			Kind:         sel.Kind,
			ExtraCharge:  charge,
		})
	}
	return mods
}

// NewCartLine assembles a priced cart line for a custom build. The subtotal is
// always derived here, never accepted from the caller.
func NewCartLine(userID uuid.UUID, build *Build, unitPrice decimal.Decimal, modifiers []LineModifier) *CartLine {
	return &CartLine{
		UserID:      userID,
		DisplayName: build.DisplayName,
		Size:        build.Size,
		CrustStyle:  build.CrustStyle,
		CrustEdge:   build.CrustEdge,
		Quantity:    build.Quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(build.Quantity))),
		Modifiers:   modifiers,
	}
}

// NewProductCartLine builds a cart line for a menu product. Menu Zas come in
// one configuration: medium, traditional crust, classic edge.
func NewProductCartLine(userID uuid.UUID, product *Product, quantity int) *CartLine {
	if quantity < 1 {
		quantity = 1
	}
	productID := product.ID
	return &CartLine{
		UserID:        userID,
		BaseProductID: &productID,
		DisplayName:   product.Name,
		Size:          SizeMedium,
		CrustStyle:    DefaultCrustStyle,
		CrustEdge:     DefaultCrustEdge,
		Quantity:      quantity,
		UnitPrice:     product.Price,
		Subtotal:      product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Requantify recomputes the subtotal from the stored unit price. Quantities
// below one are a caller error; removal is handled a level up.
func (l *CartLine) Requantify(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	l.Quantity = quantity
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

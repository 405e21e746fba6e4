package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is a read-only catalog entry maintained by the menu-management
// process. ExtraCharge is what an EXTRA selection adds to the unit price.
type Ingredient struct {
	ID          uuid.UUID
	Name        string
	Category    Category
	ExtraCharge decimal.Decimal
	Active      bool
}

// Product is a pre-designed Za from the menu.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Tag         *string
	ImageURL    *string
	Active      bool
}

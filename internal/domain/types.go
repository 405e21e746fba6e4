package domain

import "github.com/shopspring/decimal"

type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

// Base prices in COP, taken from the storefront price list.
var basePriceBySize = map[Size]decimal.Decimal{
	SizeSmall:  decimal.NewFromInt(22000),
	SizeMedium: decimal.NewFromInt(28000),
	SizeLarge:  decimal.NewFromInt(35000),
}

func (s Size) Valid() bool {
	_, ok := basePriceBySize[s]
	return ok
}

// BasePrice panics for undefined sizes; callers must validate first.
func (s Size) BasePrice() decimal.Decimal {
	price, ok := basePriceBySize[s]
	if !ok {
		panic("domain: undefined size " + string(s))
	}
	return price
}

type Category string

const (
	CategorySauce     Category = "sauce"
	CategoryCheese    Category = "cheese"
	CategoryProtein   Category = "protein"
	CategoryVegetable Category = "vegetable"
	CategoryExtra     Category = "extra"
	CategoryCrust     Category = "crust"
	CategoryOther     Category = "other"
)

// ModifierKind tags an ingredient on a line. Absence of a modifier means the
// ingredient was never selected; that state is not stored.
type ModifierKind string

const (
	ModifierIncluded ModifierKind = "INCLUDED"
	ModifierExtra    ModifierKind = "EXTRA"
	ModifierExcluded ModifierKind = "EXCLUDED"
)

func (k ModifierKind) Valid() bool {
	switch k {
	case ModifierIncluded, ModifierExtra, ModifierExcluded:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

const ChannelMobileApp = "APP_MOBILE"

var (
	CrustStyles = []string{"traditional", "thin", "pan"}
	CrustEdges  = []string{"classic", "cheese", "garlic-butter"}
)

const (
	DefaultCrustStyle = "traditional"
	DefaultCrustEdge  = "classic"
)

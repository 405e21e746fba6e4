package domain

import "github.com/shopspring/decimal"

// UnitPrice computes the price of one Za: the size's base price plus the
// resolved extra charge of every EXTRA modifier. INCLUDED and EXCLUDED
// modifiers never move the price. Pure; callers pass only defined sizes.
func UnitPrice(size Size, modifiers []LineModifier) decimal.Decimal {
	price := size.BasePrice()
	for _, m := range modifiers {
		if m.Kind == ModifierExtra {
			price = price.Add(m.ExtraCharge)
		}
	}
	return price
}

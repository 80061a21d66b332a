package pricing

import (
	"github.com/shopspring/decimal"

	"vegholic-api/models"
)

// DefaultVariant is used when a cart add names no variant.
const DefaultVariant = "1kg"

var multipliers = map[string]decimal.Decimal{
	"250g": decimal.RequireFromString("0.25"),
	"500g": decimal.RequireFromString("0.5"),
	"1kg":  decimal.NewFromInt(1),
	"2kg":  decimal.NewFromInt(2),
}

// Multiplier returns the fraction of a kilogram a variant represents.
// Unknown variants are priced as one kilogram.
func Multiplier(variant string) decimal.Decimal {
	if m, ok := multipliers[variant]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// KnownVariant reports whether variant has its own multiplier.
func KnownVariant(variant string) bool {
	_, ok := multipliers[variant]
	return ok
}

// UnitPrice is the price of one unit of variant, rounded half away from
// zero to two decimals. It is never negative.
func UnitPrice(pricePerKg float64, variant string) float64 {
	price := decimal.NewFromFloat(pricePerKg).Mul(Multiplier(variant)).Round(2)
	if price.IsNegative() {
		return 0
	}
	return price.InexactFloat64()
}

// OrderTotal sums price times qty over the lines.
func OrderTotal(lines []models.CartItem) float64 {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return total.Round(2).InexactFloat64()
}

// Package money implements decimal-safe amount arithmetic for bills.
package money

import "github.com/shopspring/decimal"

// VATRate is the fixed value-added tax applied to every bill subtotal.
var VATRate = decimal.RequireFromString("0.19")

// NormalizeQuantity coerces a missing or invalid quantity to the minimum of 1.
func NormalizeQuantity(quantity *int64) int64 {
	if quantity == nil || *quantity < 1 {
		return 1
	}
	return *quantity
}

// LineTotal computes quantity times unit price.
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// Sum adds up line totals into a bill subtotal.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// VAT returns the tax amount for a subtotal, rounded to 2 decimals.
func VAT(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(VATRate).Round(2)
}

// WithVAT returns the grand total: subtotal plus tax.
func WithVAT(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(VAT(subtotal))
}

// Format renders an amount with exactly two decimal places.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

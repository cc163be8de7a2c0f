// Package pricing computes sale totals. It is pure arithmetic over cents:
// no persistence, no clock, no I/O.
package pricing

import (
	"math"

	"salonpos/backend/internal/domain"
)

type Totals struct {
	SubtotalCents int64
	TaxableCents  int64
	TaxCents      int64
	TotalCents    int64
}

// Taxable reports whether a line category is subject to sales tax.
// Products and luxury services are taxed; regular services are not.
func Taxable(category string) bool {
	switch category {
	case domain.LineCategoryProduct, domain.LineCategoryLuxuryService:
		return true
	default:
		return false
	}
}

// Compute derives subtotal, tax, and total for a set of sale items.
// The tip is added to the total untaxed. Tax is rounded half-up to the
// nearest cent.
func Compute(items []domain.SaleItem, taxRate float64, tipCents int64) Totals {
	var subtotal, taxable int64
	for _, item := range items {
		line := item.UnitPriceCents * int64(item.Qty)
		subtotal += line
		if Taxable(item.Category) {
			taxable += line
		}
	}
	tax := int64(math.Round(float64(taxable) * taxRate))
	return Totals{
		SubtotalCents: subtotal,
		TaxableCents:  taxable,
		TaxCents:      tax,
		TotalCents:    subtotal + tax + tipCents,
	}
}

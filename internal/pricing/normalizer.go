// Package pricing converts catalog prices into the visitor's display currency.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/ptr"
)

// DisplayPlaces decimal places of converted prices
const DisplayPlaces = 2

// Normalizer converts priced items into a target currency.
// It is stateless; one instance is shared by every catalog read.
type Normalizer struct{}

// NewNormalizer creates a normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Convert sets ConvertedPrice on copies of items.
// When the target rate is unknown or items is empty, items is returned as is.
// Prices are always derived from BaseUnitPrice, so repeated calls are idempotent.
func (n *Normalizer) Convert(items []domain.PricedItem, rates *domain.ExchangeRateTable, target domain.Currency) []domain.PricedItem {
	if len(items) == 0 {
		return items
	}
	rate, ok := rates.Rate(target)
	if !ok {
		return items
	}

	r := decimal.NewFromFloat(rate)
	out := make([]domain.PricedItem, len(items))
	for i, item := range items {
		out[i] = item.WithConversion(ConvertAmount(item.BaseUnitPrice, r), target)
	}
	return out
}

// ConvertOne converts a single item; ok=false when the rate is unknown
func (n *Normalizer) ConvertOne(item domain.PricedItem, rates *domain.ExchangeRateTable, target domain.Currency) (domain.PricedItem, bool) {
	rate, ok := rates.Rate(target)
	if !ok {
		return item, false
	}
	return item.WithConversion(ConvertAmount(item.BaseUnitPrice, decimal.NewFromFloat(rate)), target), true
}

// ConvertAmount multiplies and rounds half-up to DisplayPlaces
func ConvertAmount(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Round(DisplayPlaces)
}

// FormatPrice renders a price with exactly two decimals ("92.34")
func FormatPrice(p decimal.Decimal) string {
	return p.StringFixed(DisplayPlaces)
}

// FormatPricePtr is FormatPrice for optional prices
func FormatPricePtr(p *decimal.Decimal) *string {
	if p == nil {
		return nil
	}
	return ptr.Ptr(FormatPrice(*p))
}

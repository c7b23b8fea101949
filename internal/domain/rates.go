package domain

import (
	"fmt"
	"strings"
	"time"
)

// Currency ISO 4217 code
type Currency string

// ParseCurrency normalizes and validates a currency code against SupportedCurrencies
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return c, nil
}

// IsSupported reports whether c is one of SupportedCurrencies
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies {
		if s == c {
			return true
		}
	}
	return false
}

// ExchangeRateTable maps currency codes to rates relative to Base.
// A table is never mutated after construction; replace it as a whole.
type ExchangeRateTable struct {
	base      Currency
	rates     map[Currency]float64
	fetchedAt time.Time
}

// NewExchangeRateTable copies rates into a new table.
// The base rate is forced to 1; non-positive rates are stored as unknown.
func NewExchangeRateTable(base Currency, rates map[Currency]float64, fetchedAt time.Time) *ExchangeRateTable {
	copied := make(map[Currency]float64, len(rates)+1)
	for c, r := range rates {
		if r > 0 {
			copied[c] = r
		}
	}
	copied[base] = 1

	return &ExchangeRateTable{base: base, rates: copied, fetchedAt: fetchedAt}
}

// RateStatus the current table together with the outcome of the last refresh
type RateStatus struct {
	Table *ExchangeRateTable
	// Stale is set while refreshes keep failing; Table then holds the last known rates
	Stale     bool
	LastError string
}

// BaseOnlyTable is the table before any rates are loaded: only the base is known
func BaseOnlyTable(base Currency) *ExchangeRateTable {
	return NewExchangeRateTable(base, nil, time.Time{})
}

func (t *ExchangeRateTable) Base() Currency {
	return t.base
}

func (t *ExchangeRateTable) FetchedAt() time.Time {
	return t.fetchedAt
}

// Rate returns the rate of c, ok=false when unknown
func (t *ExchangeRateTable) Rate(c Currency) (float64, bool) {
	if t == nil {
		return 0, false
	}
	r, ok := t.rates[c]
	return r, ok
}

// IsKnown reports whether c can be converted to
func (t *ExchangeRateTable) IsKnown(c Currency) bool {
	_, ok := t.Rate(c)
	return ok
}

// Rates returns a copy of the known rates
func (t *ExchangeRateTable) Rates() map[Currency]float64 {
	out := make(map[Currency]float64, len(t.rates))
	for c, r := range t.rates {
		out[c] = r
	}
	return out
}

// RateQuote official price of Scale units of Currency in the quoting currency
type RateQuote struct {
	Currency     Currency
	OfficialRate float64
	Scale        int
}

// PerUnit price of one unit; ok=false for an unusable quote
func (q RateQuote) PerUnit() (float64, bool) {
	if q.Scale <= 0 || q.OfficialRate <= 0 {
		return 0, false
	}
	return q.OfficialRate / float64(q.Scale), true
}

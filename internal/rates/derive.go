package rates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// DeriveTable пересчитывает котировки в таблицу относительно base.
// Котировка задаёт цену одной единицы валюты в quoteCurrency, поэтому
// rate(C) = perUnit(base) / perUnit(C); для самой quoteCurrency perUnit = 1.
// Валюты без корректной котировки в таблицу не попадают (курс неизвестен).
func DeriveTable(
	quotes map[domain.Currency]domain.RateQuote,
	quoteCurrency domain.Currency,
	base domain.Currency,
	now time.Time,
) (*domain.ExchangeRateTable, error) {
	perUnit := func(c domain.Currency) (float64, bool) {
		if c == quoteCurrency {
			return 1, true
		}
		q, ok := quotes[c]
		if !ok {
			return 0, false
		}
		return q.PerUnit()
	}

	basePerUnit, ok := perUnit(base)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingBaseQuote, base)
	}

	derived := make(map[domain.Currency]float64, len(quotes)+1)
	derived[quoteCurrency] = basePerUnit
	for c := range quotes {
		if p, ok := perUnit(c); ok {
			derived[c] = basePerUnit / p
		}
	}

	return domain.NewExchangeRateTable(base, derived, now), nil
}

package get_exchange_rates

import (
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/ptr"
)

// ExchangeRatesResponse HTTP response model. FetchedAt null, пока курсы не загружены.
type ExchangeRatesResponse struct {
	Base      string             `json:"base"`
	FetchedAt *string            `json:"fetchedAt"`
	Rates     map[string]float64 `json:"rates"`
}

// FromTable конвертирует таблицу курсов в HTTP response
func FromTable(table *domain.ExchangeRateTable) *ExchangeRatesResponse {
	rates := make(map[string]float64)
	for c, r := range table.Rates() {
		rates[string(c)] = r
	}

	resp := &ExchangeRatesResponse{
		Base:  string(table.Base()),
		Rates: rates,
	}
	if !table.FetchedAt().IsZero() {
		resp.FetchedAt = ptr.Ptr(table.FetchedAt().UTC().Format(time.RFC3339))
	}
	return resp
}

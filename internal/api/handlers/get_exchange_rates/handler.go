package get_exchange_rates

import (
	"net/http"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
)

type Handler struct {
	rates  RateProvider
	logger Logger
}

func NewHandler(rates RateProvider, logger Logger) *Handler {
	return &Handler{
		rates:  rates,
		logger: logger,
	}
}

// Handle GET /api/v1/exchange-rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	table := h.rates.Current()

	h.logger.Info("GET /exchange-rates - Rates retrieved: base=%s, fetched_at=%s", table.Base(), table.FetchedAt())
	handlers.RespondJSON(w, http.StatusOK, FromTable(table))
}

package get_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	getCatalog "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_catalog"
)

const (
	msgUnsupportedCurrency = "unsupported currency"
	msgCentreNotFound      = "centre not found"
)

type Handler struct {
	useCase GetCatalogUseCase
	logger  Logger
}

func NewHandler(useCase GetCatalogUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleCentreProducts GET /api/v1/centres/{centreId}/products
// Query params: currency (optional, USD/EUR/BYN)
func (h *Handler) HandleCentreProducts(w http.ResponseWriter, r *http.Request) {
	centreID := mux.Vars(r)["centreId"]

	req, ok := h.parseRequest(w, r, "GET /centres/{id}/products")
	if !ok {
		return
	}

	result, err := h.useCase.CentreProducts(r.Context(), centreID, req)
	if err != nil {
		switch {
		case errors.Is(err, getCatalog.ErrCentreNotFound):
			h.logger.Warn("GET /centres/{id}/products - Centre not found: centre_id=%s", centreID)
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, getCatalog.ErrInvalidInput):
			h.logger.Warn("GET /centres/{id}/products - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /centres/{id}/products - Failed to get products: centre_id=%s, error=%v", centreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centres/{id}/products - Products retrieved successfully: centre_id=%s, currency=%s, count=%d",
		centreID, result.Currency, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, FromItemsResponse(result))
}

// HandleProcedures GET /api/v1/procedures
// Query params: currency (optional)
func (h *Handler) HandleProcedures(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r, "GET /procedures")
	if !ok {
		return
	}

	result, err := h.useCase.Procedures(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /procedures - Failed to get procedures: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /procedures - Procedures retrieved successfully: currency=%s, count=%d",
		result.Currency, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, FromItemsResponse(result))
}

// HandleProcedureCentres GET /api/v1/procedures/{procedureId}/centres
// Query params: currency (optional)
func (h *Handler) HandleProcedureCentres(w http.ResponseWriter, r *http.Request) {
	procedureID := mux.Vars(r)["procedureId"]

	req, ok := h.parseRequest(w, r, "GET /procedures/{id}/centres")
	if !ok {
		return
	}

	result, err := h.useCase.ProcedureCentres(r.Context(), procedureID, req)
	if err != nil {
		if errors.Is(err, getCatalog.ErrInvalidInput) {
			h.logger.Warn("GET /procedures/{id}/centres - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /procedures/{id}/centres - Failed to get centres: procedure_id=%s, error=%v", procedureID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /procedures/{id}/centres - Centres retrieved successfully: procedure_id=%s, count=%d",
		procedureID, len(result.Offers))
	handlers.RespondJSON(w, http.StatusOK, FromOffersResponse(result))
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request, route string) (*getCatalog.Request, bool) {
	currency := r.URL.Query().Get("currency")
	req, err := ToUseCaseRequest(currency)
	if err != nil {
		h.logger.Warn("%s - Unsupported currency %q: %v", route, currency, err)
		handlers.RespondBadRequest(w, msgUnsupportedCurrency)
		return nil, false
	}
	return req, true
}

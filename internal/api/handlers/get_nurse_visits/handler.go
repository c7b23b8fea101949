package get_nurse_visits

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits"
)

const (
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
	msgNotFound    = "nurse not found"
)

type Handler struct {
	service VisitService
	logger  Logger
}

func NewHandler(service VisitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/nurses/{nurseId}/visits
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	nurseID := mux.Vars(r)["nurseId"]

	req, err := ToServiceRequest(nurseID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /nurses/{id}/visits - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByNurse(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrProviderNotFound):
			h.logger.Warn("GET /nurses/{id}/visits - Nurse not found: nurse_id=%s", nurseID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("GET /nurses/{id}/visits - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /nurses/{id}/visits - Failed to list visits: nurse_id=%s, error=%v", nurseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /nurses/{id}/visits - Visits retrieved successfully: nurse_id=%s, date=%s, count=%d",
		nurseID, result.Date, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

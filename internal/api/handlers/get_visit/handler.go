package get_visit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits"
)

const (
	msgInvalidVisitID = "invalid visit id"
	msgNotFound       = "visit not found"
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

// Handle GET /api/v1/visits/{visitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitIDStr := mux.Vars(r)["visitId"]

	visitID, err := strconv.ParseInt(visitIDStr, 10, 64)
	if err != nil || visitID <= 0 {
		h.logger.Warn("GET /visits/{id} - Invalid visit ID: %q", visitIDStr)
		handlers.RespondBadRequest(w, msgInvalidVisitID)
		return
	}

	visit, err := h.service.GetByID(r.Context(), visitID)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("GET /visits/{id} - Visit not found: visit_id=%d", visitID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /visits/{id} - Failed to get visit: visit_id=%d, error=%v", visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /visits/{id} - Visit retrieved successfully: visit_id=%d", visitID)
	handlers.RespondJSON(w, http.StatusOK, visit)
}

package get_centres

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres/models"
)

const (
	msgInvalidKind = "unknown centre kind"
	msgNotFound    = "centre not found"
)

type Handler struct {
	service CentreService
	logger  Logger
}

func NewHandler(service CentreService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/centres
// Query params: kind (optional, "Action Centre" / "Client Support Centre")
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := &models.ListCentresRequest{Kind: r.URL.Query().Get("kind")}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, centres.ErrInvalidKind):
			h.logger.Warn("GET /centres - Invalid kind: kind=%q", req.Kind)
			handlers.RespondBadRequest(w, msgInvalidKind)

		default:
			h.logger.Error("GET /centres - Failed to list centres: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centres - Centres retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/centres/{centreId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	centreID := mux.Vars(r)["centreId"]

	centre, err := h.service.GetByID(r.Context(), centreID)
	if err != nil {
		switch {
		case errors.Is(err, centres.ErrCentreNotFound):
			h.logger.Warn("GET /centres/{id} - Centre not found: centre_id=%s", centreID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, centres.ErrInvalidInput):
			h.logger.Warn("GET /centres/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /centres/{id} - Failed to get centre: centre_id=%s, error=%v", centreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centres/{id} - Centre retrieved successfully: centre_id=%s", centreID)
	handlers.RespondJSON(w, http.StatusOK, centre)
}

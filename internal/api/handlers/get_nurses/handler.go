package get_nurses

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
)

type Handler struct {
	nurses NurseLister
	logger Logger
}

func NewHandler(nurses NurseLister, logger Logger) *Handler {
	return &Handler{
		nurses: nurses,
		logger: logger,
	}
}

// Handle GET /api/v1/centres/{centreId}/nurses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	centreID := mux.Vars(r)["centreId"]

	providers, err := h.nurses.ListByCentre(r.Context(), centreID)
	if err != nil {
		h.logger.Error("GET /centres/{id}/nurses - Failed to list nurses: centre_id=%s, error=%v", centreID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /centres/{id}/nurses - Nurses retrieved successfully: centre_id=%s, count=%d",
		centreID, len(providers))
	handlers.RespondJSON(w, http.StatusOK, FromProviders(centreID, providers))
}

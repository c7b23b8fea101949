package search_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres"
)

const (
	msgInvalidLimit = "invalid limit"
	msgInvalidType  = "type must be centre or procedure"
)

type Handler struct {
	service SearchService
	logger  Logger
}

func NewHandler(service SearchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/search
// Query params: type (centre|procedure, default centre), q, limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := ToServiceRequest(query.Get("type"), query.Get("q"), query.Get("limit"))
	if err != nil {
		h.logger.Warn("GET /search - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, centres.ErrInvalidSearchType):
			h.logger.Warn("GET /search - Invalid type: type=%q", req.Type)
			handlers.RespondBadRequest(w, msgInvalidType)

		case errors.Is(err, centres.ErrInvalidInput):
			h.logger.Warn("GET /search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /search - Failed to search: type=%s, error=%v", req.Type, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /search - Search completed: type=%s, count=%d", result.Type, len(result.Suggestions))
	handlers.RespondJSON(w, http.StatusOK, result)
}

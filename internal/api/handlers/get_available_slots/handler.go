package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_available_slots"
)

const (
	msgMissingNurseID = "nurse ID is required"
	msgMissingDate    = "date is required"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
	msgNurseNotFound  = "nurse not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/nurses/{nurseId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем nurseId из URL
	nurseID := mux.Vars(r)["nurseId"]
	if nurseID == "" {
		h.logger.Warn("GET /nurses/{id}/available-slots - Missing nurse ID")
		handlers.RespondBadRequest(w, msgMissingNurseID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /nurses/{id}/available-slots - Missing date: nurse_id=%s", nurseID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(nurseID, dateStr)
	if err != nil {
		h.logger.Warn("GET /nurses/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /nurses/{id}/available-slots - Nurse not found: nurse_id=%s", nurseID)
			handlers.RespondNotFound(w, msgNurseNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /nurses/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /nurses/{id}/available-slots - Failed to get slots: nurse_id=%s, date=%s, error=%v",
				nurseID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /nurses/{id}/available-slots - Slots retrieved successfully: nurse_id=%s, date=%s, slots_count=%d",
		nurseID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var rejected *domain.SubmissionRejected
		if errors.As(err, &rejected) {
			h.logger.Warn("POST /bookings - Booking rejected: centre_id=%s, nurse_id=%s, %v",
				req.CentreID, req.NurseID, rejected)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromRejection(rejected))
			return
		}

		h.logger.Error("POST /bookings - Failed to create booking: centre_id=%s, nurse_id=%s, error=%v",
			req.CentreID, req.NurseID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, centre_id=%s, nurse_id=%s",
		result.ID, req.CentreID, req.NurseID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

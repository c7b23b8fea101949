package booking_sessions

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ActionCentreService/internal/api/handlers"
	"github.com/m04kA/SMC-ActionCentreService/internal/coordinator"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/session"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidSessionID   = "invalid session ID"
	msgSessionNotFound    = "booking session not found"
	msgTooManySessions    = "too many open booking sessions"
	msgMissingCentreID    = "centre ID is required"
	msgMissingProcedureID = "procedure ID is required"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid time format, expected HH:MM"
	msgFormClosed         = "booking form is closed"
	msgFormBusy           = "booking is being submitted"
	msgUnknownNurse       = "nurse does not work at this centre"
	msgSlotUnavailable    = "time slot is not available"
	msgUnknownField       = "unknown form field"
	msgValidation         = "Please complete all required fields"
	msgBackendUnavailable = "scheduling backend is unavailable"
)

type Handler struct {
	registry SessionRegistry
	logger   Logger
}

func NewHandler(registry SessionRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// HandleOpen POST /api/v1/booking-sessions
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.CentreID == "" {
		h.logger.Warn("POST /booking-sessions - Missing centre ID")
		handlers.RespondBadRequest(w, msgMissingCentreID)
		return
	}

	s, err := h.registry.Open(r.Context(), req.CentreID, req.ProcedureID)
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			h.logger.Warn("POST /booking-sessions - Session limit reached")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTooManySessions)
			return
		}
		h.logger.Error("POST /booking-sessions - Failed to open session: centre_id=%s, error=%v", req.CentreID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking-sessions - Session opened: session_id=%s, centre_id=%s", s.ID, req.CentreID)
	handlers.RespondJSON(w, http.StatusCreated, view(s))
}

// HandleGet GET /api/v1/booking-sessions/{sessionId}
// Возвращает состояние формы и забирает накопленные уведомления
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, view(s))
}

// HandleSelectNurse PUT /api/v1/booking-sessions/{sessionId}/provider
func (h *Handler) HandleSelectNurse(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectNurseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/provider - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := s.Coordinator.SelectProvider(r.Context(), req.NurseID); err != nil {
		h.respondTransitionError(w, "PUT /booking-sessions/{id}/provider", s.ID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, view(s))
}

// HandleSelectDate PUT /api/v1/booking-sessions/{sessionId}/date
func (h *Handler) HandleSelectDate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/date - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := s.Coordinator.SelectDate(r.Context(), date); err != nil {
		h.respondTransitionError(w, "PUT /booking-sessions/{id}/date", s.ID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, view(s))
}

// HandleSelectSlot PUT /api/v1/booking-sessions/{sessionId}/slot
func (h *Handler) HandleSelectSlot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := types.ParseHourOfDay(req.Time)
	if err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/slot - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	if err := s.Coordinator.SelectSlot(slot); err != nil {
		h.respondTransitionError(w, "PUT /booking-sessions/{id}/slot", s.ID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, view(s))
}

// HandleUpdateField PUT /api/v1/booking-sessions/{sessionId}/fields/{name}
func (h *Handler) HandleUpdateField(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req UpdateFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/fields/{name} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := s.Coordinator.UpdateField(mux.Vars(r)["name"], req.Value); err != nil {
		h.respondTransitionError(w, "PUT /booking-sessions/{id}/fields/{name}", s.ID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, view(s))
}

// HandleChangeTarget PUT /api/v1/booking-sessions/{sessionId}/target
func (h *Handler) HandleChangeTarget(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ChangeTargetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/target - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.ProcedureID == "" {
		handlers.RespondBadRequest(w, msgMissingProcedureID)
		return
	}

	centreID := s.Coordinator.Snapshot().Draft.CentreID
	resolve := h.registry.TargetResolver(centreID, req.ProcedureID)
	if err := s.Coordinator.ChangeTarget(r.Context(), resolve); err != nil {
		h.respondTransitionError(w, "PUT /booking-sessions/{id}/target", s.ID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, view(s))
}

// HandleSubmit POST /api/v1/booking-sessions/{sessionId}/submit
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	err := s.Coordinator.Submit(r.Context())
	if err == nil {
		h.logger.Info("POST /booking-sessions/{id}/submit - Booking scheduled: session_id=%s", s.ID)
		handlers.RespondJSON(w, http.StatusOK, view(s))
		return
	}

	var verr *domain.ValidationError
	var rejected *domain.SubmissionRejected
	switch {
	case errors.As(err, &verr):
		h.logger.Warn("POST /booking-sessions/{id}/submit - Validation failed: session_id=%s, %v", s.ID, verr)
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromValidationError(verr))

	case errors.As(err, &rejected):
		h.logger.Warn("POST /booking-sessions/{id}/submit - Booking rejected: session_id=%s, %v", s.ID, rejected)
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromRejection(rejected))

	case errors.Is(err, domain.ErrTransport):
		h.logger.Error("POST /booking-sessions/{id}/submit - Backend failure: session_id=%s, error=%v", s.ID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgBackendUnavailable)

	default:
		h.respondTransitionError(w, "POST /booking-sessions/{id}/submit", s.ID, err)
	}
}

// HandleClose DELETE /api/v1/booking-sessions/{sessionId}
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	if !h.registry.Delete(id) {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	h.logger.Info("DELETE /booking-sessions/{id} - Session closed: session_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("%s %s - Invalid session ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return nil, false
	}

	s, err := h.registry.Get(id)
	if err != nil {
		h.logger.Warn("%s %s - Session not found: session_id=%s", r.Method, r.URL.Path, id)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return nil, false
	}
	return s, true
}

func (h *Handler) respondTransitionError(w http.ResponseWriter, route string, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, coordinator.ErrNotOpen):
		h.logger.Warn("%s - Form closed: session_id=%s", route, id)
		handlers.RespondConflict(w, msgFormClosed)

	case errors.Is(err, coordinator.ErrBusy):
		h.logger.Warn("%s - Submission in progress: session_id=%s", route, id)
		handlers.RespondConflict(w, msgFormBusy)

	case errors.Is(err, coordinator.ErrUnknownProvider):
		h.logger.Warn("%s - %v: session_id=%s", route, err, id)
		handlers.RespondBadRequest(w, msgUnknownNurse)

	case errors.Is(err, coordinator.ErrSlotUnavailable):
		h.logger.Warn("%s - %v: session_id=%s", route, err, id)
		handlers.RespondConflict(w, msgSlotUnavailable)

	case errors.Is(err, coordinator.ErrUnknownField):
		h.logger.Warn("%s - %v: session_id=%s", route, err, id)
		handlers.RespondBadRequest(w, msgUnknownField)

	default:
		h.logger.Error("%s - Transition failed: session_id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}

func view(s *session.Session) *SessionResponse {
	return FromSnapshot(s.ID, s.Coordinator.Snapshot(), s.Inbox.Drain())
}

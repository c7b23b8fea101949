package booking_sessions

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ActionCentreService/internal/coordinator"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/pricing"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// OpenSessionRequest тело POST /booking-sessions
type OpenSessionRequest struct {
	CentreID    string `json:"centreId"`
	ProcedureID string `json:"procedureId,omitempty"`
}

// SelectNurseRequest тело PUT /booking-sessions/{id}/provider
type SelectNurseRequest struct {
	NurseID string `json:"nurseId"`
}

// SelectDateRequest тело PUT /booking-sessions/{id}/date
type SelectDateRequest struct {
	Date string `json:"date"` // "2026-11-02"
}

// SelectSlotRequest тело PUT /booking-sessions/{id}/slot
type SelectSlotRequest struct {
	Time string `json:"time"` // "09:00"
}

// UpdateFieldRequest тело PUT /booking-sessions/{id}/fields/{name}
type UpdateFieldRequest struct {
	Value string `json:"value"`
}

// ChangeTargetRequest тело PUT /booking-sessions/{id}/target
type ChangeTargetRequest struct {
	ProcedureID string `json:"procedureId"`
}

// TargetResponse процедура, на которую оформляется запись
type TargetResponse struct {
	ProductID   string  `json:"productId,omitempty"`
	ProcedureID string  `json:"procedureId"`
	Name        string  `json:"name"`
	UnitPrice   *string `json:"unitPrice"`
}

// DraftResponse черновик записи
type DraftResponse struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	CentreID  string          `json:"centreId"`
	NurseID   string          `json:"nurseId"`
	Date      *string         `json:"date"`
	Time      *string         `json:"time"`
	Procedure *TargetResponse `json:"procedure"`
}

// NurseResponse медсестра центра
type NurseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NotificationResponse уведомление для посетителя
type NotificationResponse struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// SessionResponse состояние формы и накопленные уведомления
type SessionResponse struct {
	ID            uuid.UUID              `json:"id"`
	Seq           uint64                 `json:"seq"`
	State         string                 `json:"state"`
	Draft         DraftResponse          `json:"draft"`
	Nurses        []NurseResponse        `json:"nurses"`
	Slots         []string               `json:"slots"`
	Notifications []NotificationResponse `json:"notifications"`
}

// ValidationResponse тело ответа 422 при незаполненных полях или отказе записи
type ValidationResponse struct {
	Message     string              `json:"message"`
	FieldErrors map[string][]string `json:"fieldErrors"`
	PageErrors  []string            `json:"pageErrors"`
}

// FromSnapshot конвертирует снимок формы в HTTP response
func FromSnapshot(id uuid.UUID, snap coordinator.Snapshot, notifications []domain.Notification) *SessionResponse {
	nurses := make([]NurseResponse, len(snap.Providers))
	for i, p := range snap.Providers {
		nurses[i] = NurseResponse{ID: p.ID, Name: p.Name}
	}

	notes := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		notes[i] = NotificationResponse{Title: n.Title, Message: n.Message, Severity: string(n.Severity)}
	}

	slots := snap.SlotStrings()
	if slots == nil {
		slots = []string{}
	}

	return &SessionResponse{
		ID:            id,
		Seq:           snap.Seq,
		State:         string(snap.State),
		Draft:         fromDraft(snap.Draft),
		Nurses:        nurses,
		Slots:         slots,
		Notifications: notes,
	}
}

func fromDraft(d domain.BookingDraft) DraftResponse {
	out := DraftResponse{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Phone:     d.Phone,
		Email:     d.Email,
		CentreID:  d.CentreID,
		NurseID:   d.ProviderID,
	}
	if d.Date != nil {
		date := types.FormatDate(*d.Date)
		out.Date = &date
	}
	if d.Slot != nil {
		slot := d.Slot.String()
		out.Time = &slot
	}
	if d.Target != nil {
		out.Procedure = &TargetResponse{
			ProductID:   d.Target.ProductID,
			ProcedureID: d.Target.ProcedureID,
			Name:        d.Target.Name,
			UnitPrice:   pricing.FormatPricePtr(d.Target.UnitPrice),
		}
	}
	return out
}

// FromValidationError конвертирует ошибку валидации черновика в тело ответа 422
func FromValidationError(verr *domain.ValidationError) *ValidationResponse {
	fields := make(map[string][]string, len(verr.Fields))
	for name, reason := range verr.Fields {
		fields[name] = []string{reason}
	}
	return &ValidationResponse{
		Message:     msgValidation,
		FieldErrors: fields,
		PageErrors:  []string{},
	}
}

// FromRejection конвертирует отказ записи в тело ответа 422
func FromRejection(rejected *domain.SubmissionRejected) *ValidationResponse {
	fields := make(map[string][]string, len(rejected.FieldErrors))
	for _, fe := range rejected.FieldErrors {
		fields[fe.Field] = append([]string(nil), fe.Messages...)
	}

	pages := rejected.PageErrors
	if pages == nil {
		pages = []string{}
	}

	return &ValidationResponse{
		Message:     rejected.Message,
		FieldErrors: fields,
		PageErrors:  pages,
	}
}

package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	createBooking "github.com/m04kA/SMC-ActionCentreService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CentreID    string `json:"centreId"`
	NurseID     string `json:"nurseId"`
	ProcedureID string `json:"procedureId"`
	VisitDate   string `json:"visitDate"` // "2026-11-02"
	VisitTime   string `json:"visitTime"` // "09:00"
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	CentreID    string `json:"centreId"`
	NurseID     string `json:"nurseId"`
	ProcedureID string `json:"procedureId"`
	VisitDate   string `json:"visitDate"`
	VisitTime   string `json:"visitTime"`
	CreatedAt   string `json:"createdAt"`
}

// RejectionResponse тело ответа 422 с ошибками полей и страницы
type RejectionResponse struct {
	Message     string              `json:"message"`
	FieldErrors map[string][]string `json:"fieldErrors"`
	PageErrors  []string            `json:"pageErrors"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время разбираются в use case, чтобы ошибки вернулись как ошибки полей.
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		CentreID:    r.CentreID,
		ProviderID:  r.NurseID,
		ProcedureID: r.ProcedureID,
		Date:        r.VisitDate,
		Time:        r.VisitTime,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		CentreID:    resp.CentreID,
		NurseID:     resp.ProviderID,
		ProcedureID: resp.ProcedureID,
		VisitDate:   types.FormatDate(resp.Date),
		VisitTime:   resp.Time,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}

// FromRejection конвертирует отказ в тело ответа 422
func FromRejection(rejected *domain.SubmissionRejected) *RejectionResponse {
	fields := make(map[string][]string, len(rejected.FieldErrors))
	for _, fe := range rejected.FieldErrors {
		fields[fe.Field] = append([]string(nil), fe.Messages...)
	}

	pages := rejected.PageErrors
	if pages == nil {
		pages = []string{}
	}

	return &RejectionResponse{
		Message:     rejected.Message,
		FieldErrors: fields,
		PageErrors:  pages,
	}
}

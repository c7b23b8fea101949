package create_booking

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// parsedRequest запрос после разбора даты и времени
type parsedRequest struct {
	date time.Time
	hour types.HourOfDay
}

// validateRequest валидирует входные данные и разбирает дату и время.
// Все ошибки полей собираются в один отказ, чтобы посетитель увидел их разом.
func validateRequest(req *Request, now time.Time) (*parsedRequest, *domain.SubmissionRejected) {
	rejected := &domain.SubmissionRejected{Message: msgRejected}
	var parsed parsedRequest

	var contact domain.ValidationError
	domain.ValidateContact(req.FirstName, req.LastName, req.Phone, req.Email, &contact)
	for _, field := range contact.FieldNames() {
		rejected.AddFieldError(field, contact.Fields[field])
	}

	if strings.TrimSpace(req.CentreID) == "" {
		rejected.AddFieldError(domain.FieldCentre, domain.MsgRequired)
	}
	if strings.TrimSpace(req.ProviderID) == "" {
		rejected.AddFieldError(domain.FieldProvider, domain.MsgRequired)
	}
	if strings.TrimSpace(req.ProcedureID) == "" {
		rejected.AddFieldError(domain.FieldTarget, domain.MsgRequired)
	}

	// Проверяем дату
	switch date, err := types.ParseDate(strings.TrimSpace(req.Date)); {
	case strings.TrimSpace(req.Date) == "":
		rejected.AddFieldError(domain.FieldDate, domain.MsgRequired)
	case err != nil:
		rejected.AddFieldError(domain.FieldDate, msgInvalidDate)
	case isDateInPast(date, now):
		rejected.AddFieldError(domain.FieldDate, msgDateInPast)
	default:
		parsed.date = date
	}

	// Проверяем время
	switch hour, err := types.ParseHourOfDay(strings.TrimSpace(req.Time)); {
	case strings.TrimSpace(req.Time) == "":
		rejected.AddFieldError(domain.FieldSlot, domain.MsgRequired)
	case err != nil:
		rejected.AddFieldError(domain.FieldSlot, msgInvalidTime)
	default:
		parsed.hour = hour
	}

	if rejected.HasDetails() {
		return nil, rejected
	}
	return &parsed, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// reject создает отказ с одной ошибкой поля
func reject(field, msg string) *domain.SubmissionRejected {
	r := &domain.SubmissionRejected{Message: msgRejected}
	r.AddFieldError(field, msg)
	return r
}

// rejectPage создает отказ с ошибкой уровня страницы
func rejectPage(msg string) *domain.SubmissionRejected {
	r := &domain.SubmissionRejected{Message: msgRejected}
	r.AddPageError(msg)
	return r
}

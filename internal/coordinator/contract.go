package coordinator

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// Backend внешние операции формы записи
type Backend interface {
	// ListProviders получает медсестёр центра вместе с рабочими окнами
	ListProviders(ctx context.Context, centreID string) ([]domain.Provider, error)
	// ListBookedVisits получает время занятых записей медсестры на дату ("HH:MM")
	ListBookedVisits(ctx context.Context, providerID string, date time.Time) ([]string, error)
	// SubmitBooking отправляет запись; бизнес-отказ возвращается как *domain.SubmissionRejected
	SubmitBooking(ctx context.Context, req domain.BookingRequest) error
}

// TargetResolver получает продукт или процедуру, на которую оформляется запись
type TargetResolver func(ctx context.Context) (*domain.BookingTarget, error)

// Notifier получатель пользовательских уведомлений
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

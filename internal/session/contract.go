package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/usecase/create_booking"
)

// ProviderLister источник медсестёр центра
type ProviderLister interface {
	ListByCentre(ctx context.Context, centreID string) ([]domain.Provider, error)
}

// VisitLister источник занятых часов медсестры
type VisitLister interface {
	ListBookedTimes(ctx context.Context, providerID string, date time.Time) ([]string, error)
}

// PriceLookup цена процедуры в прайс-листе центра
type PriceLookup interface {
	GetCentrePrice(ctx context.Context, centreID, procedureID string) (*domain.PricedItem, error)
}

// BookingCreator use case записи на приём
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Notifier общий получатель уведомлений всех сессий (лог, метрики)
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// MetricsRecorder метрики сессий
type MetricsRecorder interface {
	SetActiveSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

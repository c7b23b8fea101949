package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// ProviderRepository интерфейс репозитория медсестёр
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
}

// VisitRepository интерфейс репозитория записей на приём
type VisitRepository interface {
	ListBookedTimes(ctx context.Context, providerID string, date time.Time) ([]string, error)
	Create(ctx context.Context, v *domain.ScheduledVisit) (*domain.ScheduledVisit, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCentrePrice(ctx context.Context, centreID, procedureID string) (*domain.PricedItem, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс метрик записи на приём
type MetricsRecorder interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

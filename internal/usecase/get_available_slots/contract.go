package get_available_slots

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
	// ListBookedTimes получает время записей медсестры на дату в исходном виде ("HH:MM")
	ListBookedTimes(ctx context.Context, providerID string, date time.Time) ([]string, error)
}

// MetricsRecorder интерфейс метрик расчёта слотов
type MetricsRecorder interface {
	ObserveSlotComputation(outcome string, freeSlots int)
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

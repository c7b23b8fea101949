package visits

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// VisitRepository интерфейс репозитория записей на приём
type VisitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduledVisit, error)
	ListByProvider(ctx context.Context, providerID string, date time.Time) ([]*domain.ScheduledVisit, error)
}

// ProviderRepository интерфейс репозитория медсестёр
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

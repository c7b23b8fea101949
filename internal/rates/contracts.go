package rates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// Source источник официальных котировок (НБРБ)
type Source interface {
	FetchQuotes(ctx context.Context, currencies []domain.Currency) (map[domain.Currency]domain.RateQuote, error)
	QuoteCurrency() domain.Currency
}

// Cache общий кэш таблицы курсов между экземплярами сервиса
type Cache interface {
	Get(ctx context.Context, base domain.Currency) (*domain.ExchangeRateTable, error)
	Set(ctx context.Context, table *domain.ExchangeRateTable) error
}

// Notifier получатель пользовательских уведомлений
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Recorder метрики обновления курсов
type Recorder interface {
	ObserveRateRefresh(source, outcome string)
	SetRateTableTimestamp(t time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

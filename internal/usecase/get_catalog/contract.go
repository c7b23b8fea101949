package get_catalog

import (
	"context"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCentre(ctx context.Context, id string) (*domain.Centre, error)
	ListCentreProducts(ctx context.Context, centreID string) ([]domain.PricedItem, error)
	ListProcedures(ctx context.Context) ([]domain.PricedItem, error)
	ListCentresForProcedure(ctx context.Context, procedureID string) ([]domain.Centre, error)
	GetCentrePrice(ctx context.Context, centreID, procedureID string) (*domain.PricedItem, error)
}

// RateProvider источник текущей таблицы курсов и состояния её обновления
type RateProvider interface {
	Status() domain.RateStatus
}

// PriceNormalizer пересчёт цен в валюту отображения
type PriceNormalizer interface {
	Convert(items []domain.PricedItem, rates *domain.ExchangeRateTable, target domain.Currency) []domain.PricedItem
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

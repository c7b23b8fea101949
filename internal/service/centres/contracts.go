package centres

import (
	"context"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCentre(ctx context.Context, id string) (*domain.Centre, error)
	ListCentres(ctx context.Context, kind string) ([]domain.Centre, error)
	SearchCentres(ctx context.Context, term string, limit uint64) ([]domain.Centre, error)
	SearchProcedures(ctx context.Context, term string, limit uint64) ([]domain.PricedItem, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

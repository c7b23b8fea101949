package get_catalog

import (
	"context"

	getCatalog "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_catalog"
)

type GetCatalogUseCase interface {
	CentreProducts(ctx context.Context, centreID string, req *getCatalog.Request) (*getCatalog.ItemsResponse, error)
	Procedures(ctx context.Context, req *getCatalog.Request) (*getCatalog.ItemsResponse, error)
	ProcedureCentres(ctx context.Context, procedureID string, req *getCatalog.Request) (*getCatalog.OffersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

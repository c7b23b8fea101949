package search_catalog

import (
	"context"

	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres/models"
)

type SearchService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_centres

import (
	"context"

	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres/models"
)

type CentreService interface {
	List(ctx context.Context, req *models.ListCentresRequest) (*models.CentreListResponse, error)
	GetByID(ctx context.Context, id string) (*models.CentreResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

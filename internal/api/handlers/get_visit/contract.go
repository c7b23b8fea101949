package get_visit

import (
	"context"

	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits/models"
)

type VisitService interface {
	GetByID(ctx context.Context, id int64) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

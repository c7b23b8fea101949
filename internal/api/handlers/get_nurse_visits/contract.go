package get_nurse_visits

import (
	"context"

	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits/models"
)

type VisitService interface {
	ListByNurse(ctx context.Context, req *models.ListByNurseRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_nurses

import (
	"context"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// NurseLister источник медсестёр центра
type NurseLister interface {
	ListByCentre(ctx context.Context, centreID string) ([]domain.Provider, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

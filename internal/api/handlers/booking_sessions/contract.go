package booking_sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ActionCentreService/internal/coordinator"
	"github.com/m04kA/SMC-ActionCentreService/internal/session"
)

// SessionRegistry реестр форм записи
type SessionRegistry interface {
	Open(ctx context.Context, centreID, procedureID string) (*session.Session, error)
	Get(id uuid.UUID) (*session.Session, error)
	Delete(id uuid.UUID) bool
	TargetResolver(centreID, procedureID string) coordinator.TargetResolver
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

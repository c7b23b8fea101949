package visits

import (
	"context"
	"errors"
	"fmt"
	"strings"

	providerRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/provider"
	visitRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/visit"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits/models"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// Service сервис чтения записей на приём
type Service struct {
	visitRepo    VisitRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	visitRepo VisitRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		visitRepo:    visitRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VisitResponse, error) {
	s.logger.Info("GetByID: fetching visit id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: visit id must be positive", ErrInvalidInput)
	}

	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("GetByID: visit id=%d not found", id)
			return nil, ErrVisitNotFound
		}
		s.logger.Error("GetByID: repository error for visit id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched visit id=%d", id)
	return models.FromDomainVisit(visit), nil
}

// ListByNurse получает расписание медсестры на дату.
// Неизвестная медсестра отличается от медсестры без записей.
func (s *Service) ListByNurse(ctx context.Context, req *models.ListByNurseRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ListByNurse: fetching visits for nurse=%s, date=%s", req.NurseID, types.FormatDate(req.Date))

	if strings.TrimSpace(req.NurseID) == "" {
		return nil, fmt.Errorf("%w: nurse id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := s.providerRepo.GetByID(ctx, req.NurseID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("ListByNurse: nurse id=%s not found", req.NurseID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("ListByNurse: failed to get nurse id=%s: %v", req.NurseID, err)
		return nil, fmt.Errorf("%w: failed to get nurse: %v", ErrInternal, err)
	}

	visits, err := s.visitRepo.ListByProvider(ctx, req.NurseID, req.Date)
	if err != nil {
		s.logger.Error("ListByNurse: repository error for nurse=%s: %v", req.NurseID, err)
		return nil, fmt.Errorf("%w: ListByNurse - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByNurse: successfully fetched %d visits for nurse=%s", len(visits), req.NurseID)
	return models.FromDomainSchedule(req.NurseID, req.Date, visits), nil
}

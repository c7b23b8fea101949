package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActionCentreService/internal/availability"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// UseCase use case для получения свободных часовых слотов медсестры на дату
type UseCase struct {
	providerRepo ProviderRepository
	visitRepo    VisitRepository
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	providerRepo ProviderRepository,
	visitRepo VisitRepository,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		visitRepo:    visitRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%s, date=%s", req.ProviderID, types.FormatDate(req.Date))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем медсестру и её рабочее окно
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. На прошедшую дату записаться нельзя - свободных слотов нет
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", types.FormatDate(req.Date))
		return &Response{
			ProviderID: provider.ID,
			Date:       types.DateOnly(req.Date),
			Slots:      []types.HourOfDay{},
		}, nil
	}

	// 4. Получаем занятые часы
	visits, err := uc.visitRepo.ListBookedTimes(ctx, provider.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get visits: %v", err)
		uc.observe(outcomeError, 0)
		return nil, fmt.Errorf("%w: failed to get visits: %v", ErrInternal, err)
	}

	// 5. Вычисляем свободные часы; невыровненное окно округляется вниз до часа
	if !provider.Window.IsHourAligned() {
		uc.logger.Warn("GetAvailableSlots: working window of provider=%s is not hour-aligned (%d..%d ms), flooring",
			provider.ID, provider.Window.StartOffsetMillis, provider.Window.EndOffsetMillis)
	}
	slotSet, err := availability.FreeSlotSet(*provider, req.Date, visits)
	if err != nil {
		var parseErr *types.ParseError
		switch {
		case errors.As(err, &parseErr):
			uc.logger.Error("GetAvailableSlots: malformed visit time for provider=%s: %v", provider.ID, err)
		case errors.Is(err, domain.ErrInvalidWindow):
			uc.logger.Error("GetAvailableSlots: invalid working window for provider=%s: %v", provider.ID, err)
		default:
			uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		}
		uc.observe(outcomeError, 0)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.observe(outcomeOK, len(slotSet.Slots))
	uc.logger.Info("GetAvailableSlots: %d free slots for provider=%s, date=%s",
		len(slotSet.Slots), provider.ID, types.FormatDate(req.Date))

	return &Response{
		ProviderID: slotSet.ProviderID,
		Date:       slotSet.Date,
		Slots:      slotSet.Slots,
	}, nil
}

func (uc *UseCase) observe(outcome string, free int) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotComputation(outcome, free)
	}
}

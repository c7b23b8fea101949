package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ActionCentreService/internal/availability"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/catalog"
	providerRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/provider"
	visitRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/visit"
	"github.com/m04kA/SMC-ActionCentreService/pkg/txmanager"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// UseCase use case для записи на приём к медсестре
type UseCase struct {
	providerRepo ProviderRepository
	visitRepo    VisitRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	providerRepo ProviderRepository,
	visitRepo VisitRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		visitRepo:    visitRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case записи на приём
// Бизнес-отказы возвращаются как *domain.SubmissionRejected с ошибками полей и страницы.
// Использует сериализуемую транзакцию, чтобы два посетителя не заняли один слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: centre=%s, provider=%s, procedure=%s, date=%s, time=%s",
		req.CentreID, req.ProviderID, req.ProcedureID, req.Date, req.Time)

	// 1. Валидация входных данных
	parsed, rejected := validateRequest(req, uc.timeProvider.Now())
	if rejected != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", rejected)
		uc.observe(outcomeRejected)
		return nil, rejected
	}

	var result *domain.ScheduledVisit

	// 2. Выполняем проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Медсестра существует и работает в этом центре
		provider, err := uc.providerRepo.GetByID(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				uc.logger.Warn("CreateBooking: provider id=%s not found", req.ProviderID)
				return reject(domain.FieldProvider, msgProviderNotFound)
			}
			uc.logger.Error("CreateBooking: failed to get provider id=%s: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}
		if provider.CentreID != req.CentreID {
			uc.logger.Warn("CreateBooking: provider id=%s works at centre=%s, not %s",
				provider.ID, provider.CentreID, req.CentreID)
			return reject(domain.FieldProvider, msgProviderElsewhere)
		}

		// 2.2. Процедура есть в прайс-листе центра
		if _, err := uc.catalogRepo.GetCentrePrice(txCtx, req.CentreID, req.ProcedureID); err != nil {
			if errors.Is(err, catalogRepo.ErrPriceNotFound) {
				uc.logger.Warn("CreateBooking: procedure id=%s not offered at centre=%s", req.ProcedureID, req.CentreID)
				return reject(domain.FieldTarget, msgNotOffered)
			}
			uc.logger.Error("CreateBooking: failed to get centre price: %v", err)
			return fmt.Errorf("%w: failed to get centre price: %v", ErrInternal, err)
		}

		// 2.3. Получаем занятые часы с блокировкой (FOR UPDATE)
		visits, err := uc.visitRepo.ListBookedTimes(txCtx, provider.ID, parsed.date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get visits: %v", err)
			return fmt.Errorf("%w: failed to get visits: %v", ErrInternal, err)
		}

		// 2.4. Слот в рабочем окне и свободен
		if err := uc.checkSlot(*provider, parsed, visits); err != nil {
			return err
		}

		// 2.5. Сохраняем запись
		created, err := uc.visitRepo.Create(txCtx, &domain.ScheduledVisit{
			ProviderID:  provider.ID,
			CentreID:    req.CentreID,
			ProcedureID: req.ProcedureID,
			Date:        parsed.date,
			Time:        parsed.hour,
			FirstName:   strings.TrimSpace(req.FirstName),
			LastName:    strings.TrimSpace(req.LastName),
			Email:       strings.TrimSpace(req.Email),
			Phone:       strings.TrimSpace(req.Phone),
		})
		if err != nil {
			if errors.Is(err, visitRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s taken concurrently", parsed.hour)
				return rejectPage(msgSlotTaken)
			}
			uc.logger.Error("CreateBooking: failed to create visit: %v", err)
			return fmt.Errorf("%w: failed to create visit: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		var rejection *domain.SubmissionRejected
		if errors.As(err, &rejection) {
			uc.observe(outcomeRejected)
			return nil, rejection
		}
		// Параллельная запись на тот же слот отменила транзакцию при фиксации
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: slot %s taken concurrently: %v", req.Time, err)
			uc.observe(outcomeRejected)
			return nil, rejectPage(msgSlotTaken)
		}
		uc.observe(outcomeError)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.observe(outcomeAccepted)
	uc.logger.Info("CreateBooking: successfully created visit id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		CentreID:    result.CentreID,
		ProviderID:  result.ProviderID,
		ProcedureID: result.ProcedureID,
		Date:        result.Date,
		Time:        result.Time.String(),
		CreatedAt:   result.CreatedAt,
	}, nil
}

// checkSlot проверяет, что час попадает в рабочее окно медсестры и ещё не занят
func (uc *UseCase) checkSlot(provider domain.Provider, parsed *parsedRequest, visits []string) error {
	start, end, err := availability.WindowHours(provider.Window)
	if err != nil {
		uc.logger.Error("CreateBooking: invalid working window for provider=%s: %v", provider.ID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if h := parsed.hour.Int(); h < start || h >= end {
		uc.logger.Warn("CreateBooking: %s outside of window [%d, %d) for provider=%s",
			parsed.hour, start, end, provider.ID)
		return reject(domain.FieldSlot, msgOutsideHours)
	}

	booked, err := availability.ParseBookedHours(visits)
	if err != nil {
		uc.logger.Error("CreateBooking: malformed visit time for provider=%s: %v", provider.ID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if booked.Contains(parsed.hour) {
		uc.logger.Warn("CreateBooking: slot %s already booked for provider=%s on %s",
			parsed.hour, provider.ID, types.FormatDate(parsed.date))
		return rejectPage(msgSlotTaken)
	}

	return nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(outcome)
	}
}

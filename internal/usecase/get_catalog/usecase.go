package get_catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/catalog"
)

const (
	titleRatesFailed  = "Failed to fetch currency rates"
	titleRecalcFailed = "Price recalculation error"
	titlePriceFailed  = "Error loading price"

	msgRatesStale = "Prices are shown in the last known currency rates"
)

// UseCase use case чтения каталога с ценами в валюте посетителя.
// Все чтения используют один общий нормализатор цен и текущую таблицу курсов.
type UseCase struct {
	catalogRepo CatalogRepository
	rates       RateProvider
	normalizer  PriceNormalizer
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	rates RateProvider,
	normalizer PriceNormalizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		rates:       rates,
		normalizer:  normalizer,
		logger:      logger,
	}
}

// CentreProducts получает продукты центра
func (uc *UseCase) CentreProducts(ctx context.Context, centreID string, req *Request) (*ItemsResponse, error) {
	uc.logger.Info("GetCatalog: products of centre=%s, currency=%s", centreID, req.Currency)

	// 1. Валидация входных данных
	if strings.TrimSpace(centreID) == "" {
		return nil, fmt.Errorf("%w: centreID is required", ErrInvalidInput)
	}
	currency := uc.currency(req)

	// 2. Проверяем существование центра
	if _, err := uc.catalogRepo.GetCentre(ctx, centreID); err != nil {
		if errors.Is(err, catalogRepo.ErrCentreNotFound) {
			uc.logger.Warn("GetCatalog: centre id=%s not found", centreID)
			return nil, ErrCentreNotFound
		}
		uc.logger.Error("GetCatalog: failed to get centre id=%s: %v", centreID, err)
		return nil, fmt.Errorf("%w: failed to get centre: %v", ErrInternal, err)
	}

	// 3. Получаем продукты и пересчитываем цены
	items, err := uc.catalogRepo.ListCentreProducts(ctx, centreID)
	if err != nil {
		uc.logger.Error("GetCatalog: failed to list products of centre=%s: %v", centreID, err)
		return nil, fmt.Errorf("%w: failed to list products: %v", ErrInternal, err)
	}

	status := uc.rates.Status()
	return &ItemsResponse{
		Currency:      currency,
		Items:         uc.normalizer.Convert(items, status.Table, currency),
		Rates:         ratesInfo(status),
		Notifications: rateNotifications(status, currency),
	}, nil
}

// Procedures получает процедуры с минимальной ценой
func (uc *UseCase) Procedures(ctx context.Context, req *Request) (*ItemsResponse, error) {
	currency := uc.currency(req)
	uc.logger.Info("GetCatalog: procedures, currency=%s", currency)

	items, err := uc.catalogRepo.ListProcedures(ctx)
	if err != nil {
		uc.logger.Error("GetCatalog: failed to list procedures: %v", err)
		return nil, fmt.Errorf("%w: failed to list procedures: %v", ErrInternal, err)
	}

	status := uc.rates.Status()
	return &ItemsResponse{
		Currency:      currency,
		Items:         uc.normalizer.Convert(items, status.Table, currency),
		Rates:         ratesInfo(status),
		Notifications: rateNotifications(status, currency),
	}, nil
}

// ProcedureCentres получает центры, предлагающие процедуру, с ценой каждого центра.
// Ошибка получения цены одного центра не прерывает выдачу: цена этого центра будет nil,
// а в ответ добавляется уведомление.
func (uc *UseCase) ProcedureCentres(ctx context.Context, procedureID string, req *Request) (*OffersResponse, error) {
	currency := uc.currency(req)
	uc.logger.Info("GetCatalog: centres for procedure=%s, currency=%s", procedureID, currency)

	// 1. Валидация входных данных
	if strings.TrimSpace(procedureID) == "" {
		return nil, fmt.Errorf("%w: procedureID is required", ErrInvalidInput)
	}

	// 2. Получаем центры
	centres, err := uc.catalogRepo.ListCentresForProcedure(ctx, procedureID)
	if err != nil {
		uc.logger.Error("GetCatalog: failed to list centres for procedure=%s: %v", procedureID, err)
		return nil, fmt.Errorf("%w: failed to list centres: %v", ErrInternal, err)
	}

	// 3. Для каждого центра получаем цену; одна таблица курсов на весь ответ
	status := uc.rates.Status()
	table := status.Table
	notifications := rateNotifications(status, currency)
	offers := make([]domain.CentreOffer, 0, len(centres))
	for _, centre := range centres {
		offer := domain.CentreOffer{Centre: centre}

		price, err := uc.catalogRepo.GetCentrePrice(ctx, centre.ID, procedureID)
		if err != nil {
			uc.logger.Warn("GetCatalog: price of procedure=%s at centre=%s unavailable: %v", procedureID, centre.ID, err)
			notifications = append(notifications, domain.Notification{
				Title:    titlePriceFailed,
				Message:  fmt.Sprintf("Price at %s is unavailable", centreLabel(centre)),
				Severity: domain.SeverityWarning,
			})
		} else {
			converted := uc.normalizer.Convert([]domain.PricedItem{*price}, table, currency)
			offer.Price = &converted[0]
		}

		offers = append(offers, offer)
	}

	return &OffersResponse{
		Currency:      currency,
		Offers:        offers,
		Rates:         ratesInfo(status),
		Notifications: notifications,
	}, nil
}

func (uc *UseCase) currency(req *Request) domain.Currency {
	if req == nil || req.Currency == "" {
		return domain.BaseCurrency
	}
	return req.Currency
}

func ratesInfo(status domain.RateStatus) RatesInfo {
	return RatesInfo{FetchedAt: status.Table.FetchedAt(), Stale: status.Stale}
}

// rateNotifications уведомления о неудачном обновлении курсов и неизвестном курсе валюты отображения
func rateNotifications(status domain.RateStatus, currency domain.Currency) []domain.Notification {
	notifications := make([]domain.Notification, 0)
	if status.Stale {
		notifications = append(notifications, domain.Notification{
			Title:    titleRatesFailed,
			Message:  msgRatesStale,
			Severity: domain.SeverityWarning,
		})
	}
	if !status.Table.IsKnown(currency) {
		notifications = append(notifications, domain.Notification{
			Title:    titleRecalcFailed,
			Message:  fmt.Sprintf("Exchange rate for %s is unknown, prices are shown in %s", currency, status.Table.Base()),
			Severity: domain.SeverityWarning,
		})
	}
	return notifications
}

func centreLabel(c domain.Centre) string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

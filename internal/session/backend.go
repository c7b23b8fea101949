package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// Backend реализует coordinator.Backend поверх репозиториев и use case записи
type Backend struct {
	providers ProviderLister
	visits    VisitLister
	prices    PriceLookup
	bookings  BookingCreator
}

// NewBackend создает backend формы записи
func NewBackend(providers ProviderLister, visits VisitLister, prices PriceLookup, bookings BookingCreator) *Backend {
	return &Backend{
		providers: providers,
		visits:    visits,
		prices:    prices,
		bookings:  bookings,
	}
}

// ListProviders получает медсестёр центра
func (b *Backend) ListProviders(ctx context.Context, centreID string) ([]domain.Provider, error) {
	providers, err := b.providers.ListByCentre(ctx, centreID)
	if err != nil {
		return nil, fmt.Errorf("%w: list providers: %v", domain.ErrTransport, err)
	}
	return providers, nil
}

// ListBookedVisits получает занятые часы медсестры на дату
func (b *Backend) ListBookedVisits(ctx context.Context, providerID string, date time.Time) ([]string, error) {
	visits, err := b.visits.ListBookedTimes(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: list booked visits: %v", domain.ErrTransport, err)
	}
	return visits, nil
}

// SubmitBooking отправляет запись в use case; бизнес-отказ передается без изменений
func (b *Backend) SubmitBooking(ctx context.Context, req domain.BookingRequest) error {
	_, err := b.bookings.Execute(ctx, &create_booking.Request{
		CentreID:    req.CentreID,
		ProviderID:  req.ProviderID,
		ProcedureID: req.ProcedureID,
		Date:        types.FormatDate(req.Date),
		Time:        req.Time.String(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err == nil {
		return nil
	}

	var rejected *domain.SubmissionRejected
	if errors.As(err, &rejected) {
		return rejected
	}
	return fmt.Errorf("%w: submit booking: %v", domain.ErrTransport, err)
}

// ResolveTarget получает процедуру с ценой центра для формы записи
func (b *Backend) ResolveTarget(ctx context.Context, centreID, procedureID string) (*domain.BookingTarget, error) {
	item, err := b.prices.GetCentrePrice(ctx, centreID, procedureID)
	if err != nil {
		return nil, fmt.Errorf("resolve procedure %s at centre %s: %w", procedureID, centreID, err)
	}

	price := item.BaseUnitPrice
	return &domain.BookingTarget{
		ProductID:   item.ID,
		ProcedureID: procedureID,
		Name:        item.Name,
		UnitPrice:   &price,
	}, nil
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

var errNoPrice = errors.New("price not found")

func TestBackend_ListFailuresAreTransportErrors(t *testing.T) {
	b := NewBackend(
		&fakeProviders{err: errors.New("db down")},
		&fakeVisits{err: errors.New("db down")},
		&fakePrices{},
		&fakeBookings{},
	)

	_, err := b.ListProviders(context.Background(), "c-1")
	assert.ErrorIs(t, err, domain.ErrTransport)

	_, err = b.ListBookedVisits(context.Background(), "n-1", time.Now())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestBackend_SubmitBooking(t *testing.T) {
	bookings := &fakeBookings{}
	b := NewBackend(&fakeProviders{}, &fakeVisits{}, &fakePrices{}, bookings)

	err := b.SubmitBooking(context.Background(), domain.BookingRequest{
		CentreID:    "c-1",
		ProviderID:  "n-1",
		ProcedureID: "p-1",
		Date:        time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		Time:        types.HourOfDay(9),
		FirstName:   "Ivan",
		LastName:    "Petrov",
		Email:       "ivan@example.com",
		Phone:       "+375 29 123 45 67",
	})
	require.NoError(t, err)

	require.Len(t, bookings.reqs, 1)
	assert.Equal(t, "2026-11-02", bookings.reqs[0].Date)
	assert.Equal(t, "09:00", bookings.reqs[0].Time)
	assert.Equal(t, "p-1", bookings.reqs[0].ProcedureID)
}

func TestBackend_SubmitBooking_RejectionPassesThrough(t *testing.T) {
	rejected := &domain.SubmissionRejected{Message: "The appointment could not be scheduled"}
	rejected.AddPageError("The selected time slot is already booked")

	b := NewBackend(&fakeProviders{}, &fakeVisits{}, &fakePrices{}, &fakeBookings{err: rejected})
	err := b.SubmitBooking(context.Background(), domain.BookingRequest{})

	var got *domain.SubmissionRejected
	require.ErrorAs(t, err, &got)
	assert.Same(t, rejected, got)
	assert.NotErrorIs(t, err, domain.ErrTransport)
}

func TestBackend_SubmitBooking_InternalIsTransport(t *testing.T) {
	b := NewBackend(&fakeProviders{}, &fakeVisits{}, &fakePrices{}, &fakeBookings{err: errors.New("tx aborted")})

	err := b.SubmitBooking(context.Background(), domain.BookingRequest{})
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestBackend_ResolveTarget(t *testing.T) {
	b := NewBackend(&fakeProviders{}, &fakeVisits{}, &fakePrices{items: map[string]domain.PricedItem{"p-1": bloodTest}}, &fakeBookings{})

	target, err := b.ResolveTarget(context.Background(), "c-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "pe-1", target.ProductID)
	assert.Equal(t, "p-1", target.ProcedureID)
	assert.Equal(t, "Blood test", target.Name)
	require.NotNil(t, target.UnitPrice)
	assert.True(t, target.UnitPrice.Equal(decimal.RequireFromString("45.5")))

	_, err = b.ResolveTarget(context.Background(), "c-1", "missing")
	assert.ErrorIs(t, err, errNoPrice)
}

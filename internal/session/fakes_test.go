package session

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/usecase/create_booking"
)

type fakeProviders struct {
	providers []domain.Provider
	err       error
}

func (f *fakeProviders) ListByCentre(_ context.Context, _ string) ([]domain.Provider, error) {
	return f.providers, f.err
}

type fakeVisits struct {
	times []string
	err   error
}

func (f *fakeVisits) ListBookedTimes(_ context.Context, _ string, _ time.Time) ([]string, error) {
	return f.times, f.err
}

type fakePrices struct {
	items map[string]domain.PricedItem
	err   error
}

func (f *fakePrices) GetCentrePrice(_ context.Context, _ string, procedureID string) (*domain.PricedItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[procedureID]
	if !ok {
		return nil, errNoPrice
	}
	return &item, nil
}

type fakeBookings struct {
	mu   sync.Mutex
	reqs []create_booking.Request
	err  error
}

func (f *fakeBookings) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, *req)
	if f.err != nil {
		return nil, f.err
	}
	return &create_booking.Response{ID: int64(len(f.reqs)), CentreID: req.CentreID, ProviderID: req.ProviderID}, nil
}

type gaugeRecorder struct {
	mu   sync.Mutex
	last int
	sets int
}

func (g *gaugeRecorder) SetActiveSessions(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = n
	g.sets++
}

func (g *gaugeRecorder) value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

type collectSink struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (s *collectSink) Notify(_ context.Context, n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
}

func (s *collectSink) titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.items))
	for _, n := range s.items {
		out = append(out, n.Title)
	}
	return out
}

var (
	nurse = domain.Provider{
		ID:       "n-1",
		CentreID: "c-1",
		Name:     "Anna",
		Window:   domain.WorkingWindow{StartOffsetMillis: 9 * domain.MillisPerHour, EndOffsetMillis: 12 * domain.MillisPerHour},
	}

	bloodTest = domain.PricedItem{
		ID:            "pe-1",
		Name:          "Blood test",
		CentreID:      "c-1",
		BaseUnitPrice: decimal.RequireFromString("45.50"),
	}
)

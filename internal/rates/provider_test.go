package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/notify"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
)

type fakeSource struct {
	mu     sync.Mutex
	quotes map[domain.Currency]domain.RateQuote
	err    error
	calls  int
}

func (s *fakeSource) FetchQuotes(_ context.Context, _ []domain.Currency) (map[domain.Currency]domain.RateQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.quotes, nil
}

func (s *fakeSource) QuoteCurrency() domain.Currency {
	return domain.CurrencyBYN
}

func (s *fakeSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type fakeCache struct {
	table  *domain.ExchangeRateTable
	stored []*domain.ExchangeRateTable
}

func (c *fakeCache) Get(_ context.Context, _ domain.Currency) (*domain.ExchangeRateTable, error) {
	if c.table == nil {
		return nil, errors.New("miss")
	}
	return c.table, nil
}

func (c *fakeCache) Set(_ context.Context, table *domain.ExchangeRateTable) error {
	c.stored = append(c.stored, table)
	return nil
}

func nbrbQuotes() map[domain.Currency]domain.RateQuote {
	return map[domain.Currency]domain.RateQuote{
		domain.CurrencyUSD: {Currency: domain.CurrencyUSD, OfficialRate: 3.2, Scale: 1},
		domain.CurrencyEUR: {Currency: domain.CurrencyEUR, OfficialRate: 3.5, Scale: 1},
	}
}

func newTestProvider(source Source, cache Cache, inbox *notify.Inbox) *Provider {
	var n Notifier
	if inbox != nil {
		n = inbox
	}
	return NewProvider(source, cache, n, nil, logger.NewNop(), Options{})
}

func TestProvider_InitialTable(t *testing.T) {
	p := newTestProvider(&fakeSource{}, nil, notify.NewInbox(0))

	table := p.Current()
	require.NotNil(t, table)
	assert.True(t, table.IsKnown(domain.CurrencyUSD))
	assert.False(t, table.IsKnown(domain.CurrencyEUR))
	assert.False(t, table.IsKnown(domain.CurrencyBYN))
}

func TestProvider_RefreshSuccess(t *testing.T) {
	source := &fakeSource{quotes: nbrbQuotes()}
	cache := &fakeCache{}
	p := newTestProvider(source, cache, notify.NewInbox(0))

	require.NoError(t, p.Refresh(context.Background()))

	eur, ok := p.Current().Rate(domain.CurrencyEUR)
	require.True(t, ok)
	assert.InDelta(t, 3.2/3.5, eur, 1e-12)
	assert.Len(t, cache.stored, 1)
}

func TestProvider_FailureKeepsPreviousTable(t *testing.T) {
	source := &fakeSource{quotes: nbrbQuotes()}
	inbox := notify.NewInbox(0)
	p := newTestProvider(source, nil, inbox)

	require.NoError(t, p.Refresh(context.Background()))
	before := p.Current()

	source.setErr(errors.New("connection reset"))
	err := p.Refresh(context.Background())

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Same(t, before, p.Current())

	notes := inbox.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Failed to fetch currency rates", notes[0].Title)
	assert.Equal(t, domain.SeverityError, notes[0].Severity)
}

func TestProvider_FailureBeforeFirstLoadKeepsBaseOnly(t *testing.T) {
	source := &fakeSource{err: errors.New("timeout")}
	p := newTestProvider(source, nil, notify.NewInbox(0))

	assert.Error(t, p.Refresh(context.Background()))
	assert.False(t, p.Current().IsKnown(domain.CurrencyEUR))
	assert.True(t, p.Current().IsKnown(domain.CurrencyUSD))
}

func TestProvider_StatusStaleUntilRecovery(t *testing.T) {
	source := &fakeSource{quotes: nbrbQuotes()}
	p := newTestProvider(source, nil, nil)
	ctx := context.Background()

	status := p.Status()
	assert.False(t, status.Stale)
	assert.True(t, status.Table.FetchedAt().IsZero())

	require.NoError(t, p.Refresh(ctx))
	loaded := p.Status()
	assert.False(t, loaded.Stale)
	assert.False(t, loaded.Table.FetchedAt().IsZero())

	source.setErr(errors.New("connection reset"))
	require.Error(t, p.Refresh(ctx))
	stale := p.Status()
	assert.True(t, stale.Stale)
	assert.Contains(t, stale.LastError, "connection reset")
	assert.Same(t, loaded.Table, stale.Table)

	source.setErr(nil)
	require.NoError(t, p.Refresh(ctx))
	assert.False(t, p.Status().Stale)
	assert.Empty(t, p.Status().LastError)
}

func TestProvider_NotifiesOncePerFailureStreak(t *testing.T) {
	source := &fakeSource{err: errors.New("timeout")}
	inbox := notify.NewInbox(0)
	p := newTestProvider(source, nil, inbox)
	ctx := context.Background()

	_ = p.Refresh(ctx)
	_ = p.Refresh(ctx)
	_ = p.Refresh(ctx)
	assert.Len(t, inbox.Drain(), 1)

	source.setErr(nil)
	source.quotes = nbrbQuotes()
	require.NoError(t, p.Refresh(ctx))

	source.setErr(errors.New("timeout"))
	_ = p.Refresh(ctx)
	assert.Len(t, inbox.Drain(), 1)
}

func TestProvider_CacheHitSkipsSource(t *testing.T) {
	cached := domain.NewExchangeRateTable(domain.CurrencyUSD, map[domain.Currency]float64{
		domain.CurrencyEUR: 0.9,
	}, time.Now())
	source := &fakeSource{quotes: nbrbQuotes()}
	p := newTestProvider(source, &fakeCache{table: cached}, notify.NewInbox(0))

	require.NoError(t, p.Refresh(context.Background()))

	assert.Same(t, cached, p.Current())
	assert.Equal(t, 0, source.calls)
}

func TestProvider_Throttled(t *testing.T) {
	source := &fakeSource{quotes: nbrbQuotes()}
	p := NewProvider(source, nil, nil, nil, logger.NewNop(), Options{MinInterval: time.Hour})
	ctx := context.Background()

	require.NoError(t, p.Refresh(ctx))
	assert.ErrorIs(t, p.Refresh(ctx), ErrThrottled)
	assert.Equal(t, 1, source.calls)
}

func TestProvider_ConcurrentReadersSeeWholeTables(t *testing.T) {
	source := &fakeSource{quotes: nbrbQuotes()}
	p := newTestProvider(source, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				table := p.Current()
				// Таблица либо начальная, либо полностью загруженная
				if table.IsKnown(domain.CurrencyEUR) {
					assert.True(t, table.IsKnown(domain.CurrencyBYN))
				}
			}
		}()
	}

	for i := 0; i < 10; i++ {
		_ = p.Refresh(ctx)
	}
	wg.Wait()
}

func TestProvider_RunStopsOnCancel(t *testing.T) {
	source := &fakeSource{quotes: nbrbQuotes()}
	p := newTestProvider(source, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return p.Current().IsKnown(domain.CurrencyEUR)
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

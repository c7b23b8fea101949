package rates

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

const (
	sourceCache = "cache"
	sourceNBRB  = "nbrb"

	outcomeOK        = "ok"
	outcomeHit       = "hit"
	outcomeMiss      = "miss"
	outcomeError     = "error"
	outcomeThrottled = "throttled"

	failureTitle = "Failed to fetch currency rates"
)

// Options настройки провайдера курсов
type Options struct {
	Base       domain.Currency
	Currencies []domain.Currency
	// MinInterval минимальный интервал между обращениями к источнику; 0 - без ограничения
	MinInterval time.Duration
	Now         func() time.Time
}

// Provider хранит текущую таблицу курсов и обновляет её из источника.
// Читатели всегда получают целую таблицу: замена выполняется атомарно.
type Provider struct {
	source   Source
	cache    Cache
	notifier Notifier
	recorder Recorder
	logger   Logger

	base       domain.Currency
	currencies []domain.Currency
	now        func() time.Time
	limiter    *rate.Limiter

	table atomic.Pointer[domain.ExchangeRateTable]
	// lastFailure текст последней ошибки обновления; nil, пока обновления успешны
	lastFailure atomic.Pointer[string]

	// refreshMu сериализует обновления; failing - признак серии неудач
	refreshMu sync.Mutex
	failing   bool
}

// NewProvider создает провайдер курсов. cache, notifier и recorder могут быть nil.
func NewProvider(
	source Source,
	cache Cache,
	notifier Notifier,
	recorder Recorder,
	logger Logger,
	opts Options,
) *Provider {
	if opts.Base == "" {
		opts.Base = domain.BaseCurrency
	}
	if len(opts.Currencies) == 0 {
		opts.Currencies = domain.SupportedCurrencies
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}

	p := &Provider{
		source:     source,
		cache:      cache,
		notifier:   notifier,
		recorder:   recorder,
		logger:     logger,
		base:       opts.Base,
		currencies: opts.Currencies,
		now:        opts.Now,
		limiter:    rate.NewLimiter(limit, 1),
	}
	p.table.Store(domain.BaseOnlyTable(opts.Base))

	return p
}

// Current возвращает текущую таблицу курсов. Никогда не возвращает nil.
func (p *Provider) Current() *domain.ExchangeRateTable {
	return p.table.Load()
}

// Status возвращает текущую таблицу и признак того, что последнее обновление не удалось
func (p *Provider) Status() domain.RateStatus {
	status := domain.RateStatus{Table: p.Current()}
	if msg := p.lastFailure.Load(); msg != nil {
		status.Stale = true
		status.LastError = *msg
	}
	return status
}

// Refresh обновляет таблицу курсов.
// При ошибке прежняя таблица сохраняется, а пользователь уведомляется один раз за серию неудач.
func (p *Provider) Refresh(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	// 1. Пробуем взять таблицу из общего кэша
	if table, ok := p.fromCache(ctx); ok {
		p.swap(table)
		p.recovered()
		return nil
	}

	// 2. Ограничиваем частоту обращений к источнику
	if !p.limiter.Allow() {
		p.observe(sourceNBRB, outcomeThrottled)
		return ErrThrottled
	}

	// 3. Загружаем котировки и пересчитываем в базовую валюту
	quotes, err := p.source.FetchQuotes(ctx, p.currencies)
	if err != nil {
		return p.fail(ctx, fmt.Errorf("%w: fetch quotes: %v", domain.ErrTransport, err))
	}

	table, err := DeriveTable(quotes, p.source.QuoteCurrency(), p.base, p.now())
	if err != nil {
		return p.fail(ctx, fmt.Errorf("%w: derive table: %v", domain.ErrTransport, err))
	}

	// 4. Публикуем таблицу и сохраняем в кэш
	p.swap(table)
	p.recovered()
	p.observe(sourceNBRB, outcomeOK)
	p.toCache(ctx, table)

	p.logger.Info("Rates: refreshed table base=%s rates=%v", table.Base(), table.Rates())
	return nil
}

// Run обновляет курсы сразу и затем с периодом interval, пока не отменен ctx
func (p *Provider) Run(ctx context.Context, interval time.Duration) {
	if err := p.Refresh(ctx); err != nil {
		p.logger.Warn("Rates: initial refresh failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				p.logger.Warn("Rates: refresh failed: %v", err)
			}
		}
	}
}

func (p *Provider) swap(table *domain.ExchangeRateTable) {
	p.table.Store(table)
	if p.recorder != nil {
		p.recorder.SetRateTableTimestamp(table.FetchedAt())
	}
}

func (p *Provider) fail(ctx context.Context, err error) error {
	p.observe(sourceNBRB, outcomeError)
	p.logger.Error("Rates: %v", err)

	if !p.failing && p.notifier != nil {
		p.notifier.Notify(ctx, domain.Notification{
			Title:    failureTitle,
			Message:  "Prices are shown in the last known currency rates",
			Severity: domain.SeverityError,
		})
	}
	p.failing = true
	msg := err.Error()
	p.lastFailure.Store(&msg)

	return err
}

func (p *Provider) recovered() {
	p.failing = false
	p.lastFailure.Store(nil)
}

func (p *Provider) fromCache(ctx context.Context) (*domain.ExchangeRateTable, bool) {
	if p.cache == nil {
		return nil, false
	}

	table, err := p.cache.Get(ctx, p.base)
	if err != nil {
		p.observe(sourceCache, outcomeMiss)
		return nil, false
	}

	// Кэш не должен откатывать таблицу на более старую
	if cur := p.Current(); table.FetchedAt().Before(cur.FetchedAt()) {
		p.observe(sourceCache, outcomeMiss)
		return nil, false
	}

	p.observe(sourceCache, outcomeHit)
	return table, true
}

func (p *Provider) toCache(ctx context.Context, table *domain.ExchangeRateTable) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, table); err != nil {
		p.logger.Warn("Rates: failed to store table in cache: %v", err)
	}
}

func (p *Provider) observe(source, outcome string) {
	if p.recorder != nil {
		p.recorder.ObserveRateRefresh(source, outcome)
	}
}

package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

const keyPrefix = "rates:"

// Cache кэш таблицы курсов в Redis.
// Позволяет нескольким экземплярам сервиса не ходить в НБРБ каждый раз.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш курсов
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

type cachedTable struct {
	Base      domain.Currency             `json:"base"`
	Rates     map[domain.Currency]float64 `json:"rates"`
	FetchedAt time.Time                   `json:"fetchedAt"`
}

// Get получает таблицу курсов относительно base
func (c *Cache) Get(ctx context.Context, base domain.Currency) (*domain.ExchangeRateTable, error) {
	raw, err := c.client.Get(ctx, keyPrefix+string(base)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var stored cachedTable
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if stored.Base != base {
		return nil, fmt.Errorf("%w: base mismatch %s != %s", ErrDecode, stored.Base, base)
	}

	return domain.NewExchangeRateTable(stored.Base, stored.Rates, stored.FetchedAt), nil
}

// Set сохраняет таблицу курсов с TTL
func (c *Cache) Set(ctx context.Context, table *domain.ExchangeRateTable) error {
	raw, err := json.Marshal(cachedTable{
		Base:      table.Base(),
		Rates:     table.Rates(),
		FetchedAt: table.FetchedAt(),
	})
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, keyPrefix+string(table.Base()), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

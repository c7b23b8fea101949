package nbrb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// QuoteCurrency все курсы НБРБ выражены в белорусских рублях
const QuoteCurrency = domain.CurrencyBYN

// Client клиент API курсов валют Национального банка РБ
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента НБРБ
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRate получает официальный курс валюты по буквенному коду
func (c *Client) GetRate(ctx context.Context, code domain.Currency) (*Rate, error) {
	url := fmt.Sprintf("%s/exrates/rates/%s?parammode=2", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrCurrencyNotFound, code)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var rate Rate
	if err := json.NewDecoder(resp.Body).Decode(&rate); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if rate.Scale <= 0 || rate.OfficialRate <= 0 {
		return nil, fmt.Errorf("%w: non-positive rate for %s (scale=%d, rate=%f)",
			ErrInvalidResponse, code, rate.Scale, rate.OfficialRate)
	}

	return &rate, nil
}

// QuoteCurrency валюта, в которой выражены котировки
func (c *Client) QuoteCurrency() domain.Currency {
	return QuoteCurrency
}

// FetchQuotes получает котировки для списка валют.
// Для самой валюты котировки (BYN) запрос не выполняется.
// Любая ошибка прерывает загрузку: частичная таблица не возвращается.
func (c *Client) FetchQuotes(ctx context.Context, currencies []domain.Currency) (map[domain.Currency]domain.RateQuote, error) {
	quotes := make(map[domain.Currency]domain.RateQuote, len(currencies))

	for _, code := range currencies {
		if code == QuoteCurrency {
			continue
		}

		rate, err := c.GetRate(ctx, code)
		if err != nil {
			c.log.Warn("NBRB: failed to fetch rate for %s: %v", code, err)
			return nil, err
		}

		quotes[code] = domain.RateQuote{
			Currency:     code,
			OfficialRate: rate.OfficialRate,
			Scale:        rate.Scale,
		}
	}

	c.log.Info("NBRB: fetched %d quotes", len(quotes))
	return quotes, nil
}

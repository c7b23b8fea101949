package rates

import "errors"

var (
	// ErrMissingBaseQuote котировка базовой валюты отсутствует или некорректна
	ErrMissingBaseQuote = errors.New("rates: missing quote for base currency")

	// ErrThrottled обновление отклонено ограничителем частоты
	ErrThrottled = errors.New("rates: refresh throttled")
)

package rates

import "errors"

var (
	// ErrCacheMiss возвращается, когда таблицы курсов нет в кэше
	ErrCacheMiss = errors.New("rates.cache: miss")

	// ErrCache возвращается при ошибках Redis
	ErrCache = errors.New("rates.cache: redis error")

	// ErrDecode возвращается, когда в кэше лежит повреждённое значение
	ErrDecode = errors.New("rates.cache: failed to decode table")
)

package get_exchange_rates

import "github.com/m04kA/SMC-ActionCentreService/internal/domain"

// RateProvider источник текущей таблицы курсов
type RateProvider interface {
	Current() *domain.ExchangeRateTable
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

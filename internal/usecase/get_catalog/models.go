package get_catalog

import (
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// Request общие параметры запросов каталога
type Request struct {
	Currency domain.Currency // Валюта отображения; пустая - базовая валюта
}

// RatesInfo состояние таблицы курсов, по которой пересчитаны цены
type RatesInfo struct {
	FetchedAt time.Time // Нулевое время, если курсы ещё ни разу не загружались
	Stale     bool      // Последнее обновление курсов не удалось
}

// ItemsResponse модель ответа со списком позиций каталога
type ItemsResponse struct {
	Currency      domain.Currency     // Валюта, запрошенная для отображения
	Items         []domain.PricedItem // ConvertedPrice nil, если курс неизвестен
	Rates         RatesInfo
	Notifications []domain.Notification
}

// OffersResponse модель ответа со списком центров, предлагающих процедуру
type OffersResponse struct {
	Currency      domain.Currency
	Offers        []domain.CentreOffer // Price nil, если цену центра получить не удалось
	Rates         RatesInfo
	Notifications []domain.Notification
}

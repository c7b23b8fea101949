package get_catalog

import (
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/internal/pricing"
	getCatalog "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_catalog"
)

// ItemResponse позиция каталога. Price null, если курс валюты неизвестен.
type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code,omitempty"`
	Family      string  `json:"family,omitempty"`
	Description string  `json:"description,omitempty"`
	BasePrice   string  `json:"basePrice"`
	Price       *string `json:"price"`
}

// NotificationResponse уведомление для посетителя
type NotificationResponse struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ItemsResponse HTTP response model
type ItemsResponse struct {
	Currency       string                 `json:"currency"`
	BaseCurrency   string                 `json:"baseCurrency"`
	RatesFetchedAt *string                `json:"ratesFetchedAt"`
	RatesStale     bool                   `json:"ratesStale"`
	Items          []ItemResponse         `json:"items"`
	Notifications  []NotificationResponse `json:"notifications"`
}

// CentreResponse центр в ответе
type CentreResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	WorkingHours string  `json:"workingHours,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Street       string  `json:"street,omitempty"`
	City         string  `json:"city,omitempty"`
	PostalCode   string  `json:"postalCode,omitempty"`
	Country      string  `json:"country,omitempty"`
}

// OfferResponse центр с ценой процедуры. Price null, если цену получить не удалось.
type OfferResponse struct {
	Centre CentreResponse `json:"centre"`
	Price  *ItemResponse  `json:"price"`
}

// OffersResponse HTTP response model
type OffersResponse struct {
	Currency       string                 `json:"currency"`
	BaseCurrency   string                 `json:"baseCurrency"`
	RatesFetchedAt *string                `json:"ratesFetchedAt"`
	RatesStale     bool                   `json:"ratesStale"`
	Offers         []OfferResponse        `json:"offers"`
	Notifications  []NotificationResponse `json:"notifications"`
}

// ToUseCaseRequest разбирает валюту из query; пустая валюта означает базовую
func ToUseCaseRequest(currency string) (*getCatalog.Request, error) {
	if currency == "" {
		return &getCatalog.Request{Currency: domain.BaseCurrency}, nil
	}

	c, err := domain.ParseCurrency(currency)
	if err != nil {
		return nil, err
	}
	return &getCatalog.Request{Currency: c}, nil
}

func fromItem(item domain.PricedItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Code:        item.Code,
		Family:      item.Family,
		Description: item.Description,
		BasePrice:   pricing.FormatPrice(item.BaseUnitPrice),
		Price:       pricing.FormatPricePtr(item.ConvertedPrice),
	}
}

func fromCentre(c domain.Centre) CentreResponse {
	return CentreResponse{
		ID:           c.ID,
		Name:         c.Name,
		Kind:         c.Kind,
		WorkingHours: c.WorkingHours,
		Phone:        c.Phone,
		Email:        c.Email,
		Street:       c.Street,
		City:         c.City,
		PostalCode:   c.PostalCode,
		Country:      c.Country,
	}
}

// fetchedAt время загрузки курсов в RFC3339; nil, если курсы ещё не загружались
func fetchedAt(info getCatalog.RatesInfo) *string {
	if info.FetchedAt.IsZero() {
		return nil
	}
	s := info.FetchedAt.UTC().Format(time.RFC3339)
	return &s
}

func fromNotifications(notifications []domain.Notification) []NotificationResponse {
	notes := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		notes[i] = NotificationResponse{Title: n.Title, Message: n.Message, Severity: string(n.Severity)}
	}
	return notes
}

// FromItemsResponse конвертирует ответ use case в HTTP response
func FromItemsResponse(resp *getCatalog.ItemsResponse) *ItemsResponse {
	items := make([]ItemResponse, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = fromItem(item)
	}

	return &ItemsResponse{
		Currency:       string(resp.Currency),
		BaseCurrency:   string(domain.BaseCurrency),
		RatesFetchedAt: fetchedAt(resp.Rates),
		RatesStale:     resp.Rates.Stale,
		Items:          items,
		Notifications:  fromNotifications(resp.Notifications),
	}
}

// FromOffersResponse конвертирует ответ use case в HTTP response
func FromOffersResponse(resp *getCatalog.OffersResponse) *OffersResponse {
	offers := make([]OfferResponse, len(resp.Offers))
	for i, offer := range resp.Offers {
		offers[i] = OfferResponse{Centre: fromCentre(offer.Centre)}
		if offer.Price != nil {
			price := fromItem(*offer.Price)
			offers[i].Price = &price
		}
	}

	return &OffersResponse{
		Currency:       string(resp.Currency),
		BaseCurrency:   string(domain.BaseCurrency),
		RatesFetchedAt: fetchedAt(resp.Rates),
		RatesStale:     resp.Rates.Stale,
		Offers:         offers,
		Notifications:  fromNotifications(resp.Notifications),
	}
}

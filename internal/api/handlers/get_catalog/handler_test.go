package get_catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	getCatalog "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_catalog"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
)

type fakeUseCase struct {
	gotCurrency domain.Currency
	gotID       string

	items  *getCatalog.ItemsResponse
	offers *getCatalog.OffersResponse
	err    error
}

func (f *fakeUseCase) CentreProducts(_ context.Context, centreID string, req *getCatalog.Request) (*getCatalog.ItemsResponse, error) {
	f.gotID, f.gotCurrency = centreID, req.Currency
	return f.items, f.err
}

func (f *fakeUseCase) Procedures(_ context.Context, req *getCatalog.Request) (*getCatalog.ItemsResponse, error) {
	f.gotCurrency = req.Currency
	return f.items, f.err
}

func (f *fakeUseCase) ProcedureCentres(_ context.Context, procedureID string, req *getCatalog.Request) (*getCatalog.OffersResponse, error) {
	f.gotID, f.gotCurrency = procedureID, req.Currency
	return f.offers, f.err
}

func serve(uc GetCatalogUseCase, target string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/centres/{centreId}/products", h.HandleCentreProducts)
	router.HandleFunc("/api/v1/procedures", h.HandleProcedures)
	router.HandleFunc("/api/v1/procedures/{procedureId}/centres", h.HandleProcedureCentres)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func priced(id, base string, converted *string) domain.PricedItem {
	item := domain.PricedItem{ID: id, Name: "Blood test", BaseUnitPrice: decimal.RequireFromString(base)}
	if converted != nil {
		return item.WithConversion(decimal.RequireFromString(*converted), domain.CurrencyEUR)
	}
	return item
}

func TestHandleCentreProducts(t *testing.T) {
	eur := "84.28"
	uc := &fakeUseCase{items: &getCatalog.ItemsResponse{
		Currency: domain.CurrencyEUR,
		Items:    []domain.PricedItem{priced("pe-1", "92.34", &eur), priced("pe-2", "10", nil)},
	}}

	rec := serve(uc, "/api/v1/centres/c-1/products?currency=eur")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c-1", uc.gotID)
	assert.Equal(t, domain.CurrencyEUR, uc.gotCurrency)
	assert.JSONEq(t, `{
		"currency": "EUR",
		"baseCurrency": "USD",
		"ratesFetchedAt": null,
		"ratesStale": false,
		"notifications": [],
		"items": [
			{"id": "pe-1", "name": "Blood test", "basePrice": "92.34", "price": "84.28"},
			{"id": "pe-2", "name": "Blood test", "basePrice": "10.00", "price": null}
		]
	}`, rec.Body.String())
}

func TestHandleCentreProducts_Errors(t *testing.T) {
	rec := serve(&fakeUseCase{}, "/api/v1/centres/c-1/products?currency=GBP")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{err: getCatalog.ErrCentreNotFound}, "/api/v1/centres/c-9/products")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeUseCase{err: errors.New("db down")}, "/api/v1/centres/c-1/products")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleProcedures_DefaultsToBaseCurrency(t *testing.T) {
	uc := &fakeUseCase{items: &getCatalog.ItemsResponse{Currency: domain.BaseCurrency}}

	rec := serve(uc, "/api/v1/procedures")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.BaseCurrency, uc.gotCurrency)
	assert.JSONEq(t, `{"currency":"USD","baseCurrency":"USD","ratesFetchedAt":null,"ratesStale":false,"items":[],"notifications":[]}`, rec.Body.String())
}

func TestHandleProcedureCentres_NullPrice(t *testing.T) {
	item := priced("pe-1", "45.5", nil)
	uc := &fakeUseCase{offers: &getCatalog.OffersResponse{
		Currency: domain.BaseCurrency,
		Offers: []domain.CentreOffer{
			{Centre: domain.Centre{ID: "c-1", Name: "Minsk", Kind: domain.CentreKindAction}, Price: &item},
			{Centre: domain.Centre{ID: "c-2", Name: "Brest", Kind: domain.CentreKindAction}},
		},
	}}

	rec := serve(uc, "/api/v1/procedures/p-1/centres")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p-1", uc.gotID)
	assert.JSONEq(t, `{
		"currency": "USD",
		"baseCurrency": "USD",
		"ratesFetchedAt": null,
		"ratesStale": false,
		"notifications": [],
		"offers": [
			{"centre": {"id": "c-1", "name": "Minsk", "kind": "Action Centre"},
			 "price": {"id": "pe-1", "name": "Blood test", "basePrice": "45.50", "price": null}},
			{"centre": {"id": "c-2", "name": "Brest", "kind": "Action Centre"}, "price": null}
		]
	}`, rec.Body.String())
}

func TestHandleProcedureCentres_ReportsRatesAndPriceFailures(t *testing.T) {
	uc := &fakeUseCase{offers: &getCatalog.OffersResponse{
		Currency: domain.CurrencyEUR,
		Offers: []domain.CentreOffer{
			{Centre: domain.Centre{ID: "c-2", Name: "Brest", Kind: domain.CentreKindAction}},
		},
		Rates: getCatalog.RatesInfo{
			FetchedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
			Stale:     true,
		},
		Notifications: []domain.Notification{
			{Title: "Failed to fetch currency rates", Message: "Prices are shown in the last known currency rates", Severity: domain.SeverityWarning},
			{Title: "Error loading price", Message: "Price at Brest is unavailable", Severity: domain.SeverityWarning},
		},
	}}

	rec := serve(uc, "/api/v1/procedures/p-1/centres?currency=EUR")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"currency": "EUR",
		"baseCurrency": "USD",
		"ratesFetchedAt": "2026-10-18T09:00:00Z",
		"ratesStale": true,
		"offers": [
			{"centre": {"id": "c-2", "name": "Brest", "kind": "Action Centre"}, "price": null}
		],
		"notifications": [
			{"title": "Failed to fetch currency rates", "message": "Prices are shown in the last known currency rates", "severity": "warning"},
			{"title": "Error loading price", "message": "Price at Brest is unavailable", "severity": "warning"}
		]
	}`, rec.Body.String())
}

package models

import (
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// Типы поиска
const (
	SearchTypeCentre    = "centre"
	SearchTypeProcedure = "procedure"
)

// Request модели

// ListCentresRequest запрос списка центров
type ListCentresRequest struct {
	Kind string `json:"kind,omitempty"` // пусто = все виды
}

// SearchRequest запрос подсказок поиска
type SearchRequest struct {
	Type  string `json:"type"`
	Term  string `json:"term"`
	Limit uint64 `json:"limit,omitempty"` // 0 = DefaultSearchLimit
}

// Response модели

// CentreResponse ответ с данными центра
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

// CentreListResponse ответ со списком центров
type CentreListResponse struct {
	Centres []CentreResponse `json:"centres"`
	Total   int              `json:"total"`
}

// SuggestionResponse одна подсказка поиска
type SuggestionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
	City string `json:"city,omitempty"`
}

// SearchResponse ответ с подсказками поиска
type SearchResponse struct {
	Type        string               `json:"type"`
	Term        string               `json:"term"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// Вспомогательные функции конвертации

// FromDomainCentre конвертирует domain.Centre в CentreResponse
func FromDomainCentre(c *domain.Centre) *CentreResponse {
	if c == nil {
		return nil
	}

	return &CentreResponse{
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

// FromDomainCentreList конвертирует список центров
func FromDomainCentreList(centres []domain.Centre) *CentreListResponse {
	out := make([]CentreResponse, len(centres))
	for i := range centres {
		out[i] = *FromDomainCentre(&centres[i])
	}

	return &CentreListResponse{
		Centres: out,
		Total:   len(out),
	}
}

// CentreSuggestions конвертирует найденные центры в подсказки
func CentreSuggestions(centres []domain.Centre) []SuggestionResponse {
	out := make([]SuggestionResponse, len(centres))
	for i, c := range centres {
		out[i] = SuggestionResponse{ID: c.ID, Name: c.Name, City: c.City}
	}
	return out
}

// ProcedureSuggestions конвертирует найденные процедуры в подсказки
func ProcedureSuggestions(items []domain.PricedItem) []SuggestionResponse {
	out := make([]SuggestionResponse, len(items))
	for i, item := range items {
		out[i] = SuggestionResponse{ID: item.ID, Name: item.Name, Code: item.Code}
	}
	return out
}

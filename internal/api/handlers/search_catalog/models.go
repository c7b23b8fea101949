package search_catalog

import (
	"strconv"

	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Тип поиска по умолчанию centre.
func ToServiceRequest(searchType, term, limitStr string) (*models.SearchRequest, error) {
	req := &models.SearchRequest{
		Type: searchType,
		Term: term,
	}
	if req.Type == "" {
		req.Type = models.SearchTypeCentre
	}

	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}

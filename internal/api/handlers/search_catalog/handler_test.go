package search_catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres/models"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
)

type fakeService struct {
	got *models.SearchRequest
	err error
}

func (f *fakeService) Search(_ context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SearchResponse{
		Type:        req.Type,
		Term:        req.Term,
		Suggestions: []models.SuggestionResponse{{ID: "p-1", Name: "Blood test", Code: "BT-01"}},
	}, nil
}

func serve(svc SearchService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/search?type=procedure&q=blood&limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"type": "procedure",
		"term": "blood",
		"suggestions": [{"id":"p-1","name":"Blood test","code":"BT-01"}]
	}`, rec.Body.String())
	assert.Equal(t, uint64(3), svc.got.Limit)
}

func TestHandle_DefaultType(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/search?q=cen")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SearchTypeCentre, svc.got.Type)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "bad limit", target: "/api/v1/search?q=a&limit=-1", want: http.StatusBadRequest},
		{name: "bad type", target: "/api/v1/search?q=a&type=nurse", err: centres.ErrInvalidSearchType, want: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/search?q=a", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

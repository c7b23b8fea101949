package get_nurses

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
)

type fakeLister struct {
	providers []domain.Provider
	err       error
}

func (f *fakeLister) ListByCentre(_ context.Context, _ string) ([]domain.Provider, error) {
	return f.providers, f.err
}

func serve(lister NurseLister) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/centres/{centreId}/nurses", NewHandler(lister, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/centres/c-1/nurses", nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&fakeLister{providers: []domain.Provider{{
		ID:       "n-1",
		CentreID: "c-1",
		Name:     "Anna",
		Window:   domain.WorkingWindow{StartOffsetMillis: 32400000, EndOffsetMillis: 61200000},
	}}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"centreId": "c-1",
		"nurses": [{"id":"n-1","centreId":"c-1","name":"Anna","workdayStartMs":32400000,"workdayEndMs":61200000}]
	}`, rec.Body.String())
}

func TestHandle_EmptyAndError(t *testing.T) {
	rec := serve(&fakeLister{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"centreId":"c-1","nurses":[]}`, rec.Body.String())

	rec = serve(&fakeLister{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package get_visit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits/models"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.VisitResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.VisitResponse{ID: id, NurseID: "n-1", VisitDate: "2026-10-20", VisitTime: "11:00"}, nil
}

func serve(svc VisitService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/visits/{visitId}", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&fakeService{}, "/api/v1/visits/7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
	assert.Contains(t, rec.Body.String(), `"visitTime":"11:00"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "not a number", target: "/api/v1/visits/abc", want: http.StatusBadRequest},
		{name: "zero", target: "/api/v1/visits/0", want: http.StatusBadRequest},
		{name: "not found", target: "/api/v1/visits/9", err: visits.ErrVisitNotFound, want: http.StatusNotFound},
		{name: "internal", target: "/api/v1/visits/9", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeService{err: tt.err}, tt.target).Code)
		})
	}
}

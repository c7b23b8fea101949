package visits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/provider"
	visitRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/visit"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits/models"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

var day = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

type fakeVisits struct {
	visits []*domain.ScheduledVisit
	err    error
}

func (f *fakeVisits) GetByID(_ context.Context, id int64) (*domain.ScheduledVisit, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, v := range f.visits {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, visitRepo.ErrVisitNotFound
}

func (f *fakeVisits) ListByProvider(_ context.Context, _ string, _ time.Time) ([]*domain.ScheduledVisit, error) {
	return f.visits, f.err
}

type fakeProviders struct {
	ids map[string]bool
}

func (f *fakeProviders) GetByID(_ context.Context, id string) (*domain.Provider, error) {
	if !f.ids[id] {
		return nil, providerRepo.ErrProviderNotFound
	}
	return &domain.Provider{ID: id}, nil
}

func newService(visits *fakeVisits) *Service {
	return NewService(visits, &fakeProviders{ids: map[string]bool{"n-1": true}}, logger.NewNop())
}

func sampleVisit() *domain.ScheduledVisit {
	return &domain.ScheduledVisit{
		ID:          7,
		ProviderID:  "n-1",
		CentreID:    "c-1",
		ProcedureID: "p-1",
		Date:        day,
		Time:        types.MustParseHourOfDay("11:00"),
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
	}
}

func TestGetByID(t *testing.T) {
	svc := newService(&fakeVisits{visits: []*domain.ScheduledVisit{sampleVisit()}})

	resp, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", resp.VisitDate)
	assert.Equal(t, "11:00", resp.VisitTime)
	assert.Equal(t, "n-1", resp.NurseID)

	_, err = svc.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, ErrVisitNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_RepositoryError(t *testing.T) {
	svc := newService(&fakeVisits{err: errors.New("db down")})

	_, err := svc.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListByNurse(t *testing.T) {
	svc := newService(&fakeVisits{visits: []*domain.ScheduledVisit{sampleVisit()}})

	resp, err := svc.ListByNurse(context.Background(), &models.ListByNurseRequest{NurseID: "n-1", Date: day})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, models.ScheduleEntry{VisitID: 7, VisitTime: "11:00", CentreID: "c-1", ProcedureID: "p-1"}, resp.Visits[0])
}

func TestListByNurse_Errors(t *testing.T) {
	svc := newService(&fakeVisits{})

	_, err := svc.ListByNurse(context.Background(), &models.ListByNurseRequest{NurseID: "n-9", Date: day})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = svc.ListByNurse(context.Background(), &models.ListByNurseRequest{NurseID: "n-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByNurse(context.Background(), &models.ListByNurseRequest{Date: day})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, centre_id, name, workday_start_ms, workday_end_ms FROM nurses WHERE id = \$1`).
		WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("n-1", "c-1", "Anna", int64(32400000), int64(54000000)))

	p, err := repo.GetByID(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Provider{
		ID:       "n-1",
		CentreID: "c-1",
		Name:     "Anna",
		Window:   domain.WorkingWindow{StartOffsetMillis: 32400000, EndOffsetMillis: 54000000},
	}, *p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM nurses`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestListByCentre(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM nurses WHERE centre_id = \$1 ORDER BY name ASC`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("n-1", "c-1", "Anna", int64(32400000), int64(54000000)).
			AddRow("n-2", "c-1", "Olga", int64(28800000), int64(43200000)))

	providers, err := repo.ListByCentre(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "Olga", providers[1].Name)
	assert.Equal(t, int64(43200000), providers[1].Window.EndOffsetMillis)
}

func TestListByCentre_QueryError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM nurses`).WillReturnError(errors.New("connection refused"))

	_, err := repo.ListByCentre(context.Background(), "c-1")
	assert.ErrorIs(t, err, ErrExecQuery)
}

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemColumns = []string{"id", "name", "code", "family", "description", "centre_id", "unit_price"}

var centreRowColumns = []string{
	"id", "name", "kind", "pricebook_id", "working_hours", "phone", "email",
	"street", "city", "postal_code", "country",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestListCentreProducts(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM centres c JOIN pricebook_entries pe ON pe.pricebook_id = c.pricebook_id JOIN products p ON p.id = pe.product_id WHERE c.id = \$1 ORDER BY p.name ASC`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow("pe-1", "Blood test", "BT-01", "Lab", nil, "c-1", "100.00").
			AddRow("pe-2", "Vaccination", "VC-02", nil, "Seasonal flu", "c-1", "45.50"))

	items, err := repo.ListCentreProducts(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "pe-1", items[0].ID)
	assert.True(t, decimal.RequireFromString("100").Equal(items[0].BaseUnitPrice))
	assert.Empty(t, items[0].Description)
	assert.Equal(t, "Seasonal flu", items[1].Description)
	assert.Nil(t, items[1].ConvertedPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProcedures_MinPrice(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT p.id, p.name, p.code, p.family, p.description, '', MIN\(pe.unit_price\) FROM products p .* GROUP BY`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow("p-1", "Blood test", "BT-01", "Lab", "", "", "80.00"))

	items, err := repo.ListProcedures(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, decimal.RequireFromString("80").Equal(items[0].BaseUnitPrice))
}

func TestGetCentrePrice_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`WHERE c.id = \$1 AND p.id = \$2`).
		WithArgs("c-1", "p-9").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	_, err := repo.GetCentrePrice(context.Background(), "c-1", "p-9")
	assert.ErrorIs(t, err, ErrPriceNotFound)
}

func TestListCentresForProcedure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM centres c JOIN pricebook_entries pe .* WHERE pe.product_id = \$1 ORDER BY c.name ASC`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(centreRowColumns).
			AddRow("c-1", "Central", "Action Centre", "pb-1", "8:00-20:00", "+375170000000", nil, "Main 1", "Minsk", "220000", "BY"))

	centres, err := repo.ListCentresForProcedure(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, centres, 1)
	require.NotNil(t, centres[0].Phone)
	assert.Equal(t, "+375170000000", *centres[0].Phone)
	assert.Nil(t, centres[0].Email)
	assert.Equal(t, "Minsk", centres[0].City)
}

func TestGetCentre_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM centres c WHERE c.id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(centreRowColumns))

	_, err := repo.GetCentre(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCentreNotFound)
}

func TestListCentreProducts_QueryError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM centres c`).WillReturnError(errors.New("timeout"))

	_, err := repo.ListCentreProducts(context.Background(), "c-1")
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestListCentres_FilterByKind(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM centres c WHERE c.kind = \$1 ORDER BY c.name ASC`).
		WithArgs("Action Centre").
		WillReturnRows(sqlmock.NewRows(centreRowColumns).
			AddRow("c-1", "Central", "Action Centre", "pb-1", nil, nil, nil, nil, "Minsk", nil, nil))

	centres, err := repo.ListCentres(context.Background(), "Action Centre")
	require.NoError(t, err)
	require.Len(t, centres, 1)
	assert.Empty(t, centres[0].WorkingHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCentres_All(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM centres c ORDER BY c.name ASC$`).
		WillReturnRows(sqlmock.NewRows(centreRowColumns))

	centres, err := repo.ListCentres(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, centres)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchCentres_EscapesPattern(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`WHERE \(c.name ILIKE \$1 OR c.city ILIKE \$2\) ORDER BY c.name ASC LIMIT 10`).
		WithArgs(`%50\%\_off%`, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(centreRowColumns))

	_, err := repo.SearchCentres(context.Background(), "50%_off", 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchProcedures(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`WHERE p.is_active = \$1 AND \(p.name ILIKE \$2 OR p.code ILIKE \$3\) GROUP BY .* LIMIT 5`).
		WithArgs(true, "%blood%", "%blood%").
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow("p-1", "Blood test", "BT-01", "Lab", nil, "", "80.00"))

	items, err := repo.SearchProcedures(context.Background(), "blood", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Blood test", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

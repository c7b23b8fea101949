package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActionCentreService/pkg/psqlbuilder"
)

var centreColumns = []string{
	"c.id",
	"c.name",
	"c.kind",
	"c.pricebook_id",
	"c.working_hours",
	"c.phone",
	"c.email",
	"c.street",
	"c.city",
	"c.postal_code",
	"c.country",
}

// Repository репозиторий каталога: центры, продукты и прайс-листы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCentre получает центр по ID
func (r *Repository) GetCentre(ctx context.Context, id string) (*domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(centreColumns...).
		From("centres c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCentre - build select query: %v", ErrBuildQuery, err)
	}

	centre, err := scanCentre(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCentreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCentre - scan centre: %v", ErrScanRow, err)
	}

	return centre, nil
}

// ListCentreProducts получает продукты прайс-листа центра с ценами в базовой валюте
func (r *Repository) ListCentreProducts(ctx context.Context, centreID string) ([]domain.PricedItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"pe.id",
		"p.name",
		"p.code",
		"p.family",
		"p.description",
		"c.id",
		"pe.unit_price",
	).
		From("centres c").
		Join("pricebook_entries pe ON pe.pricebook_id = c.pricebook_id").
		Join("products p ON p.id = pe.product_id").
		Where(squirrel.Eq{"c.id": centreID}).
		OrderBy("p.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCentreProducts - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryItems(ctx, executor, "ListCentreProducts", query, args)
}

// ListProcedures получает все процедуры с минимальной ценой среди всех прайс-листов.
// Процедуры без единой цены не возвращаются.
func (r *Repository) ListProcedures(ctx context.Context) ([]domain.PricedItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.name",
		"p.code",
		"p.family",
		"p.description",
		"''",
		"MIN(pe.unit_price)",
	).
		From("products p").
		Join("pricebook_entries pe ON pe.product_id = p.id").
		Where(squirrel.Eq{"p.is_active": true}).
		GroupBy("p.id", "p.name", "p.code", "p.family", "p.description").
		OrderBy("p.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProcedures - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryItems(ctx, executor, "ListProcedures", query, args)
}

// ListCentresForProcedure получает центры, в прайс-листах которых есть процедура
func (r *Repository) ListCentresForProcedure(ctx context.Context, procedureID string) ([]domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(centreColumns...).
		From("centres c").
		Join("pricebook_entries pe ON pe.pricebook_id = c.pricebook_id").
		Where(squirrel.Eq{"pe.product_id": procedureID}).
		OrderBy("c.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCentresForProcedure - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryCentres(ctx, executor, "ListCentresForProcedure", query, args)
}

// ListCentres получает центры; пустой kind означает все виды центров
func (r *Repository) ListCentres(ctx context.Context, kind string) ([]domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(centreColumns...).
		From("centres c").
		OrderBy("c.name ASC")

	if kind != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.kind": kind})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCentres - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryCentres(ctx, executor, "ListCentres", query, args)
}

// SearchCentres ищет центры по вхождению term в название или город без учёта регистра
func (r *Repository) SearchCentres(ctx context.Context, term string, limit uint64) ([]domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pattern := likePattern(term)
	query, args, err := psqlbuilder.Select(centreColumns...).
		From("centres c").
		Where(squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.city": pattern},
		}).
		OrderBy("c.name ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SearchCentres - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryCentres(ctx, executor, "SearchCentres", query, args)
}

// SearchProcedures ищет активные процедуры по вхождению term в название или код.
// Цена в ответе минимальная среди прайс-листов, как в ListProcedures.
func (r *Repository) SearchProcedures(ctx context.Context, term string, limit uint64) ([]domain.PricedItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pattern := likePattern(term)
	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.name",
		"p.code",
		"p.family",
		"p.description",
		"''",
		"MIN(pe.unit_price)",
	).
		From("products p").
		Join("pricebook_entries pe ON pe.product_id = p.id").
		Where(squirrel.Eq{"p.is_active": true}).
		Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.code": pattern},
		}).
		GroupBy("p.id", "p.name", "p.code", "p.family", "p.description").
		OrderBy("p.name ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SearchProcedures - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryItems(ctx, executor, "SearchProcedures", query, args)
}

// GetCentrePrice получает цену процедуры в прайс-листе центра
func (r *Repository) GetCentrePrice(ctx context.Context, centreID, procedureID string) (*domain.PricedItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"pe.id",
		"p.name",
		"p.code",
		"p.family",
		"p.description",
		"c.id",
		"pe.unit_price",
	).
		From("centres c").
		Join("pricebook_entries pe ON pe.pricebook_id = c.pricebook_id").
		Join("products p ON p.id = pe.product_id").
		Where(squirrel.Eq{"c.id": centreID, "p.id": procedureID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCentrePrice - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanItem(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCentrePrice - scan price: %v", ErrScanRow, err)
	}

	return item, nil
}

func (r *Repository) queryItems(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]domain.PricedItem, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]domain.PricedItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return items, nil
}

func (r *Repository) queryCentres(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]domain.Centre, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	centres := make([]domain.Centre, 0)
	for rows.Next() {
		centre, err := scanCentre(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		centres = append(centres, *centre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return centres, nil
}

// likePattern экранирует спецсимволы LIKE и оборачивает term в %...%
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(s scanner) (*domain.PricedItem, error) {
	var item domain.PricedItem
	var code, family, description sql.NullString

	err := s.Scan(
		&item.ID,
		&item.Name,
		&code,
		&family,
		&description,
		&item.CentreID,
		&item.BaseUnitPrice,
	)
	if err != nil {
		return nil, err
	}

	item.Code = code.String
	item.Family = family.String
	item.Description = description.String

	return &item, nil
}

func scanCentre(s scanner) (*domain.Centre, error) {
	var c domain.Centre
	var workingHours, street, city, postalCode, country sql.NullString

	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Kind,
		&c.PricebookID,
		&workingHours,
		&c.Phone,
		&c.Email,
		&street,
		&city,
		&postalCode,
		&country,
	)
	if err != nil {
		return nil, err
	}

	c.WorkingHours = workingHours.String
	c.Street = street.String
	c.City = city.String
	c.PostalCode = postalCode.String
	c.Country = country.String

	return &c, nil
}

package provider

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActionCentreService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"centre_id",
	"name",
	"workday_start_ms",
	"workday_end_ms",
}

// Repository репозиторий медсестёр центров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория медсестёр
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает медсестру по ID вместе с рабочим окном
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("nurses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.CentreID,
		&p.Name,
		&p.Window.StartOffsetMillis,
		&p.Window.EndOffsetMillis,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	return &p, nil
}

// ListByCentre получает медсестёр центра, отсортированных по имени
func (r *Repository) ListByCentre(ctx context.Context, centreID string) ([]domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("nurses").
		Where(squirrel.Eq{"centre_id": centreID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCentre - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCentre - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0)
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(
			&p.ID,
			&p.CentreID,
			&p.Name,
			&p.Window.StartOffsetMillis,
			&p.Window.EndOffsetMillis,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByCentre - scan row: %v", ErrScanRow, err)
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCentre - rows error: %v", ErrScanRow, err)
	}

	return providers, nil
}

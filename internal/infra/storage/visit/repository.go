package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActionCentreService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// Коды ошибок Postgres, означающие, что слот занят параллельной записью:
// нарушение уникального индекса (nurse_id, visit_date, visit_time)
// и конфликт сериализуемой транзакции
const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
)

// Repository репозиторий записей на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBookedTimes получает время всех записей медсестры на дату в исходном виде ("HH:MM").
// Строки не разбираются: разбор и обработка ошибок формата выполняются вызывающим кодом.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы два клиента не заняли один слот.
func (r *Repository) ListBookedTimes(ctx context.Context, providerID string, date time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("visit_time").
		From("scheduled_visits").
		Where(squirrel.Eq{"nurse_id": providerID}).
		Where(squirrel.Eq{"visit_date": types.FormatDate(date)}).
		OrderBy("visit_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListBookedTimes - scan visit_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// Create сохраняет запись на приём
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, v *domain.ScheduledVisit) (*domain.ScheduledVisit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduled_visits").
		Columns(
			"nurse_id",
			"centre_id",
			"procedure_id",
			"visit_date",
			"visit_time",
			"first_name",
			"last_name",
			"email",
			"phone",
		).
		Values(
			v.ProviderID,
			v.CentreID,
			v.ProcedureID,
			types.FormatDate(v.Date),
			v.Time.String(),
			v.FirstName,
			v.LastName,
			v.Email,
			v.Phone,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == uniqueViolation || pqErr.Code == serializationFailure) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	v.CreatedAt = createdAt.Time

	return v, nil
}

var visitColumns = []string{
	"id",
	"nurse_id",
	"centre_id",
	"procedure_id",
	"visit_date",
	"visit_time",
	"first_name",
	"last_name",
	"email",
	"phone",
	"created_at",
}

// GetByID получает запись на приём по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduledVisit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("scheduled_visits").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	v, err := scanVisit(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan visit: %v", ErrScanRow, err)
	}

	return v, nil
}

// ListByProvider получает записи медсестры на дату, упорядоченные по времени
func (r *Repository) ListByProvider(ctx context.Context, providerID string, date time.Time) ([]*domain.ScheduledVisit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("scheduled_visits").
		Where(squirrel.Eq{"nurse_id": providerID}).
		Where(squirrel.Eq{"visit_date": types.FormatDate(date)}).
		OrderBy("visit_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	visits := make([]*domain.ScheduledVisit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %v", ErrScanRow, err)
		}
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %v", ErrScanRow, err)
	}

	return visits, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVisit(s scanner) (*domain.ScheduledVisit, error) {
	var v domain.ScheduledVisit
	var visitTime string
	var createdAt sql.NullTime

	err := s.Scan(
		&v.ID,
		&v.ProviderID,
		&v.CentreID,
		&v.ProcedureID,
		&v.Date,
		&visitTime,
		&v.FirstName,
		&v.LastName,
		&v.Email,
		&v.Phone,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	v.Time, err = types.ParseHourOfDay(visitTime)
	if err != nil {
		return nil, fmt.Errorf("visit id=%d: %w", v.ID, err)
	}
	v.CreatedAt = createdAt.Time

	return &v, nil
}

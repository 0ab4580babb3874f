package exceptions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	"github.com/m04kA/SMC-SitterAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SitterAvailability/pkg/psqlbuilder"
)

const table = "sitter_date_exceptions"

var columns = []string{
	"sitter_id",
	"service_type",
	"exception_date",
	"blocked",
	"ranges",
	"note",
	"updated_at",
}

// Repository репозиторий исключений по датам
// Интервалы исключения хранятся в jsonb
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetExceptions получает исключения в диапазоне дат [from, to] включительно
func (r *Repository) GetExceptions(ctx context.Context, sitterID string, serviceType domain.ServiceType, from, to string) ([]domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"sitter_id": sitterID, "service_type": string(serviceType)}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		Where(squirrel.LtOrEq{"exception_date": to}).
		OrderBy("exception_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.DateException, 0)
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetExceptions - scan exception: %v", ErrScanRow, err)
		}
		result = append(result, *exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или заменяет исключение на дату
func (r *Repository) Upsert(ctx context.Context, exc *domain.DateException) (*domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ranges := exc.Ranges
	if ranges == nil {
		ranges = []domain.TimeRange{}
	}
	rangesJSON, err := json.Marshal(ranges)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert: %v", ErrEncodeRanges, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("sitter_id", "service_type", "exception_date", "blocked", "ranges", "note").
		Values(exc.SitterID, string(exc.ServiceType), exc.Date, exc.Blocked, string(rangesJSON), exc.Note).
		Suffix(`ON CONFLICT (sitter_id, service_type, exception_date) DO UPDATE SET
			blocked = EXCLUDED.blocked,
			ranges = EXCLUDED.ranges,
			note = EXCLUDED.note,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	saved := *exc
	saved.Ranges = ranges
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}

// Delete удаляет исключение на дату
// Возвращает ErrExceptionNotFound, если удалять было нечего
func (r *Repository) Delete(ctx context.Context, sitterID string, serviceType domain.ServiceType, date string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{
			"sitter_id":      sitterID,
			"service_type":   string(serviceType),
			"exception_date": date,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

func scanException(rows *sql.Rows) (*domain.DateException, error) {
	var exc domain.DateException
	var date time.Time
	var rangesJSON []byte
	var note sql.NullString
	var updatedAt sql.NullTime

	if err := rows.Scan(
		&exc.SitterID,
		&exc.ServiceType,
		&date,
		&exc.Blocked,
		&rangesJSON,
		&note,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if len(rangesJSON) > 0 {
		if err := json.Unmarshal(rangesJSON, &exc.Ranges); err != nil {
			return nil, fmt.Errorf("decode ranges: %w", err)
		}
	}

	exc.Date = date.Format(domain.DateFormat)
	exc.Note = note.String
	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}

package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	"github.com/m04kA/SMC-SitterAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SitterAvailability/pkg/psqlbuilder"
)

// Repository читает бронирования ситтера
// Таблицей владеет сервис бронирований, здесь она только читается
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBlockingWindows получает бронирования, пересекающиеся с [from, to)
// Возвращаются только статусы, ограничивающие доступность (pending, confirmed).
// Пустой serviceTypes означает бронирования всех типов услуг.
func (r *Repository) GetBlockingWindows(ctx context.Context, sitterID string, serviceTypes []domain.ServiceType, from, to time.Time) ([]domain.BookingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		statuses[i] = string(s)
	}

	filter := squirrel.Eq{
		"sitter_id": sitterID,
		"status":    statuses,
	}
	if len(serviceTypes) > 0 {
		types := make([]string, len(serviceTypes))
		for i, st := range serviceTypes {
			types[i] = string(st)
		}
		filter["service_type"] = types
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"sitter_id",
		"service_type",
		"start_at",
		"end_at",
		"status",
	).
		From("bookings").
		Where(filter).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

func (r *Repository) scanWindows(rows *sql.Rows) ([]domain.BookingWindow, error) {
	result := make([]domain.BookingWindow, 0)

	for rows.Next() {
		var w domain.BookingWindow
		if err := rows.Scan(
			&w.ID,
			&w.SitterID,
			&w.ServiceType,
			&w.Start,
			&w.End,
			&w.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
		}
		result = append(result, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

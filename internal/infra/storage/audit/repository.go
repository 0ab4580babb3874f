package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	"github.com/m04kA/SMC-SitterAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SitterAvailability/pkg/psqlbuilder"
)

const table = "availability_audit_log"

// Filter параметры выборки журнала
type Filter struct {
	SitterID    string
	ServiceType *domain.ServiceType
	Limit       int
}

// Repository журнал изменений доступности (только вставка и чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, entry *domain.AuditEntry) (*domain.AuditEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var serviceType interface{}
	if entry.ServiceType != nil {
		serviceType = string(*entry.ServiceType)
	}
	var dateKey interface{}
	if entry.DateKey != nil {
		dateKey = *entry.DateKey
	}
	payload := entry.Payload
	if payload == "" {
		payload = "{}"
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("sitter_id", "actor_id", "action", "service_type", "date_key", "payload").
		Values(entry.SitterID, entry.ActorID, string(entry.Action), serviceType, dateKey, payload).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *entry
	saved.Payload = payload
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &saved, nil
}

// List возвращает записи журнала от новых к старым
func (r *Repository) List(ctx context.Context, filter Filter) ([]domain.AuditEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultAuditLimit
	}
	if limit > domain.MaxAuditLimit {
		limit = domain.MaxAuditLimit
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"sitter_id",
		"actor_id",
		"action",
		"service_type",
		"date_key",
		"payload",
		"created_at",
	).
		From(table).
		Where(squirrel.Eq{"sitter_id": filter.SitterID})

	if filter.ServiceType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_type": string(*filter.ServiceType)})
	}

	query, args, err := selectBuilder.
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var e domain.AuditEntry
		var serviceType, dateKey sql.NullString
		var payload []byte

		if err := rows.Scan(
			&e.ID,
			&e.SitterID,
			&e.ActorID,
			&e.Action,
			&serviceType,
			&dateKey,
			&payload,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan entry: %v", ErrScanRow, err)
		}

		if serviceType.Valid {
			st := domain.ServiceType(serviceType.String)
			e.ServiceType = &st
		}
		if dateKey.Valid {
			dk := dateKey.String
			e.DateKey = &dk
		}
		e.Payload = string(payload)

		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	"github.com/m04kA/SMC-SitterAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SitterAvailability/pkg/psqlbuilder"
)

const table = "sitter_service_configs"

// Repository репозиторий настроек услуг ситтера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfig получает настройки ситтера для типа услуги
func (r *Repository) GetConfig(ctx context.Context, sitterID string, serviceType domain.ServiceType) (*domain.ServiceConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"sitter_id",
		"service_type",
		"timezone",
		"default_duration_minutes",
		"lead_time_minutes",
		"max_advance_days",
		"capacity",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"sitter_id": sitterID, "service_type": string(serviceType)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ServiceConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.SitterID,
		&cfg.ServiceType,
		&cfg.Timezone,
		&cfg.DefaultDurationMinutes,
		&cfg.LeadTimeMinutes,
		&cfg.MaxAdvanceDays,
		&cfg.Capacity,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или обновляет настройки услуги
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ServiceConfig) (*domain.ServiceConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"sitter_id",
			"service_type",
			"timezone",
			"default_duration_minutes",
			"lead_time_minutes",
			"max_advance_days",
			"capacity",
		).
		Values(
			cfg.SitterID,
			string(cfg.ServiceType),
			cfg.Timezone,
			cfg.DefaultDurationMinutes,
			cfg.LeadTimeMinutes,
			cfg.MaxAdvanceDays,
			cfg.Capacity,
		).
		Suffix(`ON CONFLICT (sitter_id, service_type) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			lead_time_minutes = EXCLUDED.lead_time_minutes,
			max_advance_days = EXCLUDED.max_advance_days,
			capacity = EXCLUDED.capacity,
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

	saved := *cfg
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}

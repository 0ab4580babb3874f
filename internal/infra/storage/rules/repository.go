package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	"github.com/m04kA/SMC-SitterAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SitterAvailability/pkg/psqlbuilder"
)

const table = "sitter_weekly_rules"

// Repository репозиторий недельных правил доступности
// Правило хранится строками (weekday, start_minute, end_minute)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRules получает все недельные правила ситтера для типа услуги
// Дни недели без строк в результат не попадают
func (r *Repository) GetRules(ctx context.Context, sitterID string, serviceType domain.ServiceType) ([]domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "start_minute", "end_minute").
		From(table).
		Where(squirrel.Eq{"sitter_id": sitterID, "service_type": string(serviceType)}).
		OrderBy("weekday ASC", "start_minute ASC", "end_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.WeeklyRule, 0)
	index := make(map[time.Weekday]int)

	for rows.Next() {
		var weekday int
		var tr domain.TimeRange
		if err := rows.Scan(&weekday, &tr.StartMinute, &tr.EndMinute); err != nil {
			return nil, fmt.Errorf("%w: GetRules - scan rule: %v", ErrScanRow, err)
		}

		wd := time.Weekday(weekday)
		i, ok := index[wd]
		if !ok {
			result = append(result, domain.WeeklyRule{
				SitterID:    sitterID,
				ServiceType: serviceType,
				Weekday:     wd,
			})
			i = len(result) - 1
			index[wd] = i
		}
		result[i].Ranges = append(result[i].Ranges, tr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRules - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceWeekday заменяет интервалы правила на день недели
// Должен вызываться внутри транзакции, иначе удаление и вставка не атомарны
func (r *Repository) ReplaceWeekday(ctx context.Context, rule domain.WeeklyRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{
			"sitter_id":    rule.SitterID,
			"service_type": string(rule.ServiceType),
			"weekday":      int(rule.Weekday),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekday - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekday - execute delete: %v", ErrExecQuery, err)
	}

	if len(rule.Ranges) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(table).
		Columns("sitter_id", "service_type", "weekday", "start_minute", "end_minute")
	for _, tr := range rule.Ranges {
		insert = insert.Values(rule.SitterID, string(rule.ServiceType), int(rule.Weekday), tr.StartMinute, tr.EndMinute)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekday - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekday - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

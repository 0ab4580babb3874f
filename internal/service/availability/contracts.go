package availability

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	auditRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/audit"
	auditService "github.com/m04kA/SMC-SitterAvailability/internal/service/audit"
)

// ConfigRepository интерфейс репозитория настроек услуг
type ConfigRepository interface {
	GetConfig(ctx context.Context, sitterID string, serviceType domain.ServiceType) (*domain.ServiceConfig, error)
	Upsert(ctx context.Context, cfg *domain.ServiceConfig) (*domain.ServiceConfig, error)
}

// RuleRepository интерфейс репозитория недельных правил
type RuleRepository interface {
	ReplaceWeekday(ctx context.Context, rule domain.WeeklyRule) error
}

// ExceptionRepository интерфейс репозитория исключений по датам
type ExceptionRepository interface {
	Upsert(ctx context.Context, exc *domain.DateException) (*domain.DateException, error)
	Delete(ctx context.Context, sitterID string, serviceType domain.ServiceType, date string) error
}

// AuditRepository интерфейс чтения журнала изменений
type AuditRepository interface {
	List(ctx context.Context, filter auditRepo.Filter) ([]domain.AuditEntry, error)
}

// AuditRecorder интерфейс записи в журнал изменений
type AuditRecorder interface {
	Record(ctx context.Context, event auditService.Event) (bool, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

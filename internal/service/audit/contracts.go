package audit

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// AuditRepository интерфейс хранилища журнала изменений
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) (*domain.AuditEntry, error)
}

// Metrics интерфейс для метрик журнала
type Metrics interface {
	IncAuditFailure(action string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hook вызывается на каждое событие изменения, даже если запись в журнал пропущена
type Hook func(ctx context.Context, event Event)

package cache

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// ConfigReader источник настроек услуг
type ConfigReader interface {
	GetConfig(ctx context.Context, sitterID string, serviceType domain.ServiceType) (*domain.ServiceConfig, error)
}

// RuleReader источник недельных правил
type RuleReader interface {
	GetRules(ctx context.Context, sitterID string, serviceType domain.ServiceType) ([]domain.WeeklyRule, error)
}

// ExceptionReader источник исключений по датам
type ExceptionReader interface {
	GetExceptions(ctx context.Context, sitterID string, serviceType domain.ServiceType, from, to string) ([]domain.DateException, error)
}

// Metrics интерфейс для метрик кэша
type Metrics interface {
	ObserveCache(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

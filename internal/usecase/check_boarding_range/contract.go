package check_boarding_range

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// ConfigRepository интерфейс источника настроек услуг
type ConfigRepository interface {
	GetConfig(ctx context.Context, sitterID string, serviceType domain.ServiceType) (*domain.ServiceConfig, error)
}

// RuleRepository интерфейс источника недельных правил
type RuleRepository interface {
	GetRules(ctx context.Context, sitterID string, serviceType domain.ServiceType) ([]domain.WeeklyRule, error)
}

// ExceptionRepository интерфейс источника исключений по датам
type ExceptionRepository interface {
	GetExceptions(ctx context.Context, sitterID string, serviceType domain.ServiceType, from, to string) ([]domain.DateException, error)
}

// BookingRepository интерфейс источника бронирований
type BookingRepository interface {
	GetBlockingWindows(ctx context.Context, sitterID string, serviceTypes []domain.ServiceType, from, to time.Time) ([]domain.BookingWindow, error)
}

// Metrics интерфейс для метрик движка
type Metrics interface {
	ObserveBoardingCheck(bookable bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

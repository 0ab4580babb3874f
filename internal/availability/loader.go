package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// RuleReader источник недельных правил
type RuleReader interface {
	GetRules(ctx context.Context, sitterID string, serviceType domain.ServiceType) ([]domain.WeeklyRule, error)
}

// ExceptionReader источник исключений по датам
type ExceptionReader interface {
	GetExceptions(ctx context.Context, sitterID string, serviceType domain.ServiceType, from, to string) ([]domain.DateException, error)
}

// BookingReader источник бронирований; пустой serviceTypes означает все типы услуг
type BookingReader interface {
	GetBlockingWindows(ctx context.Context, sitterID string, serviceTypes []domain.ServiceType, from, to time.Time) ([]domain.BookingWindow, error)
}

// Readers источники данных для одного запроса к движку
type Readers struct {
	Rules      RuleReader
	Exceptions ExceptionReader
	Bookings   BookingReader
}

// LoadSnapshot читает правила, исключения и бронирования за дни [firstDay, lastDay] одним пакетом
// Чтения независимы и выполняются параллельно; первая ошибка отменяет остальные
func LoadSnapshot(ctx context.Context, r Readers, cfg domain.ServiceConfig, firstDay, lastDay time.Time) (*Snapshot, error) {
	var (
		rules      []domain.WeeklyRule
		exceptions []domain.DateException
		bookings   []domain.BookingWindow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rules, err = r.Rules.GetRules(gctx, cfg.SitterID, cfg.ServiceType)
		if err != nil {
			return fmt.Errorf("get rules: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		exceptions, err = r.Exceptions.GetExceptions(gctx, cfg.SitterID, cfg.ServiceType, DateKey(firstDay), DateKey(lastDay))
		if err != nil {
			return fmt.Errorf("get exceptions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		bookings, err = r.Bookings.GetBlockingWindows(gctx, cfg.SitterID, BookingScope(cfg.ServiceType), StartOfDay(firstDay), AddDays(lastDay, 1))
		if err != nil {
			return fmt.Errorf("get bookings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewSnapshot(cfg, rules, exceptions, bookings), nil
}

// WithFetchTimeout ограничивает чтение данных; d <= 0 означает без ограничения
func WithFetchTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

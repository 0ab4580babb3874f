package get_day_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	configRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/config"
)

// UseCase use case расчёта слотов на день для прогулок и дневной передержки
type UseCase struct {
	configRepo    ConfigRepository
	ruleRepo      RuleRepository
	exceptionRepo ExceptionRepository
	bookingRepo   BookingRepository
	policy        domain.Policy
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	configRepo ConfigRepository,
	ruleRepo RuleRepository,
	exceptionRepo ExceptionRepository,
	bookingRepo BookingRepository,
	policy domain.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		configRepo:    configRepo,
		ruleRepo:      ruleRepo,
		exceptionRepo: exceptionRepo,
		bookingRepo:   bookingRepo,
		policy:        policy,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case расчёта слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: sitter=%s, service=%s, date=%s", req.SitterID, req.ServiceType, req.Date)

	// 1. Валидация входных данных
	sitterID, serviceType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	fetchCtx, cancel := availability.WithFetchTimeout(ctx, uc.policy.FetchTimeout)
	defer cancel()

	// 2. Настройки услуги (из них берётся часовой пояс)
	cfg, err := uc.configRepo.GetConfig(fetchCtx, sitterID, serviceType)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		return nil, uc.fetchError(fetchCtx, "get config", err)
	}
	if cfg == nil {
		defaults := uc.policy.ConfigFor(sitterID, serviceType)
		cfg = &defaults
	}

	loc, err := availability.LoadLocation(cfg.Timezone, uc.policy.DefaultTimezone)
	if err != nil {
		uc.logger.Warn("GetDaySlots: sitter=%s has unusable timezone, using %s: %v", sitterID, uc.policy.DefaultTimezone, err)
		if loc, err = availability.LoadLocation(uc.policy.DefaultTimezone, ""); err != nil {
			return nil, fmt.Errorf("%w: default timezone: %v", ErrUnavailable, err)
		}
	}
	cfg.Timezone = loc.String()

	day, err := availability.ParseDate(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 3. Длительность слота
	duration := cfg.DefaultDurationMinutes
	if req.DurationMinutes != nil {
		duration, _ = validateDuration(*req.DurationMinutes)
	}
	if duration <= 0 {
		uc.logger.Warn("GetDaySlots: no duration configured for sitter=%s, service=%s", sitterID, serviceType)
		return nil, fmt.Errorf("%w: duration is not configured", ErrInvalidDuration)
	}

	// 4. Правила, исключения и бронирования одним пакетом
	snapshot, err := availability.LoadSnapshot(fetchCtx, availability.Readers{
		Rules:      uc.ruleRepo,
		Exceptions: uc.exceptionRepo,
		Bookings:   uc.bookingRepo,
	}, *cfg, day, day)
	if err != nil {
		return nil, uc.fetchError(fetchCtx, "load snapshot", err)
	}

	// 5. Слоты
	slots, dayReason := evaluateDay(snapshot, day, duration, uc.timeProvider.Now(), req.Locale)

	resp := &Response{
		SitterID:        sitterID,
		ServiceType:     serviceType,
		Date:            availability.DateKey(day),
		Timezone:        loc.String(),
		Config:          *cfg,
		DurationMinutes: duration,
		Slots:           slots,
		DayReason:       dayReason,
	}

	bookable := resp.BookableCount()
	uc.metrics.ObserveSlots(string(serviceType), bookable, len(slots))
	uc.logger.Info("GetDaySlots: sitter=%s, service=%s, date=%s: %d of %d slots bookable",
		sitterID, serviceType, resp.Date, bookable, len(slots))

	return resp, nil
}

// fetchError отличает истечение времени от прочих ошибок чтения
func (uc *UseCase) fetchError(fetchCtx context.Context, stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
		uc.logger.Error("GetDaySlots: %s timed out after %s: %v", stage, uc.policy.FetchTimeout, err)
		return fmt.Errorf("%w: %s: %v", ErrTimeout, stage, err)
	}
	uc.logger.Error("GetDaySlots: %s failed: %v", stage, err)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, stage, err)
}

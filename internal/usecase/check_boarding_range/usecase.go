package check_boarding_range

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	configRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/config"
)

// UseCase use case проверки диапазона дат для передержки
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

// Execute выполняет use case проверки диапазона передержки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckBoardingRange: sitter=%s, range=%s..%s", req.SitterID, req.StartDate, req.EndDate)

	// 1. Валидация входных данных
	sitterID, err := validateRequest(req, uc.policy.MaxBoardingNights)
	if err != nil {
		uc.logger.Warn("CheckBoardingRange: validation failed: %v", err)
		return nil, err
	}

	fetchCtx, cancel := availability.WithFetchTimeout(ctx, uc.policy.FetchTimeout)
	defer cancel()

	// 2. Настройки передержки (из них берётся часовой пояс)
	cfg, err := uc.configRepo.GetConfig(fetchCtx, sitterID, domain.ServiceBoarding)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		return nil, uc.fetchError(fetchCtx, "get config", err)
	}
	if cfg == nil {
		defaults := uc.policy.ConfigFor(sitterID, domain.ServiceBoarding)
		cfg = &defaults
	}

	loc, err := availability.LoadLocation(cfg.Timezone, uc.policy.DefaultTimezone)
	if err != nil {
		uc.logger.Warn("CheckBoardingRange: sitter=%s has unusable timezone, using %s: %v", sitterID, uc.policy.DefaultTimezone, err)
		if loc, err = availability.LoadLocation(uc.policy.DefaultTimezone, ""); err != nil {
			return nil, fmt.Errorf("%w: default timezone: %v", ErrUnavailable, err)
		}
	}
	cfg.Timezone = loc.String()

	start, err := availability.ParseDate(req.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate: %v", ErrInvalidRange, err)
	}
	end, err := availability.ParseDate(req.EndDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate: %v", ErrInvalidRange, err)
	}

	// 3. Правила, исключения и бронирования за весь диапазон одним пакетом
	snapshot, err := availability.LoadSnapshot(fetchCtx, availability.Readers{
		Rules:      uc.ruleRepo,
		Exceptions: uc.exceptionRepo,
		Bookings:   uc.bookingRepo,
	}, *cfg, start, end)
	if err != nil {
		return nil, uc.fetchError(fetchCtx, "load snapshot", err)
	}

	// 4. Вердикт по дням
	result := evaluateRange(snapshot, start, end, uc.timeProvider.Now(), req.Locale)

	uc.metrics.ObserveBoardingCheck(result.Bookable)
	if result.FirstBlocking != nil {
		uc.logger.Info("CheckBoardingRange: sitter=%s, range=%s..%s is not bookable, first blocked day %s (%s)",
			sitterID, result.StartDate, result.EndDate, result.FirstBlocking.Date, result.FirstBlocking.Reason.Bucket)
	} else {
		uc.logger.Info("CheckBoardingRange: sitter=%s, range=%s..%s is bookable", sitterID, result.StartDate, result.EndDate)
	}

	return &Response{
		SitterID:            sitterID,
		Timezone:            loc.String(),
		Config:              *cfg,
		BoardingRangeResult: result,
	}, nil
}

// fetchError отличает истечение времени от прочих ошибок чтения
func (uc *UseCase) fetchError(fetchCtx context.Context, stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
		uc.logger.Error("CheckBoardingRange: %s timed out after %s: %v", stage, uc.policy.FetchTimeout, err)
		return fmt.Errorf("%w: %s: %v", ErrTimeout, stage, err)
	}
	uc.logger.Error("CheckBoardingRange: %s failed: %v", stage, err)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, stage, err)
}

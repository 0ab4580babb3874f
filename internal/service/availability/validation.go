package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	engine "github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// validateSitter проверяет идентификатор ситтера и приводит его к каноничному виду
func validateSitter(sitterID string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(sitterID))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSitter, sitterID)
	}
	return id.String(), nil
}

// validateServiceType разбирает тип услуги
func validateServiceType(s string) (domain.ServiceType, error) {
	st, err := domain.ParseServiceType(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidService, err)
	}
	return st, nil
}

// parseWeekday разбирает день недели: число 0-6 (0 = воскресенье) или название
func parseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: %d is out of [0, 6]", ErrInvalidWeekday, n)
		}
		return time.Weekday(n), nil
	}
	if wd, ok := weekdayNames[s]; ok {
		return wd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// validateDate проверяет календарную дату YYYY-MM-DD
func validateDate(date string) error {
	if _, err := engine.ParseDate(date, time.UTC); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return nil
}

// validateConfigData проверяет настройки услуги
func validateConfigData(cfg *domain.ServiceConfig) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil || cfg.Timezone == "" {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, cfg.Timezone)
	}

	if cfg.ServiceType.IsPointInTime() {
		if cfg.DefaultDurationMinutes < domain.MinDurationMinutes || cfg.DefaultDurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: defaultDurationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if cfg.LeadTimeMinutes < domain.MinLeadTimeMinutes || cfg.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: leadTimeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}

	if cfg.MaxAdvanceDays < domain.MinAdvanceDays || cfg.MaxAdvanceDays > domain.MaxAdvanceDays {
		return fmt.Errorf("%w: maxAdvanceDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceDays, domain.MaxAdvanceDays)
	}

	if cfg.Capacity < domain.MinCapacity || cfg.Capacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}

	return nil
}

// clampAuditLimit приводит лимит выборки журнала к допустимому диапазону
func clampAuditLimit(limit *int) int {
	if limit == nil {
		return domain.DefaultAuditLimit
	}
	if *limit < domain.MinAuditLimit {
		return domain.MinAuditLimit
	}
	if *limit > domain.MaxAuditLimit {
		return domain.MaxAuditLimit
	}
	return *limit
}

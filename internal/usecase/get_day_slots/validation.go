package get_day_slots

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Возвращает каноничный id ситтера и тип услуги
func validateRequest(req *Request) (string, domain.ServiceType, error) {
	id, err := uuid.Parse(strings.TrimSpace(req.SitterID))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSitter, req.SitterID)
	}

	serviceType, err := domain.ParseServiceType(req.ServiceType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidService, err)
	}
	if !serviceType.IsPointInTime() {
		return "", "", fmt.Errorf("%w: %s is booked by date range, not by slots", ErrInvalidService, serviceType)
	}

	if req.DurationMinutes != nil {
		if _, err := validateDuration(*req.DurationMinutes); err != nil {
			return "", "", err
		}
	}

	if _, err := availability.ParseDate(req.Date, time.UTC); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return id.String(), serviceType, nil
}

// validateDuration проверяет длительность: конечное целое число минут в пределах суток
func validateDuration(d float64) (int, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w: must be finite", ErrInvalidDuration)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive", ErrInvalidDuration)
	}
	if d != math.Trunc(d) {
		return 0, fmt.Errorf("%w: must be a whole number of minutes", ErrInvalidDuration)
	}
	if d > domain.MinutesPerDay {
		return 0, fmt.Errorf("%w: must not exceed %d minutes", ErrInvalidDuration, domain.MinutesPerDay)
	}
	return int(d), nil
}

package check_boarding_range

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
)

// validateRequest валидирует входные данные запроса
// Возвращает каноничный id ситтера
func validateRequest(req *Request, maxNights int) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(req.SitterID))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSitter, req.SitterID)
	}

	start, err := availability.ParseDate(req.StartDate, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: startDate: %v", ErrInvalidRange, err)
	}
	end, err := availability.ParseDate(req.EndDate, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: endDate: %v", ErrInvalidRange, err)
	}

	if !end.After(start) {
		return "", fmt.Errorf("%w: endDate must be after startDate", ErrInvalidRange)
	}

	if maxNights > 0 && availability.DaysBetween(start, end) > maxNights {
		return "", fmt.Errorf("%w: range is longer than %d nights", ErrInvalidRange, maxNights)
	}

	return id.String(), nil
}

package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// ErrInvalidRanges возвращается, если набор интервалов не прошёл нормализацию
var ErrInvalidRanges = errors.New("availability: invalid ranges")

// RawRange интервал в том виде, в котором он пришёл снаружи
// Значения могут быть числами, json.Number или числовыми строками
type RawRange struct {
	StartMinute interface{} `json:"startMinute"`
	EndMinute   interface{} `json:"endMinute"`
}

// NormalizeRanges валидирует и упорядочивает интервалы
// Операция атомарна: любая ошибка отклоняет весь набор.
// Касающиеся интервалы (next.Start == prev.End) допустимы и не склеиваются.
func NormalizeRanges(raw []RawRange) ([]domain.TimeRange, error) {
	ranges := make([]domain.TimeRange, 0, len(raw))

	for i, r := range raw {
		start, err := parseMinute(r.StartMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d startMinute: %v", ErrInvalidRanges, i, err)
		}
		end, err := parseMinute(r.EndMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: range %d endMinute: %v", ErrInvalidRanges, i, err)
		}
		if end <= start {
			return nil, fmt.Errorf("%w: range %d must end after it starts (%d >= %d)", ErrInvalidRanges, i, start, end)
		}
		ranges = append(ranges, domain.TimeRange{StartMinute: start, EndMinute: end})
	}

	return ValidateRanges(ranges)
}

// ValidateRanges сортирует уже типизированные интервалы и проверяет отсутствие пересечений
func ValidateRanges(ranges []domain.TimeRange) ([]domain.TimeRange, error) {
	sorted := make([]domain.TimeRange, len(ranges))
	copy(sorted, ranges)

	for _, r := range sorted {
		if r.StartMinute < 0 || r.EndMinute > domain.MinutesPerDay || r.EndMinute <= r.StartMinute {
			return nil, fmt.Errorf("%w: [%d, %d) is not a valid range", ErrInvalidRanges, r.StartMinute, r.EndMinute)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartMinute != sorted[j].StartMinute {
			return sorted[i].StartMinute < sorted[j].StartMinute
		}
		return sorted[i].EndMinute < sorted[j].EndMinute
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartMinute < sorted[i-1].EndMinute {
			return nil, fmt.Errorf("%w: [%d, %d) overlaps [%d, %d)", ErrInvalidRanges,
				sorted[i].StartMinute, sorted[i].EndMinute, sorted[i-1].StartMinute, sorted[i-1].EndMinute)
		}
	}

	return sorted, nil
}

// parseMinute приводит слабо типизированное значение к минуте суток [0, 1440]
func parseMinute(v interface{}) (int, error) {
	var f float64

	switch val := v.(type) {
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case float32:
		f = float64(val)
	case float64:
		f = val
	case json.Number:
		parsed, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", val.String())
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", val)
		}
		f = parsed
	case nil:
		return 0, errors.New("value is missing")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("value is not finite")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	if f < 0 || f > domain.MinutesPerDay {
		return 0, fmt.Errorf("%v is out of [0, %d]", f, domain.MinutesPerDay)
	}

	return int(f), nil
}

package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// ErrInvalidDate возвращается при некорректной календарной дате
var ErrInvalidDate = errors.New("availability: invalid calendar date")

// LoadLocation загружает часовой пояс; при пустом имени используется fallback
func LoadLocation(name, fallback string) (*time.Location, error) {
	if name == "" {
		name = fallback
	}
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("availability: load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDate разбирает дату YYYY-MM-DD как начало суток в loc
// Нормализованные time.Parse даты вроде 2025-02-30 отклоняются
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if t.Format(domain.DateFormat) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DateKey возвращает дату в формате YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

// StartOfDay возвращает начало суток t в её часовом поясе
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays сдвигает дату на n календарных дней (корректно при переходе на летнее время)
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, day.Location())
}

// AtMinute возвращает момент времени day + minute минут по локальным часам
func AtMinute(day time.Time, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, minute, 0, 0, day.Location())
}

// ExistsAtMinute возвращает false, если минута суток попадает в пропуск при переходе на летнее время
// time.Date сдвигает такие минуты вперёд, и они совпадают с реально существующими
func ExistsAtMinute(day time.Time, minute int) bool {
	t := AtMinute(day, minute)
	return t.Hour()*60+t.Minute() == minute%domain.MinutesPerDay
}

// DaysInRange возвращает все даты включительного диапазона [start, end]
func DaysInRange(start, end time.Time) []time.Time {
	days := make([]time.Time, 0)
	for d := StartOfDay(start); !d.After(end); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// DaysBetween количество календарных дней от a до b
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// IsBeyondHorizon возвращает true, если day дальше maxAdvanceDays от today (0 = без ограничений)
func IsBeyondHorizon(day, today time.Time, maxAdvanceDays int) bool {
	if maxAdvanceDays <= 0 {
		return false
	}
	return DaysBetween(today, day) > maxAdvanceDays
}

// CoversFullDay возвращает true, если нормализованные интервалы непрерывно покрывают [0, 1440]
func CoversFullDay(ranges []domain.TimeRange) bool {
	cursor := 0
	for _, r := range ranges {
		if r.StartMinute > cursor {
			return false
		}
		if r.EndMinute > cursor {
			cursor = r.EndMinute
		}
	}
	return cursor >= domain.MinutesPerDay
}

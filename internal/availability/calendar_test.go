package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

func TestParseDate(t *testing.T) {
	loc, err := LoadLocation("Europe/Moscow", "UTC")
	require.NoError(t, err)

	d, err := ParseDate("2025-06-10", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, d.Location())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, "2025-06-10", DateKey(d))

	for _, bad := range []string{"", "2025-6-10", "2025-02-30", "10.06.2025", "2025-13-01", "2025-06-10T00:00:00Z"} {
		_, err := ParseDate(bad, loc)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("", "")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadLocation("", "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	_, err = LoadLocation("Mars/Olympus", "UTC")
	assert.Error(t, err)
}

func TestAtMinute_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2025-03-30: переход на летнее время в 02:00
	day := time.Date(2025, 3, 30, 0, 0, 0, 0, loc)
	assert.Equal(t, 10, AtMinute(day, 600).Hour())
	assert.Equal(t, "2025-03-31", DateKey(AtMinute(day, domain.MinutesPerDay)))
	assert.Equal(t, "2025-03-31", DateKey(AddDays(day, 1)))
	assert.Equal(t, 0, AddDays(day, 1).Hour())
}

func TestExistsAtMinute(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2025-03-09: в 02:00 часы переводятся на 03:00
	spring := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	assert.True(t, ExistsAtMinute(spring, 90))
	assert.False(t, ExistsAtMinute(spring, 120))
	assert.False(t, ExistsAtMinute(spring, 150))
	assert.True(t, ExistsAtMinute(spring, 180))
	assert.True(t, AtMinute(spring, 120).Equal(AtMinute(spring, 180)))

	// 2025-11-02: час 01:00-02:00 повторяется, но минуты существуют
	fall := time.Date(2025, 11, 2, 0, 0, 0, 0, loc)
	assert.True(t, ExistsAtMinute(fall, 60))
	assert.True(t, ExistsAtMinute(fall, 90))
	assert.True(t, ExistsAtMinute(fall, domain.MinutesPerDay))
}

func TestDaysInRange(t *testing.T) {
	start := time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	days := DaysInRange(start, end)
	require.Len(t, days, 4)
	assert.Equal(t, "2025-06-29", DateKey(days[0]))
	assert.Equal(t, "2025-07-02", DateKey(days[3]))
	assert.Equal(t, 3, DaysBetween(start, end))
	assert.Equal(t, -3, DaysBetween(end, start))
}

func TestIsBeyondHorizon(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsBeyondHorizon(today.AddDate(0, 0, 30), today, 30))
	assert.True(t, IsBeyondHorizon(today.AddDate(0, 0, 31), today, 30))
	assert.False(t, IsBeyondHorizon(today.AddDate(5, 0, 0), today, 0))
}

func TestCoversFullDay(t *testing.T) {
	assert.True(t, CoversFullDay([]domain.TimeRange{{StartMinute: 0, EndMinute: 1440}}))
	assert.True(t, CoversFullDay([]domain.TimeRange{{StartMinute: 0, EndMinute: 720}, {StartMinute: 720, EndMinute: 1440}}))
	assert.False(t, CoversFullDay([]domain.TimeRange{{StartMinute: 0, EndMinute: 700}, {StartMinute: 720, EndMinute: 1440}}))
	assert.False(t, CoversFullDay([]domain.TimeRange{{StartMinute: 60, EndMinute: 1440}}))
	assert.False(t, CoversFullDay(nil))
}

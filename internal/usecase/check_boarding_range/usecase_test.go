package check_boarding_range

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	configRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/config"
	"github.com/m04kA/SMC-SitterAvailability/pkg/logger"
)

const sitterID = "e3d2c1b0-a9f8-4e7d-8c6b-5a4f3e2d1c0b"

var moscow = mustLocation("Europe/Moscow")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type store struct {
	config     *domain.ServiceConfig
	rules      []domain.WeeklyRule
	exceptions []domain.DateException
	bookings   []domain.BookingWindow

	exceptionsErr error
	block         bool
}

func (s *store) GetConfig(_ context.Context, _ string, _ domain.ServiceType) (*domain.ServiceConfig, error) {
	if s.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	cfg := *s.config
	return &cfg, nil
}

func (s *store) GetRules(ctx context.Context, _ string, _ domain.ServiceType) ([]domain.WeeklyRule, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.rules, nil
}

func (s *store) GetExceptions(_ context.Context, _ string, _ domain.ServiceType, _, _ string) ([]domain.DateException, error) {
	return s.exceptions, s.exceptionsErr
}

func (s *store) GetBlockingWindows(_ context.Context, _ string, _ []domain.ServiceType, _, _ time.Time) ([]domain.BookingWindow, error) {
	return s.bookings, nil
}

type boardingMetrics struct{ bookable, blocked int }

func (m *boardingMetrics) ObserveBoardingCheck(bookable bool) {
	if bookable {
		m.bookable++
	} else {
		m.blocked++
	}
}

func boardingConfig() *domain.ServiceConfig {
	return &domain.ServiceConfig{
		SitterID:        sitterID,
		ServiceType:     domain.ServiceBoarding,
		Timezone:        "Europe/Moscow",
		LeadTimeMinutes: 1440,
		MaxAdvanceDays:  30,
		Capacity:        1,
	}
}

func fullWeek() []domain.WeeklyRule {
	rules := make([]domain.WeeklyRule, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		rules = append(rules, domain.WeeklyRule{
			SitterID:    sitterID,
			ServiceType: domain.ServiceBoarding,
			Weekday:     wd,
			Ranges:      []domain.TimeRange{{StartMinute: 0, EndMinute: domain.MinutesPerDay}},
		})
	}
	return rules
}

func withRule(rules []domain.WeeklyRule, wd time.Weekday, ranges ...domain.TimeRange) []domain.WeeklyRule {
	for i := range rules {
		if rules[i].Weekday == wd {
			rules[i].Ranges = ranges
		}
	}
	return rules
}

func stay(from, to string, status domain.BookingStatus) domain.BookingWindow {
	start, _ := time.ParseInLocation(domain.DateFormat, from, moscow)
	end, _ := time.ParseInLocation(domain.DateFormat, to, moscow)
	return domain.BookingWindow{
		SitterID:    sitterID,
		ServiceType: domain.ServiceBoarding,
		Start:       start,
		End:         end.AddDate(0, 0, 1),
		Status:      status,
	}
}

// понедельник 2025-06-09 12:00 по Москве
var mondayNoon = time.Date(2025, 6, 9, 12, 0, 0, 0, moscow)

func newUseCase(s *store) (*UseCase, *boardingMetrics) {
	m := &boardingMetrics{}
	uc := NewUseCase(s, s, s, s, domain.DefaultPolicy(), m, logger.Nop())
	uc.timeProvider = fixedTime{now: mondayNoon}
	return uc, m
}

func request(start, end string) *Request {
	return &Request{SitterID: sitterID, StartDate: start, EndDate: end}
}

func verdicts(resp *Response) map[string]domain.BoardingDayVerdict {
	out := make(map[string]domain.BoardingDayVerdict, len(resp.Days))
	for _, d := range resp.Days {
		out[d.Date] = d
	}
	return out
}

func TestExecute_WholeRangeBookable(t *testing.T) {
	uc, m := newUseCase(&store{config: boardingConfig(), rules: fullWeek()})

	resp, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-14"))
	require.NoError(t, err)

	assert.True(t, resp.Bookable)
	assert.Nil(t, resp.FirstBlocking)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	require.Len(t, resp.Days, 4)
	assert.Equal(t, "2025-06-11", resp.Days[0].Date)
	assert.Equal(t, "2025-06-14", resp.Days[3].Date)
	assert.Equal(t, 1, m.bookable)
}

func TestExecute_SingleBlockedDayFlipsRange(t *testing.T) {
	s := &store{
		config: boardingConfig(),
		rules:  fullWeek(),
		exceptions: []domain.DateException{
			{SitterID: sitterID, ServiceType: domain.ServiceBoarding, Date: "2025-06-12", Blocked: true},
		},
	}
	uc, m := newUseCase(s)

	resp, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-14"))
	require.NoError(t, err)

	assert.False(t, resp.Bookable)
	require.NotNil(t, resp.FirstBlocking)
	assert.Equal(t, "2025-06-12", resp.FirstBlocking.Date)
	assert.Equal(t, domain.ReasonDateException, resp.FirstBlocking.Reason.Bucket)

	days := verdicts(resp)
	assert.True(t, days["2025-06-11"].Bookable)
	assert.False(t, days["2025-06-12"].Bookable)
	assert.True(t, days["2025-06-13"].Bookable)
	assert.Equal(t, 1, m.blocked)
}

func TestExecute_DayCoverage(t *testing.T) {
	rules := fullWeek()
	rules = withRule(rules, time.Wednesday, domain.TimeRange{StartMinute: 0, EndMinute: 1200})
	rules = withRule(rules, time.Thursday, domain.TimeRange{StartMinute: 0, EndMinute: 720}, domain.TimeRange{StartMinute: 720, EndMinute: 1440})
	rules = withRule(rules, time.Saturday)
	rules = rules[1:] // воскресенья нет совсем

	s := &store{
		config: boardingConfig(),
		rules:  rules,
		exceptions: []domain.DateException{{
			SitterID: sitterID, ServiceType: domain.ServiceBoarding, Date: "2025-06-13",
			Ranges: []domain.TimeRange{{StartMinute: 0, EndMinute: 600}},
		}},
	}
	uc, _ := newUseCase(s)

	resp, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-15"))
	require.NoError(t, err)
	days := verdicts(resp)

	assert.Equal(t, domain.ReasonOutsideConfiguredHours, days["2025-06-11"].Reason.Bucket) // среда, неполный день
	assert.True(t, days["2025-06-12"].Bookable)                                             // четверг, касающиеся интервалы
	assert.Equal(t, domain.ReasonDateException, days["2025-06-13"].Reason.Bucket)           // пятница, исключение с часами
	assert.Equal(t, domain.ReasonRuleMismatch, days["2025-06-14"].Reason.Bucket)            // суббота, пустое правило
	assert.Equal(t, domain.ReasonRuleMismatch, days["2025-06-15"].Reason.Bucket)            // воскресенье, правила нет

	assert.Equal(t, "2025-06-11", resp.FirstBlocking.Date)
}

func TestExecute_LeadTimeOnlyOnStartDay(t *testing.T) {
	uc, _ := newUseCase(&store{config: boardingConfig(), rules: fullWeek()})

	resp, err := uc.Execute(context.Background(), request("2025-06-09", "2025-06-11"))
	require.NoError(t, err)

	assert.False(t, resp.Bookable)
	days := verdicts(resp)
	assert.Equal(t, domain.ReasonLeadTimeViolation, days["2025-06-09"].Reason.Bucket)
	assert.True(t, days["2025-06-10"].Bookable)
	assert.True(t, days["2025-06-11"].Bookable)

	// now + 24 часа = вторник 12:00, передержка со вторника начинается раньше
	resp, err = uc.Execute(context.Background(), request("2025-06-10", "2025-06-11"))
	require.NoError(t, err)
	assert.False(t, resp.Bookable)
	assert.Equal(t, "2025-06-10", resp.FirstBlocking.Date)
	assert.Equal(t, domain.ReasonLeadTimeViolation, resp.FirstBlocking.Reason.Bucket)

	resp, err = uc.Execute(context.Background(), request("2025-06-11", "2025-06-12"))
	require.NoError(t, err)
	assert.True(t, resp.Bookable)
}

func TestExecute_LeadTimeNotRoundedToMidnight(t *testing.T) {
	uc, _ := newUseCase(&store{config: boardingConfig(), rules: fullWeek()})
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 9, 23, 59, 0, 0, moscow)}

	// до 00:00 вторника осталась минута при минимальном сроке в сутки
	resp, err := uc.Execute(context.Background(), request("2025-06-10", "2025-06-11"))
	require.NoError(t, err)
	assert.False(t, resp.Bookable)
	days := verdicts(resp)
	require.NotNil(t, days["2025-06-10"].Reason)
	assert.Equal(t, domain.ReasonLeadTimeViolation, days["2025-06-10"].Reason.Bucket)
	assert.True(t, days["2025-06-11"].Bookable)

	// 00:00 среды позже 23:59 вторника
	resp, err = uc.Execute(context.Background(), request("2025-06-11", "2025-06-12"))
	require.NoError(t, err)
	assert.True(t, resp.Bookable)
}

func TestExecute_LeadTimeWinsOverBooking(t *testing.T) {
	s := &store{
		config:   boardingConfig(),
		rules:    fullWeek(),
		bookings: []domain.BookingWindow{stay("2025-06-09", "2025-06-09", domain.StatusConfirmed)},
	}
	uc, _ := newUseCase(s)

	resp, err := uc.Execute(context.Background(), request("2025-06-09", "2025-06-10"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonLeadTimeViolation, resp.FirstBlocking.Reason.Bucket)
}

func TestExecute_BoardingBookings(t *testing.T) {
	s := &store{
		config: boardingConfig(),
		rules:  fullWeek(),
		bookings: []domain.BookingWindow{
			stay("2025-06-12", "2025-06-13", domain.StatusConfirmed),
			stay("2025-06-15", "2025-06-15", domain.StatusPending),
			stay("2025-06-16", "2025-06-16", domain.StatusDeclined),
		},
	}
	uc, _ := newUseCase(s)

	resp, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-16"))
	require.NoError(t, err)
	days := verdicts(resp)

	assert.True(t, days["2025-06-11"].Bookable)
	assert.Equal(t, domain.ReasonExistingBooking, days["2025-06-12"].Reason.Bucket)
	assert.Equal(t, domain.ReasonExistingBooking, days["2025-06-13"].Reason.Bucket)
	assert.True(t, days["2025-06-14"].Bookable)
	assert.Equal(t, domain.ReasonPendingBooking, days["2025-06-15"].Reason.Bucket)
	assert.True(t, days["2025-06-16"].Bookable)
}

func TestExecute_OtherServiceBookingsIgnored(t *testing.T) {
	walk := stay("2025-06-12", "2025-06-12", domain.StatusConfirmed)
	walk.ServiceType = domain.ServiceWalk
	walk.Start = walk.Start.Add(10 * time.Hour)
	walk.End = walk.Start.Add(30 * time.Minute)

	uc, _ := newUseCase(&store{config: boardingConfig(), rules: fullWeek(), bookings: []domain.BookingWindow{walk}})

	resp, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-13"))
	require.NoError(t, err)
	assert.True(t, resp.Bookable)
}

func TestExecute_Idempotent(t *testing.T) {
	s := &store{
		config:   boardingConfig(),
		rules:    fullWeek(),
		bookings: []domain.BookingWindow{stay("2025-06-13", "2025-06-13", domain.StatusPending)},
	}
	uc, _ := newUseCase(s)

	first, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-14"))
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-14"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.False(t, first.Bookable)
}

func TestExecute_BeyondHorizon(t *testing.T) {
	cfg := boardingConfig()
	cfg.MaxAdvanceDays = 3
	uc, _ := newUseCase(&store{config: cfg, rules: fullWeek()})

	resp, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-13"))
	require.NoError(t, err)
	days := verdicts(resp)

	assert.True(t, days["2025-06-12"].Bookable)
	assert.Equal(t, domain.ReasonOther, days["2025-06-13"].Reason.Bucket)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newUseCase(&store{config: boardingConfig(), rules: fullWeek()})

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "start equals end", req: request("2025-06-10", "2025-06-10"), want: ErrInvalidRange},
		{name: "end before start", req: request("2025-06-12", "2025-06-10"), want: ErrInvalidRange},
		{name: "bad start", req: request("2025-13-01", "2025-06-10"), want: ErrInvalidRange},
		{name: "bad end", req: request("2025-06-10", "tomorrow"), want: ErrInvalidRange},
		{name: "too long", req: request("2025-06-10", "2025-12-31"), want: ErrInvalidRange},
		{name: "bad sitter", req: &Request{SitterID: "sitter-1", StartDate: "2025-06-10", EndDate: "2025-06-11"}, want: ErrInvalidSitter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, resp)
		})
	}
}

func TestExecute_DefaultsWithoutConfig(t *testing.T) {
	uc, _ := newUseCase(&store{rules: fullWeek()})

	resp, err := uc.Execute(context.Background(), request("2025-06-12", "2025-06-13"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.Equal(t, domain.DefaultBoardingLeadTimeMinutes, resp.Config.LeadTimeMinutes)
	assert.True(t, resp.Bookable)
}

func TestExecute_BackendFailures(t *testing.T) {
	uc, _ := newUseCase(&store{config: boardingConfig(), exceptionsErr: errors.New("too many connections")})
	_, err := uc.Execute(context.Background(), request("2025-06-11", "2025-06-12"))
	assert.ErrorIs(t, err, ErrUnavailable)

	uc, _ = newUseCase(&store{config: boardingConfig(), block: true})
	uc.policy.FetchTimeout = 20 * time.Millisecond
	_, err = uc.Execute(context.Background(), request("2025-06-11", "2025-06-12"))
	assert.ErrorIs(t, err, ErrTimeout)
}

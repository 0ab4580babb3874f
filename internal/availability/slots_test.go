package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

func TestGenerateCandidates(t *testing.T) {
	ranges := []domain.TimeRange{{StartMinute: 540, EndMinute: 660}, {StartMinute: 700, EndMinute: 745}}

	got := GenerateCandidates(ranges, 30)
	assert.Equal(t, []domain.TimeRange{
		{StartMinute: 540, EndMinute: 570},
		{StartMinute: 570, EndMinute: 600},
		{StartMinute: 600, EndMinute: 630},
		{StartMinute: 630, EndMinute: 660},
		{StartMinute: 700, EndMinute: 730},
	}, got)

	assert.Empty(t, GenerateCandidates(ranges, 240))
	assert.Empty(t, GenerateCandidates(ranges, 0))
}

func TestConflictCause(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return AtMinute(day, min) }

	walk := domain.ServiceWalk
	confirmed := domain.BookingWindow{ServiceType: walk, Start: at(600), End: at(630), Status: domain.StatusConfirmed}
	pending := domain.BookingWindow{ServiceType: walk, Start: at(600), End: at(660), Status: domain.StatusPending}
	cancelled := domain.BookingWindow{ServiceType: walk, Start: at(600), End: at(630), Status: domain.StatusCancelledByOwner}
	sitting := domain.BookingWindow{ServiceType: domain.ServiceDaySitting, Start: at(600), End: at(1020), Status: domain.StatusPending}

	assert.Equal(t, domain.CauseBookingConfirmed, ConflictCause([]domain.BookingWindow{confirmed}, walk, at(600), at(630), 1))
	assert.Equal(t, domain.CauseBookingPending, ConflictCause([]domain.BookingWindow{pending}, walk, at(630), at(660), 1))
	assert.Equal(t, domain.CauseBookingConfirmed, ConflictCause([]domain.BookingWindow{pending, confirmed}, walk, at(600), at(630), 1))
	assert.Equal(t, domain.CauseNone, ConflictCause([]domain.BookingWindow{cancelled}, walk, at(600), at(630), 1))

	// касание границами не конфликт
	assert.Equal(t, domain.CauseNone, ConflictCause([]domain.BookingWindow{confirmed}, walk, at(630), at(660), 1))
	assert.Equal(t, domain.CauseNone, ConflictCause([]domain.BookingWindow{confirmed}, walk, at(570), at(600), 1))

	// вместимость
	assert.Equal(t, domain.CauseNone, ConflictCause([]domain.BookingWindow{confirmed}, walk, at(600), at(630), 2))
	assert.Equal(t, domain.CauseBookingConfirmed, ConflictCause([]domain.BookingWindow{confirmed, pending}, walk, at(600), at(630), 2))

	// бронирование другой услуги занимает ситтера целиком, вместимость не помогает
	assert.Equal(t, domain.CauseBookingPending, ConflictCause([]domain.BookingWindow{sitting}, walk, at(900), at(930), 3))
	assert.Equal(t, domain.CauseBookingConfirmed, ConflictCause([]domain.BookingWindow{sitting, confirmed}, walk, at(600), at(630), 3))
	assert.Equal(t, domain.CauseNone, ConflictCause([]domain.BookingWindow{sitting}, walk, at(1020), at(1050), 1))
}

func TestBookingScope(t *testing.T) {
	assert.Nil(t, BookingScope(domain.ServiceWalk))
	assert.Nil(t, BookingScope(domain.ServiceDaySitting))
	assert.Equal(t, []domain.ServiceType{domain.ServiceBoarding}, BookingScope(domain.ServiceBoarding))
}

func TestSnapshot_ResolveDay(t *testing.T) {
	cfg := domain.ServiceConfig{ServiceType: domain.ServiceWalk}
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	wednesday := AddDays(tuesday, 1)
	thursday := AddDays(tuesday, 2)

	s := NewSnapshot(cfg,
		[]domain.WeeklyRule{
			{ServiceType: domain.ServiceWalk, Weekday: time.Tuesday, Ranges: []domain.TimeRange{{StartMinute: 540, EndMinute: 600}}},
			{ServiceType: domain.ServiceWalk, Weekday: time.Wednesday, Ranges: []domain.TimeRange{{StartMinute: 540, EndMinute: 600}}},
			{ServiceType: domain.ServiceBoarding, Weekday: time.Thursday, Ranges: []domain.TimeRange{{StartMinute: 0, EndMinute: 1440}}},
		},
		[]domain.DateException{
			{ServiceType: domain.ServiceWalk, Date: "2025-06-11", Blocked: true},
		},
		[]domain.BookingWindow{
			{ServiceType: domain.ServiceWalk, Status: domain.StatusConfirmed},
			{ServiceType: domain.ServiceWalk, Status: domain.StatusDeclined},
			{ServiceType: domain.ServiceDaySitting, Status: domain.StatusConfirmed},
		},
	)

	plan := s.ResolveDay(tuesday)
	assert.Equal(t, SourceRule, plan.Source)
	assert.False(t, plan.IsEmpty())

	plan = s.ResolveDay(wednesday)
	assert.Equal(t, SourceException, plan.Source)
	assert.True(t, plan.IsEmpty())
	assert.Equal(t, domain.CauseExceptionBlock, EmptyDayCause(plan))

	plan = s.ResolveDay(thursday)
	assert.Equal(t, SourceNone, plan.Source)
	assert.Equal(t, domain.CauseRuleGap, EmptyDayCause(plan))

	// прогулку ограничивают подтверждённые бронирования любых услуг
	assert.Len(t, s.Bookings, 2)

	boarding := NewSnapshot(domain.ServiceConfig{ServiceType: domain.ServiceBoarding}, nil, nil,
		[]domain.BookingWindow{
			{ServiceType: domain.ServiceBoarding, Status: domain.StatusPending},
			{ServiceType: domain.ServiceWalk, Status: domain.StatusConfirmed},
		},
	)
	require.Len(t, boarding.Bookings, 1)
	assert.Equal(t, domain.ServiceBoarding, boarding.Bookings[0].ServiceType)
}

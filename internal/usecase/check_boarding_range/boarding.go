package check_boarding_range

import (
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// evaluateRange выносит вердикт по каждому дню диапазона [start, end]
// День доступен только целиком: интервалы должны покрывать сутки без разрывов.
// Порядок проверок дня: время до начала (только первый день), бронирования, исключение или правило, горизонт.
func evaluateRange(
	snapshot *availability.Snapshot,
	start, end time.Time,
	now time.Time,
	locale string,
) domain.BoardingRangeResult {
	cfg := snapshot.Config
	loc := start.Location()

	today := availability.StartOfDay(now.In(loc))
	// передержка начинается в 00:00 первого дня по времени ситтера
	leadTimeViolated := start.Before(availability.LeadTimeBoundary(now, loc, cfg.LeadTime()))

	result := domain.BoardingRangeResult{
		StartDate: availability.DateKey(start),
		EndDate:   availability.DateKey(end),
		Bookable:  true,
		Days:      make([]domain.BoardingDayVerdict, 0),
	}

	for _, day := range availability.DaysInRange(start, end) {
		var cause domain.Cause
		if leadTimeViolated && day.Equal(start) {
			cause = domain.CauseLeadTime
		} else {
			cause = availability.ConflictCause(snapshot.Bookings, cfg.ServiceType, day, availability.AddDays(day, 1), cfg.Capacity)
			if cause == domain.CauseNone {
				cause = dayCoverageCause(snapshot.ResolveDay(day))
			}
			if cause == domain.CauseNone && availability.IsBeyondHorizon(day, today, cfg.MaxAdvanceDays) {
				cause = domain.CauseBeyondHorizon
			}
		}

		verdict := domain.BoardingDayVerdict{
			Date:     availability.DateKey(day),
			Bookable: cause == domain.CauseNone,
		}
		if !verdict.Bookable {
			verdict.Reason = availability.ClassifyPtr(cause, locale)
			result.Bookable = false
		}
		result.Days = append(result.Days, verdict)
	}

	for i := range result.Days {
		if !result.Days[i].Bookable {
			first := result.Days[i]
			result.FirstBlocking = &first
			break
		}
	}

	return result
}

// dayCoverageCause проверяет, что день доступен целиком
func dayCoverageCause(plan availability.DayPlan) domain.Cause {
	if plan.IsEmpty() {
		return availability.EmptyDayCause(plan)
	}
	if availability.CoversFullDay(plan.Ranges) {
		return domain.CauseNone
	}
	if plan.Source == availability.SourceException {
		return domain.CauseExceptionHours
	}
	return domain.CauseOutsideHours
}

package get_day_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// evaluateDay нарезает день на слоты и проверяет каждый кандидат
// Порядок проверок (первое совпадение побеждает): время до начала, бронирования, горизонт бронирования.
// Слот, начало которого выпадает на пропущенный час перехода на летнее время, недоступен как вне рабочих часов.
// Если кандидатов нет, возвращается причина для всего дня.
func evaluateDay(
	snapshot *availability.Snapshot,
	day time.Time,
	durationMinutes int,
	now time.Time,
	locale string,
) ([]domain.Slot, *domain.Reason) {
	slots := make([]domain.Slot, 0)
	cfg := snapshot.Config

	plan := snapshot.ResolveDay(day)
	if plan.IsEmpty() {
		return slots, availability.ClassifyPtr(availability.EmptyDayCause(plan), locale)
	}

	candidates := availability.GenerateCandidates(plan.Ranges, durationMinutes)
	if len(candidates) == 0 {
		return slots, availability.ClassifyPtr(domain.CauseOutsideHours, locale)
	}

	loc := day.Location()
	earliest := availability.LeadTimeBoundary(now, loc, cfg.LeadTime())
	today := availability.StartOfDay(now.In(loc))
	beyondHorizon := availability.IsBeyondHorizon(day, today, cfg.MaxAdvanceDays)
	dateKey := availability.DateKey(day)

	for _, c := range candidates {
		start := availability.AtMinute(day, c.StartMinute)
		end := availability.AtMinute(day, c.EndMinute)

		cause := domain.CauseNone
		if !availability.ExistsAtMinute(day, c.StartMinute) {
			cause = domain.CauseOutsideHours
		} else if start.Before(earliest) {
			cause = domain.CauseLeadTime
		} else if conflict := availability.ConflictCause(snapshot.Bookings, cfg.ServiceType, start, end, cfg.Capacity); conflict != domain.CauseNone {
			cause = conflict
		} else if beyondHorizon {
			cause = domain.CauseBeyondHorizon
		}

		slot := domain.Slot{
			Date:        dateKey,
			StartMinute: c.StartMinute,
			EndMinute:   c.EndMinute,
			Bookable:    cause == domain.CauseNone,
		}
		if !slot.Bookable {
			slot.Reason = availability.ClassifyPtr(cause, locale)
		}
		slots = append(slots, slot)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartMinute < slots[j].StartMinute
	})

	return slots, nil
}

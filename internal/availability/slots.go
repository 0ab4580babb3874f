package availability

import (
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// GenerateCandidates нарезает интервалы на слоты фиксированной длины
// Шаг равен длительности, хвост, не помещающийся в интервал, отбрасывается
func GenerateCandidates(ranges []domain.TimeRange, durationMinutes int) []domain.TimeRange {
	candidates := make([]domain.TimeRange, 0)
	if durationMinutes <= 0 {
		return candidates
	}

	for _, r := range ranges {
		for start := r.StartMinute; start+durationMinutes <= r.EndMinute; start += durationMinutes {
			candidates = append(candidates, domain.TimeRange{
				StartMinute: start,
				EndMinute:   start + durationMinutes,
			})
		}
	}

	return candidates
}

// ConflictCause проверяет пересечение интервала [start, end) с бронированиями
// Вместимость учитывается только для бронирований того же типа услуги serviceType;
// бронирование другого типа занимает ситтера целиком и конфликтует при любом пересечении.
// Подтверждённое бронирование приоритетнее ожидающего.
func ConflictCause(bookings []domain.BookingWindow, serviceType domain.ServiceType, start, end time.Time, capacity int) domain.Cause {
	if capacity <= 0 {
		capacity = domain.DefaultCapacity
	}

	overlapping := 0
	confirmed := false
	for i := range bookings {
		if !bookings[i].IsBlocking() || !bookings[i].Overlaps(start, end) {
			continue
		}
		if bookings[i].ServiceType != serviceType {
			overlapping = capacity
		} else {
			overlapping++
		}
		if bookings[i].IsConfirmed() {
			confirmed = true
		}
	}

	if overlapping < capacity {
		return domain.CauseNone
	}
	if confirmed {
		return domain.CauseBookingConfirmed
	}
	return domain.CauseBookingPending
}

// LeadTimeBoundary возвращает самый ранний допустимый момент начала бронирования
func LeadTimeBoundary(now time.Time, loc *time.Location, leadTime time.Duration) time.Time {
	return now.In(loc).Add(leadTime)
}

package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByOwner  BookingStatus = "cancelled_by_owner"
	StatusCancelledBySitter BookingStatus = "cancelled_by_sitter"
	StatusDeclined          BookingStatus = "declined"
	StatusNoShow            BookingStatus = "no_show"
)

// BookingWindow бронирование ситтера, интервал [Start, End)
// Для передержки Start/End - границы суток в локальном времени ситтера
type BookingWindow struct {
	ID          string
	SitterID    string
	ServiceType ServiceType
	Start       time.Time
	End         time.Time
	Status      BookingStatus
}

// IsBlocking возвращает true, если бронирование ограничивает доступность
func (b *BookingWindow) IsBlocking() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsConfirmed возвращает true для подтверждённого бронирования
func (b *BookingWindow) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Overlaps проверяет пересечение с интервалом [start, end)
// Бронирование, заканчивающееся ровно в момент начала интервала, не пересекается с ним
func (b *BookingWindow) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

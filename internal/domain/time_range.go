package domain

import "time"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 1440

// TimeRange интервал внутри одних суток в локальном времени ситтера, [StartMinute, EndMinute)
type TimeRange struct {
	StartMinute int `json:"startMinute"`
	EndMinute   int `json:"endMinute"`
}

// Duration возвращает длительность интервала в минутах
func (r TimeRange) Duration() int {
	return r.EndMinute - r.StartMinute
}

// Overlaps возвращает true, если интервалы пересекаются (касание границами не считается пересечением)
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.StartMinute < other.EndMinute && other.StartMinute < r.EndMinute
}

// WeeklyRule регулярная доступность на день недели для одного типа услуги
// Пустой Ranges означает, что в этот день недели ситтер недоступен
type WeeklyRule struct {
	SitterID    string
	ServiceType ServiceType
	Weekday     time.Weekday
	Ranges      []TimeRange
}

// DateException переопределение доступности на конкретную дату
// Исключение без интервалов - блокировка на весь день
type DateException struct {
	SitterID    string
	ServiceType ServiceType
	Date        string // YYYY-MM-DD в локальном времени ситтера
	Blocked     bool
	Ranges      []TimeRange
	Note        string
	UpdatedAt   time.Time
}

// IsFullDayBlock возвращает true, если исключение полностью закрывает день
func (e *DateException) IsFullDayBlock() bool {
	return e.Blocked || len(e.Ranges) == 0
}

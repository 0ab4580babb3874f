package availability

import (
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// DaySource откуда взята доступность дня
type DaySource int

const (
	SourceNone DaySource = iota
	SourceRule
	SourceException
)

// DayPlan итоговая базовая доступность одного дня
type DayPlan struct {
	Date    time.Time
	Source  DaySource
	Blocked bool
	Ranges  []domain.TimeRange
}

// IsEmpty возвращает true, если в день нет ни одного интервала
func (p DayPlan) IsEmpty() bool {
	return p.Blocked || len(p.Ranges) == 0
}

// Snapshot данные ситтера, прочитанные одним пакетом на запрос
type Snapshot struct {
	Config     domain.ServiceConfig
	Rules      map[time.Weekday]domain.WeeklyRule
	Exceptions map[string]domain.DateException
	Bookings   []domain.BookingWindow
}

// NewSnapshot индексирует правила и исключения
func NewSnapshot(cfg domain.ServiceConfig, rules []domain.WeeklyRule, exceptions []domain.DateException, bookings []domain.BookingWindow) *Snapshot {
	s := &Snapshot{
		Config:     cfg,
		Rules:      make(map[time.Weekday]domain.WeeklyRule, len(rules)),
		Exceptions: make(map[string]domain.DateException, len(exceptions)),
		Bookings:   make([]domain.BookingWindow, 0, len(bookings)),
	}
	for _, r := range rules {
		if r.ServiceType == cfg.ServiceType {
			s.Rules[r.Weekday] = r
		}
	}
	for _, e := range exceptions {
		if e.ServiceType == cfg.ServiceType {
			s.Exceptions[e.Date] = e
		}
	}
	scope := BookingScope(cfg.ServiceType)
	for _, b := range bookings {
		if b.IsBlocking() && inScope(scope, b.ServiceType) {
			s.Bookings = append(s.Bookings, b)
		}
	}
	return s
}

// BookingScope типы услуг, чьи бронирования ограничивают serviceType
// Прогулка и дневная няня занимают ситтера целиком, их ограничивают бронирования любого типа (nil).
// Передержку ограничивают только другие передержки.
func BookingScope(serviceType domain.ServiceType) []domain.ServiceType {
	if serviceType.IsPointInTime() {
		return nil
	}
	return []domain.ServiceType{serviceType}
}

func inScope(scope []domain.ServiceType, serviceType domain.ServiceType) bool {
	if len(scope) == 0 {
		return true
	}
	for _, st := range scope {
		if st == serviceType {
			return true
		}
	}
	return false
}

// ResolveDay определяет базовую доступность дня
// Исключение на дату полностью заменяет недельное правило
func (s *Snapshot) ResolveDay(day time.Time) DayPlan {
	plan := DayPlan{Date: day}

	if exc, ok := s.Exceptions[DateKey(day)]; ok {
		plan.Source = SourceException
		plan.Blocked = exc.IsFullDayBlock()
		if !plan.Blocked {
			plan.Ranges = exc.Ranges
		}
		return plan
	}

	if rule, ok := s.Rules[day.Weekday()]; ok {
		plan.Source = SourceRule
		plan.Ranges = rule.Ranges
	}

	return plan
}

// EmptyDayCause причина отсутствия доступности для пустого дня
func EmptyDayCause(plan DayPlan) domain.Cause {
	if plan.Source == SourceException {
		return domain.CauseExceptionBlock
	}
	return domain.CauseRuleGap
}

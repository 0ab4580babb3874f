package handlers

import (
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	"github.com/m04kA/SMC-SitterAvailability/pkg/types"
)

// Reason причина недоступности в ответе
type Reason struct {
	Bucket      string `json:"bucket"`
	Explanation string `json:"explanation"`
}

// ServiceConfig настройки услуги в ответе
type ServiceConfig struct {
	ServiceType            string     `json:"serviceType"`
	Timezone               string     `json:"timezone"`
	DefaultDurationMinutes int        `json:"defaultDurationMinutes,omitempty"`
	LeadTimeMinutes        int        `json:"leadTimeMinutes"`
	MaxAdvanceDays         int        `json:"maxAdvanceDays"`
	Capacity               int        `json:"capacity"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
}

// TimeRange интервал в ответе, минуты и время HH:MM
type TimeRange struct {
	StartMinute int              `json:"startMinute"`
	EndMinute   int              `json:"endMinute"`
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
}

// FromReason конвертирует причину, nil остаётся nil
func FromReason(r *domain.Reason) *Reason {
	if r == nil {
		return nil
	}
	return &Reason{
		Bucket:      string(r.Bucket),
		Explanation: r.Explanation,
	}
}

// FromServiceConfig конвертирует настройки услуги
func FromServiceConfig(cfg domain.ServiceConfig) ServiceConfig {
	out := ServiceConfig{
		ServiceType:            string(cfg.ServiceType),
		Timezone:               cfg.Timezone,
		DefaultDurationMinutes: cfg.DefaultDurationMinutes,
		LeadTimeMinutes:        cfg.LeadTimeMinutes,
		MaxAdvanceDays:         cfg.MaxAdvanceDays,
		Capacity:               cfg.Capacity,
	}
	if !cfg.UpdatedAt.IsZero() {
		updatedAt := cfg.UpdatedAt.UTC()
		out.UpdatedAt = &updatedAt
	}
	return out
}

// FromTimeRange конвертирует интервал; минуты уже проверены нормализатором
func FromTimeRange(r domain.TimeRange) TimeRange {
	start, _ := types.NewTimeStringFromMinutes(r.StartMinute)
	end, _ := types.NewTimeStringFromMinutes(r.EndMinute)
	return TimeRange{
		StartMinute: r.StartMinute,
		EndMinute:   r.EndMinute,
		StartTime:   start,
		EndTime:     end,
	}
}

// FromTimeRanges конвертирует список интервалов, пустой список сериализуется как []
func FromTimeRanges(ranges []domain.TimeRange) []TimeRange {
	out := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, FromTimeRange(r))
	}
	return out
}

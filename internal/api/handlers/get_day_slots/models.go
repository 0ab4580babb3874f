package get_day_slots

import (
	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	getDaySlots "github.com/m04kA/SMC-SitterAvailability/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-SitterAvailability/pkg/types"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	SitterID        string                 `json:"sitterId"`
	ServiceType     string                 `json:"serviceType"`
	Date            string                 `json:"date"`
	Timezone        string                 `json:"timezone"`
	Config          handlers.ServiceConfig `json:"config"`
	DurationMinutes int                    `json:"durationMinutes"`
	BookableCount   int                    `json:"bookableCount"`
	DayReason       *handlers.Reason       `json:"dayReason,omitempty"`
	Slots           []Slot                 `json:"slots"`
}

// Slot модель слота
type Slot struct {
	Date        string           `json:"date"`
	StartMinute int              `json:"startMinute"`
	EndMinute   int              `json:"endMinute"`
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	Bookable    bool             `json:"bookable"`
	Reason      *handlers.Reason `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		r := handlers.FromTimeRange(domain.TimeRange{StartMinute: s.StartMinute, EndMinute: s.EndMinute})
		slots[i] = Slot{
			Date:        s.Date,
			StartMinute: s.StartMinute,
			EndMinute:   s.EndMinute,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			Bookable:    s.Bookable,
			Reason:      handlers.FromReason(s.Reason),
		}
	}

	return &DaySlotsResponse{
		SitterID:        resp.SitterID,
		ServiceType:     string(resp.ServiceType),
		Date:            resp.Date,
		Timezone:        resp.Timezone,
		Config:          handlers.FromServiceConfig(resp.Config),
		DurationMinutes: resp.DurationMinutes,
		BookableCount:   resp.BookableCount(),
		DayReason:       handlers.FromReason(resp.DayReason),
		Slots:           slots,
	}
}

package check_boarding_range

import (
	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	checkBoardingRange "github.com/m04kA/SMC-SitterAvailability/internal/usecase/check_boarding_range"
)

// BoardingRangeResponse HTTP response model
type BoardingRangeResponse struct {
	SitterID      string                 `json:"sitterId"`
	Timezone      string                 `json:"timezone"`
	StartDate     string                 `json:"startDate"`
	EndDate       string                 `json:"endDate"`
	Bookable      bool                   `json:"bookable"`
	Config        handlers.ServiceConfig `json:"config"`
	FirstBlocking *DayVerdict            `json:"firstBlocking,omitempty"`
	Days          []DayVerdict           `json:"days"`
}

// DayVerdict вердикт по одному дню
type DayVerdict struct {
	Date     string           `json:"date"`
	Bookable bool             `json:"bookable"`
	Reason   *handlers.Reason `json:"reason,omitempty"`
}

func fromVerdict(v domain.BoardingDayVerdict) DayVerdict {
	return DayVerdict{
		Date:     v.Date,
		Bookable: v.Bookable,
		Reason:   handlers.FromReason(v.Reason),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkBoardingRange.Response) *BoardingRangeResponse {
	days := make([]DayVerdict, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = fromVerdict(d)
	}

	out := &BoardingRangeResponse{
		SitterID:  resp.SitterID,
		Timezone:  resp.Timezone,
		StartDate: resp.StartDate,
		EndDate:   resp.EndDate,
		Bookable:  resp.Bookable,
		Config:    handlers.FromServiceConfig(resp.Config),
		Days:      days,
	}
	if resp.FirstBlocking != nil {
		first := fromVerdict(*resp.FirstBlocking)
		out.FirstBlocking = &first
	}
	return out
}

package replace_rules

import (
	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

// ReplaceRulesRequest HTTP request model, пустой ranges - день недели недоступен
type ReplaceRulesRequest struct {
	Ranges []availability.RawRange `json:"ranges"`
}

// RulesResponse HTTP response model
type RulesResponse struct {
	SitterID    string               `json:"sitterId"`
	ServiceType string               `json:"serviceType"`
	Weekday     int                  `json:"weekday"`
	WeekdayName string               `json:"weekdayName"`
	Ranges      []handlers.TimeRange `json:"ranges"`
	Audited     bool                 `json:"audited"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ReplaceRulesRequest) ToServiceRequest(actorID, sitterID, serviceType, weekday string) *models.ReplaceRulesRequest {
	return &models.ReplaceRulesRequest{
		ActorID:     actorID,
		SitterID:    sitterID,
		ServiceType: serviceType,
		Weekday:     weekday,
		Ranges:      r.Ranges,
	}
}

// FromServiceResponse конвертирует ответ сервиса
func FromServiceResponse(resp *models.RulesResponse) *RulesResponse {
	return &RulesResponse{
		SitterID:    resp.Rule.SitterID,
		ServiceType: string(resp.Rule.ServiceType),
		Weekday:     int(resp.Rule.Weekday),
		WeekdayName: resp.Rule.Weekday.String(),
		Ranges:      handlers.FromTimeRanges(resp.Rule.Ranges),
		Audited:     resp.Audited,
	}
}

package upsert_config

import (
	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

// UpsertConfigRequest HTTP request model, незаданные поля не меняются
type UpsertConfigRequest struct {
	Timezone               *string `json:"timezone,omitempty"`
	DefaultDurationMinutes *int    `json:"defaultDurationMinutes,omitempty"`
	LeadTimeMinutes        *int    `json:"leadTimeMinutes,omitempty"`
	MaxAdvanceDays         *int    `json:"maxAdvanceDays,omitempty"`
	Capacity               *int    `json:"capacity,omitempty"`
}

// ConfigResponse HTTP response model
type ConfigResponse struct {
	SitterID string                 `json:"sitterId"`
	Config   handlers.ServiceConfig `json:"config"`
	Audited  bool                   `json:"audited"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpsertConfigRequest) ToServiceRequest(actorID, sitterID, serviceType string) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		ActorID:                actorID,
		SitterID:               sitterID,
		ServiceType:            serviceType,
		Timezone:               r.Timezone,
		DefaultDurationMinutes: r.DefaultDurationMinutes,
		LeadTimeMinutes:        r.LeadTimeMinutes,
		MaxAdvanceDays:         r.MaxAdvanceDays,
		Capacity:               r.Capacity,
	}
}

// FromServiceResponse конвертирует ответ сервиса
func FromServiceResponse(resp *models.ConfigResponse) *ConfigResponse {
	return &ConfigResponse{
		SitterID: resp.Config.SitterID,
		Config:   handlers.FromServiceConfig(resp.Config),
		Audited:  resp.Audited,
	}
}

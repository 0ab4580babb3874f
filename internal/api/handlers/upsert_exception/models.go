package upsert_exception

import (
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

// UpsertExceptionRequest HTTP request model
// blocked=true или пустой ranges закрывают день целиком
type UpsertExceptionRequest struct {
	Blocked bool                    `json:"blocked"`
	Ranges  []availability.RawRange `json:"ranges"`
	Note    string                  `json:"note"`
}

// ExceptionResponse HTTP response model
type ExceptionResponse struct {
	SitterID    string               `json:"sitterId"`
	ServiceType string               `json:"serviceType"`
	Date        string               `json:"date"`
	Blocked     bool                 `json:"blocked"`
	Ranges      []handlers.TimeRange `json:"ranges"`
	Note        string               `json:"note,omitempty"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Audited     bool                 `json:"audited"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpsertExceptionRequest) ToServiceRequest(actorID, sitterID, serviceType, date string) *models.UpsertExceptionRequest {
	return &models.UpsertExceptionRequest{
		ActorID:     actorID,
		SitterID:    sitterID,
		ServiceType: serviceType,
		Date:        date,
		Blocked:     r.Blocked,
		Ranges:      r.Ranges,
		Note:        r.Note,
	}
}

// FromServiceResponse конвертирует ответ сервиса
func FromServiceResponse(resp *models.ExceptionResponse) *ExceptionResponse {
	e := resp.Exception
	return &ExceptionResponse{
		SitterID:    e.SitterID,
		ServiceType: string(e.ServiceType),
		Date:        e.Date,
		Blocked:     e.Blocked,
		Ranges:      handlers.FromTimeRanges(e.Ranges),
		Note:        e.Note,
		UpdatedAt:   e.UpdatedAt.UTC(),
		Audited:     resp.Audited,
	}
}

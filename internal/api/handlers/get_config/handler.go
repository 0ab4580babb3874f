package get_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidService  = "некорректный тип услуги"
)

// ConfigResponse HTTP response model
type ConfigResponse struct {
	SitterID  string                 `json:"sitterId"`
	Config    handlers.ServiceConfig `json:"config"`
	IsDefault bool                   `json:"isDefault"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/availability/config/{serviceType}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sitterID := vars["sitterId"]
	serviceType := vars["serviceType"]

	result, err := h.service.GetConfig(r.Context(), &models.GetConfigRequest{
		SitterID:    sitterID,
		ServiceType: serviceType,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSitter):
			h.logger.Warn("GET /sitters/{id}/availability/config - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, availability.ErrInvalidService):
			h.logger.Warn("GET /sitters/{id}/availability/config - Invalid service type: service_type=%s", serviceType)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("GET /sitters/{id}/availability/config - Failed to get config: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.IsDefault {
		h.logger.Info("GET /sitters/{id}/availability/config - Config not found, returning defaults: sitter_id=%s, service_type=%s",
			sitterID, result.Config.ServiceType)
	}
	handlers.RespondJSON(w, http.StatusOK, &ConfigResponse{
		SitterID:  result.Config.SitterID,
		Config:    handlers.FromServiceConfig(result.Config),
		IsDefault: result.IsDefault,
	})
}

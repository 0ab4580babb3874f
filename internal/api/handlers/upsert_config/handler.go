package upsert_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/api/middleware"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSitterID    = "некорректный ID ситтера"
	msgInvalidService     = "некорректный тип услуги"
	msgInvalidData        = "некорректные настройки услуги"
	msgForbidden          = "доступ запрещен"
)

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

// Handle PUT /api/v1/sitters/{sitterId}/availability/config/{serviceType}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sitterID := vars["sitterId"]
	serviceType := vars["serviceType"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sitters/{id}/availability/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertConfig(r.Context(), req.ToServiceRequest(actorID, sitterID, serviceType))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSitter):
			h.logger.Warn("PUT /sitters/{id}/availability/config - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, availability.ErrInvalidService):
			h.logger.Warn("PUT /sitters/{id}/availability/config - Invalid service type: service_type=%s", serviceType)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /sitters/{id}/availability/config - Invalid data: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /sitters/{id}/availability/config - Access denied: sitter_id=%s, user_id=%s", sitterID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /sitters/{id}/availability/config - Failed to update config: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sitters/{id}/availability/config - Config updated successfully: sitter_id=%s, service_type=%s, audited=%t",
		sitterID, result.Config.ServiceType, result.Audited)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

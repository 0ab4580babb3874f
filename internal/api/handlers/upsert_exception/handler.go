package upsert_exception

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
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRanges      = "некорректные интервалы: минуты 0-1440, начало раньше конца, без пересечений"
	msgInvalidData        = "некорректные данные исключения"
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

// Handle PUT /api/v1/sitters/{sitterId}/availability/exceptions/{serviceType}/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sitterID := vars["sitterId"]
	serviceType := vars["serviceType"]
	date := vars["date"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req UpsertExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sitters/{id}/availability/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertException(r.Context(), req.ToServiceRequest(actorID, sitterID, serviceType, date))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSitter):
			h.logger.Warn("PUT /sitters/{id}/availability/exceptions - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, availability.ErrInvalidService):
			h.logger.Warn("PUT /sitters/{id}/availability/exceptions - Invalid service type: service_type=%s", serviceType)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, availability.ErrInvalidDate):
			h.logger.Warn("PUT /sitters/{id}/availability/exceptions - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availability.ErrInvalidRanges):
			h.logger.Warn("PUT /sitters/{id}/availability/exceptions - Invalid ranges: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidRanges)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /sitters/{id}/availability/exceptions - Invalid data: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /sitters/{id}/availability/exceptions - Access denied: sitter_id=%s, user_id=%s", sitterID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /sitters/{id}/availability/exceptions - Failed to save exception: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sitters/{id}/availability/exceptions - Exception saved: sitter_id=%s, date=%s, blocked=%t, audited=%t",
		sitterID, date, result.Exception.Blocked, result.Audited)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

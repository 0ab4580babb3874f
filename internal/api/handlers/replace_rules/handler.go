package replace_rules

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
	msgInvalidWeekday     = "некорректный день недели, ожидается 0-6 или название дня"
	msgInvalidRanges      = "некорректные интервалы: минуты 0-1440, начало раньше конца, без пересечений"
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

// Handle PUT /api/v1/sitters/{sitterId}/availability/rules/{serviceType}/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sitterID := vars["sitterId"]
	serviceType := vars["serviceType"]
	weekday := vars["weekday"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req ReplaceRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sitters/{id}/availability/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceRules(r.Context(), req.ToServiceRequest(actorID, sitterID, serviceType, weekday))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSitter):
			h.logger.Warn("PUT /sitters/{id}/availability/rules - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, availability.ErrInvalidService):
			h.logger.Warn("PUT /sitters/{id}/availability/rules - Invalid service type: service_type=%s", serviceType)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, availability.ErrInvalidWeekday):
			h.logger.Warn("PUT /sitters/{id}/availability/rules - Invalid weekday: weekday=%s", weekday)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, availability.ErrInvalidRanges):
			h.logger.Warn("PUT /sitters/{id}/availability/rules - Invalid ranges: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidRanges)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /sitters/{id}/availability/rules - Access denied: sitter_id=%s, user_id=%s", sitterID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /sitters/{id}/availability/rules - Failed to replace rules: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sitters/{id}/availability/rules - Rules replaced: sitter_id=%s, weekday=%s, ranges=%d, audited=%t",
		sitterID, result.Rule.Weekday, len(result.Rule.Ranges), result.Audited)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

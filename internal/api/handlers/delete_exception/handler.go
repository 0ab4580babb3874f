package delete_exception

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-SitterAvailability/internal/api/middleware"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidService  = "некорректный тип услуги"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden       = "доступ запрещен"
)

// DeleteExceptionResponse HTTP response model
type DeleteExceptionResponse struct {
	Deleted bool `json:"deleted"`
	Audited bool `json:"audited"`
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

// Handle DELETE /api/v1/sitters/{sitterId}/availability/exceptions/{serviceType}/{date}
// Удаление отсутствующего исключения возвращает 200 с deleted=false
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

	result, err := h.service.DeleteException(r.Context(), &models.DeleteExceptionRequest{
		ActorID:     actorID,
		SitterID:    sitterID,
		ServiceType: serviceType,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSitter):
			h.logger.Warn("DELETE /sitters/{id}/availability/exceptions - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, availability.ErrInvalidService):
			h.logger.Warn("DELETE /sitters/{id}/availability/exceptions - Invalid service type: service_type=%s", serviceType)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, availability.ErrInvalidDate):
			h.logger.Warn("DELETE /sitters/{id}/availability/exceptions - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /sitters/{id}/availability/exceptions - Access denied: sitter_id=%s, user_id=%s", sitterID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /sitters/{id}/availability/exceptions - Failed to delete exception: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sitters/{id}/availability/exceptions - Done: sitter_id=%s, date=%s, deleted=%t, audited=%t",
		sitterID, date, result.Deleted, result.Audited)
	handlers.RespondJSON(w, http.StatusOK, &DeleteExceptionResponse{
		Deleted: result.Deleted,
		Audited: result.Audited,
	})
}

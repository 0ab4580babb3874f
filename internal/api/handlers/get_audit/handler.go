package get_audit

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
	msgInvalidLimit    = "limit должен быть целым числом"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/sitters/{sitterId}/availability/audit
// Query params: serviceType (optional), limit (optional, 1-200, default 50)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sitterID := mux.Vars(r)["sitterId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/availability/audit - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	entries, err := h.service.ListAudit(r.Context(), &models.ListAuditRequest{
		ActorID:     actorID,
		SitterID:    sitterID,
		ServiceType: handlers.QueryString(r, "serviceType"),
		Limit:       limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSitter):
			h.logger.Warn("GET /sitters/{id}/availability/audit - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, availability.ErrInvalidService):
			h.logger.Warn("GET /sitters/{id}/availability/audit - Invalid service type: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /sitters/{id}/availability/audit - Access denied: sitter_id=%s, user_id=%s", sitterID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /sitters/{id}/availability/audit - Failed to list audit: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sitters/{id}/availability/audit - Audit retrieved: sitter_id=%s, entries=%d", sitterID, len(entries))
	handlers.RespondJSON(w, http.StatusOK, FromEntries(sitterID, entries))
}

package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	getDaySlots "github.com/m04kA/SMC-SitterAvailability/internal/usecase/get_day_slots"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidService  = "некорректный тип услуги, ожидается walk или day_sitting"
	msgMissingService  = "тип услуги обязателен"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "длительность должна быть целым положительным числом минут"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/availability/slots
// Query params: serviceType (required), date (required, YYYY-MM-DD), durationMinutes, lang
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sitterID := mux.Vars(r)["sitterId"]

	serviceType := handlers.QueryString(r, "serviceType")
	if serviceType == nil {
		h.logger.Warn("GET /sitters/{id}/availability/slots - Missing service type: sitter_id=%s", sitterID)
		handlers.RespondBadRequest(w, msgMissingService)
		return
	}

	date := handlers.QueryString(r, "date")
	if date == nil {
		h.logger.Warn("GET /sitters/{id}/availability/slots - Missing date: sitter_id=%s", sitterID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req := &getDaySlots.Request{
		SitterID:    sitterID,
		ServiceType: *serviceType,
		Date:        *date,
		Locale:      handlers.Locale(r),
	}

	if raw := handlers.QueryString(r, "durationMinutes"); raw != nil {
		duration, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			h.logger.Warn("GET /sitters/{id}/availability/slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationMinutes = &duration
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrInvalidSitter):
			h.logger.Warn("GET /sitters/{id}/availability/slots - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, getDaySlots.ErrInvalidService):
			h.logger.Warn("GET /sitters/{id}/availability/slots - Invalid service type: service_type=%s", *serviceType)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, getDaySlots.ErrInvalidDuration):
			h.logger.Warn("GET /sitters/{id}/availability/slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getDaySlots.ErrInvalidDate):
			h.logger.Warn("GET /sitters/{id}/availability/slots - Invalid date: date=%s", *date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDaySlots.ErrTimeout):
			h.logger.Error("GET /sitters/{id}/availability/slots - Timeout: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondTimeout(w)

		case errors.Is(err, getDaySlots.ErrUnavailable):
			h.logger.Error("GET /sitters/{id}/availability/slots - Data unavailable: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /sitters/{id}/availability/slots - Failed to get slots: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /sitters/{id}/availability/slots - Slots retrieved successfully: sitter_id=%s, date=%s, slots_count=%d, bookable=%d",
		sitterID, result.Date, len(result.Slots), response.BookableCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}

package check_boarding_range

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	checkBoardingRange "github.com/m04kA/SMC-SitterAvailability/internal/usecase/check_boarding_range"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgMissingDates    = "startDate и endDate обязательны"
	msgInvalidRange    = "некорректный диапазон дат: endDate должна быть позже startDate, формат YYYY-MM-DD"
)

type Handler struct {
	useCase CheckBoardingRangeUseCase
	logger  Logger
}

func NewHandler(useCase CheckBoardingRangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/availability/boarding
// Query params: startDate, endDate (required, YYYY-MM-DD), lang
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sitterID := mux.Vars(r)["sitterId"]

	startDate := handlers.QueryString(r, "startDate")
	endDate := handlers.QueryString(r, "endDate")
	if startDate == nil || endDate == nil {
		h.logger.Warn("GET /sitters/{id}/availability/boarding - Missing dates: sitter_id=%s", sitterID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkBoardingRange.Request{
		SitterID:  sitterID,
		StartDate: *startDate,
		EndDate:   *endDate,
		Locale:    handlers.Locale(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, checkBoardingRange.ErrInvalidSitter):
			h.logger.Warn("GET /sitters/{id}/availability/boarding - Invalid sitter: sitter_id=%s", sitterID)
			handlers.RespondBadRequest(w, msgInvalidSitterID)

		case errors.Is(err, checkBoardingRange.ErrInvalidRange):
			h.logger.Warn("GET /sitters/{id}/availability/boarding - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, checkBoardingRange.ErrTimeout):
			h.logger.Error("GET /sitters/{id}/availability/boarding - Timeout: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondTimeout(w)

		case errors.Is(err, checkBoardingRange.ErrUnavailable):
			h.logger.Error("GET /sitters/{id}/availability/boarding - Data unavailable: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /sitters/{id}/availability/boarding - Failed to check range: sitter_id=%s, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sitters/{id}/availability/boarding - Range checked: sitter_id=%s, range=%s..%s, bookable=%t",
		sitterID, result.StartDate, result.EndDate, result.Bookable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

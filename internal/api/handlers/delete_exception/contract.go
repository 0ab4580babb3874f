package delete_exception

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

type AvailabilityService interface {
	DeleteException(ctx context.Context, req *models.DeleteExceptionRequest) (*models.DeleteExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_config

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

type AvailabilityService interface {
	GetConfig(ctx context.Context, req *models.GetConfigRequest) (*models.EffectiveConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

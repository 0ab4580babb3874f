package upsert_config

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

type AvailabilityService interface {
	UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

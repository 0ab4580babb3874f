package replace_rules

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

type AvailabilityService interface {
	ReplaceRules(ctx context.Context, req *models.ReplaceRulesRequest) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

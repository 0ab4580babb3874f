package get_audit

import (
	"context"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
)

type AvailabilityService interface {
	ListAudit(ctx context.Context, req *models.ListAuditRequest) ([]domain.AuditEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

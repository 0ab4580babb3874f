package audit

import "github.com/m04kA/SMC-SitterAvailability/internal/domain"

// Event описание одного изменения конфигурации доступности
type Event struct {
	SitterID    string
	ActorID     string
	Action      domain.AuditAction
	ServiceType *domain.ServiceType
	DateKey     *string
	Payload     interface{} // сериализуется в JSON
}

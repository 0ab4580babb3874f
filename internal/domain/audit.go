package domain

import "time"

// AuditAction тип изменения конфигурации доступности
type AuditAction string

const (
	AuditUpsertConfig    AuditAction = "upsert_config"
	AuditReplaceRules    AuditAction = "replace_rules"
	AuditUpsertException AuditAction = "upsert_exception"
	AuditDeleteException AuditAction = "delete_exception"
)

// AuditEntry неизменяемая запись журнала изменений доступности
type AuditEntry struct {
	ID          int64
	SitterID    string
	ActorID     string
	Action      AuditAction
	ServiceType *ServiceType
	DateKey     *string
	Payload     string // JSON-сводка изменения
	CreatedAt   time.Time
}

package get_audit

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// AuditResponse HTTP response model
type AuditResponse struct {
	SitterID string       `json:"sitterId"`
	Entries  []AuditEntry `json:"entries"`
}

// AuditEntry запись журнала изменений
type AuditEntry struct {
	ID          int64           `json:"id"`
	ActorID     string          `json:"actorId"`
	Action      string          `json:"action"`
	ServiceType *string         `json:"serviceType,omitempty"`
	DateKey     *string         `json:"dateKey,omitempty"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// FromEntries конвертирует записи журнала
func FromEntries(sitterID string, entries []domain.AuditEntry) *AuditResponse {
	out := make([]AuditEntry, len(entries))
	for i, e := range entries {
		item := AuditEntry{
			ID:        e.ID,
			ActorID:   e.ActorID,
			Action:    string(e.Action),
			DateKey:   e.DateKey,
			Payload:   json.RawMessage("{}"),
			CreatedAt: e.CreatedAt.UTC(),
		}
		if e.ServiceType != nil {
			st := string(*e.ServiceType)
			item.ServiceType = &st
		}
		if json.Valid([]byte(e.Payload)) {
			item.Payload = json.RawMessage(e.Payload)
		}
		out[i] = item
	}

	return &AuditResponse{
		SitterID: sitterID,
		Entries:  out,
	}
}

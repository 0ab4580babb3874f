package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// Recorder записывает изменения доступности в неизменяемый журнал
// Записи только добавляются. Recorder не проверяет, что изменение действительно прошло:
// вызывать его нужно после успешного изменения.
type Recorder struct {
	repo    AuditRepository
	metrics Metrics
	logger  Logger

	mu    sync.RWMutex
	hooks []Hook
}

// NewRecorder создает новый экземпляр журнала
func NewRecorder(repo AuditRepository, metrics Metrics, logger Logger) *Recorder {
	return &Recorder{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// AddHook регистрирует обработчик событий изменения (например, инвалидацию кэша)
func (r *Recorder) AddHook(h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, h)
}

// Record добавляет запись в журнал
// Возвращает true, если запись сохранена. Пустой ситтер или автор - запись пропускается без ошибки.
// Ошибка сохранения логируется и возвращается как ErrRecordFailed.
func (r *Recorder) Record(ctx context.Context, event Event) (bool, error) {
	defer r.fire(ctx, event)

	if event.SitterID == "" || event.ActorID == "" {
		r.logger.Warn("Record: skipped action=%s: sitter=%q actor=%q", event.Action, event.SitterID, event.ActorID)
		return false, nil
	}

	payload, err := encodePayload(event.Payload)
	if err != nil {
		r.logger.Warn("Record: failed to encode payload for action=%s: %v", event.Action, err)
		payload = "{}"
	}

	entry := &domain.AuditEntry{
		SitterID:    event.SitterID,
		ActorID:     event.ActorID,
		Action:      event.Action,
		ServiceType: event.ServiceType,
		DateKey:     event.DateKey,
		Payload:     payload,
	}

	saved, err := r.repo.Create(ctx, entry)
	if err != nil {
		r.logger.Error("Record: failed to persist action=%s sitter=%s actor=%s: %v",
			event.Action, event.SitterID, event.ActorID, err)
		r.metrics.IncAuditFailure(string(event.Action))
		return false, fmt.Errorf("%w: %v", ErrRecordFailed, err)
	}

	r.logger.Info("Record: action=%s sitter=%s actor=%s entry id=%d", event.Action, event.SitterID, event.ActorID, saved.ID)
	return true, nil
}

func (r *Recorder) fire(ctx context.Context, event Event) {
	r.mu.RLock()
	hooks := make([]Hook, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.RUnlock()

	for _, h := range hooks {
		h(ctx, event)
	}
}

func encodePayload(v interface{}) (string, error) {
	if v == nil {
		return "{}", nil
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return "{}", nil
		}
		if !json.Valid([]byte(s)) {
			return "", fmt.Errorf("payload is not valid JSON")
		}
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	configRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/config"
)

const keyPrefix = "availability:v1"

// Результаты обращения к кэшу для метрик
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// SnapshotCache кэш правил, исключений и настроек ситтера в redis
// Инвалидация явная: Invalidate увеличивает поколение ситтера, старые ключи истекают по TTL.
// Без redis клиента все вызовы проходят напрямую в источники.
type SnapshotCache struct {
	redis *redis.Client
	ttl   time.Duration

	configs    ConfigReader
	rules      RuleReader
	exceptions ExceptionReader

	metrics Metrics
	logger  Logger
}

// NewSnapshotCache создает кэш поверх репозиториев
func NewSnapshotCache(
	client *redis.Client,
	ttl time.Duration,
	configs ConfigReader,
	rules RuleReader,
	exceptions ExceptionReader,
	metrics Metrics,
	logger Logger,
) *SnapshotCache {
	return &SnapshotCache{
		redis:      client,
		ttl:        ttl,
		configs:    configs,
		rules:      rules,
		exceptions: exceptions,
		metrics:    metrics,
		logger:     logger,
	}
}

type configEntry struct {
	Found  bool                 `json:"found"`
	Config domain.ServiceConfig `json:"config"`
}

// GetConfig возвращает настройки услуги; отсутствие настроек тоже кэшируется
func (c *SnapshotCache) GetConfig(ctx context.Context, sitterID string, serviceType domain.ServiceType) (*domain.ServiceConfig, error) {
	gen, ok := c.generation(ctx, sitterID)
	key := c.key(sitterID, gen, "config", string(serviceType))

	var entry configEntry
	if ok && c.read(ctx, "config", key, &entry) {
		if !entry.Found {
			return nil, configRepo.ErrConfigNotFound
		}
		return &entry.Config, nil
	}

	cfg, err := c.configs.GetConfig(ctx, sitterID, serviceType)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) && ok {
			c.write(ctx, key, configEntry{Found: false})
		}
		return nil, err
	}

	if ok {
		c.write(ctx, key, configEntry{Found: true, Config: *cfg})
	}
	return cfg, nil
}

// GetRules возвращает недельные правила ситтера
func (c *SnapshotCache) GetRules(ctx context.Context, sitterID string, serviceType domain.ServiceType) ([]domain.WeeklyRule, error) {
	gen, ok := c.generation(ctx, sitterID)
	key := c.key(sitterID, gen, "rules", string(serviceType))

	var rules []domain.WeeklyRule
	if ok && c.read(ctx, "rules", key, &rules) {
		return rules, nil
	}

	rules, err := c.rules.GetRules(ctx, sitterID, serviceType)
	if err != nil {
		return nil, err
	}

	if ok {
		c.write(ctx, key, rules)
	}
	return rules, nil
}

// GetExceptions возвращает исключения ситтера в диапазоне дат
func (c *SnapshotCache) GetExceptions(ctx context.Context, sitterID string, serviceType domain.ServiceType, from, to string) ([]domain.DateException, error) {
	gen, ok := c.generation(ctx, sitterID)
	key := c.key(sitterID, gen, "exceptions", string(serviceType), from, to)

	var exceptions []domain.DateException
	if ok && c.read(ctx, "exceptions", key, &exceptions) {
		return exceptions, nil
	}

	exceptions, err := c.exceptions.GetExceptions(ctx, sitterID, serviceType, from, to)
	if err != nil {
		return nil, err
	}

	if ok {
		c.write(ctx, key, exceptions)
	}
	return exceptions, nil
}

// Invalidate сбрасывает все закэшированные данные ситтера
func (c *SnapshotCache) Invalidate(ctx context.Context, sitterID string) error {
	if c.redis == nil {
		return nil
	}
	if err := c.redis.Incr(ctx, c.generationKey(sitterID)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate sitter %s: %w", sitterID, err)
	}
	return nil
}

// generation возвращает текущее поколение ключей ситтера
// false означает, что кэш сейчас использовать нельзя
func (c *SnapshotCache) generation(ctx context.Context, sitterID string) (int64, bool) {
	if c.redis == nil || c.ttl <= 0 {
		return 0, false
	}

	val, err := c.redis.Get(ctx, c.generationKey(sitterID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.logger.Warn("SnapshotCache: failed to read generation for sitter=%s: %v", sitterID, err)
		c.metrics.ObserveCache("generation", resultError)
		return 0, false
	}

	gen, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		c.logger.Warn("SnapshotCache: corrupted generation for sitter=%s: %q", sitterID, val)
		return 0, false
	}
	return gen, true
}

func (c *SnapshotCache) read(ctx context.Context, kind, key string, out interface{}) bool {
	val, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.ObserveCache(kind, resultMiss)
		return false
	}
	if err != nil {
		c.logger.Warn("SnapshotCache: failed to read key=%s: %v", key, err)
		c.metrics.ObserveCache(kind, resultError)
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		c.logger.Warn("SnapshotCache: failed to decode key=%s: %v", key, err)
		c.metrics.ObserveCache(kind, resultError)
		return false
	}
	c.metrics.ObserveCache(kind, resultHit)
	return true
}

func (c *SnapshotCache) write(ctx context.Context, key string, val interface{}) {
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("SnapshotCache: failed to write key=%s: %v", key, err)
	}
}

func (c *SnapshotCache) key(sitterID string, gen int64, parts ...string) string {
	key := fmt.Sprintf("%s:%s:%d", keyPrefix, sitterID, gen)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (c *SnapshotCache) generationKey(sitterID string) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, sitterID)
}

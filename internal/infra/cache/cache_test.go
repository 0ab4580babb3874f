package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	configRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/config"
)

const sitterID = "5b1c9a8e-2f0d-4d5e-9a43-1f7c0c2b9e11"

type fakeSource struct {
	config     *domain.ServiceConfig
	rules      []domain.WeeklyRule
	exceptions []domain.DateException

	configCalls    int
	rulesCalls     int
	exceptionCalls int
}

func (f *fakeSource) GetConfig(_ context.Context, _ string, _ domain.ServiceType) (*domain.ServiceConfig, error) {
	f.configCalls++
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	cfg := *f.config
	return &cfg, nil
}

func (f *fakeSource) GetRules(_ context.Context, _ string, _ domain.ServiceType) ([]domain.WeeklyRule, error) {
	f.rulesCalls++
	return f.rules, nil
}

func (f *fakeSource) GetExceptions(_ context.Context, _ string, _ domain.ServiceType, _, _ string) ([]domain.DateException, error) {
	f.exceptionCalls++
	return f.exceptions, nil
}

type fakeMetrics struct {
	results map[string]int
}

func (m *fakeMetrics) ObserveCache(kind, result string) {
	m.results[kind+":"+result]++
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func newCache(t *testing.T, src *fakeSource) (*SnapshotCache, *miniredis.Miniredis, *fakeMetrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m := &fakeMetrics{results: map[string]int{}}
	return NewSnapshotCache(client, time.Minute, src, src, src, m, nopLogger{}), mr, m
}

func TestSnapshotCache_RulesReadThrough(t *testing.T) {
	src := &fakeSource{rules: []domain.WeeklyRule{{
		SitterID:    sitterID,
		ServiceType: domain.ServiceWalk,
		Weekday:     time.Monday,
		Ranges:      []domain.TimeRange{{StartMinute: 540, EndMinute: 720}},
	}}}
	c, _, m := newCache(t, src)
	ctx := context.Background()

	first, err := c.GetRules(ctx, sitterID, domain.ServiceWalk)
	require.NoError(t, err)
	second, err := c.GetRules(ctx, sitterID, domain.ServiceWalk)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.rulesCalls)
	assert.Equal(t, 1, m.results["rules:miss"])
	assert.Equal(t, 1, m.results["rules:hit"])
}

func TestSnapshotCache_InvalidateBumpsGeneration(t *testing.T) {
	src := &fakeSource{exceptions: []domain.DateException{{SitterID: sitterID, ServiceType: domain.ServiceWalk, Date: "2025-06-10", Blocked: true}}}
	c, mr, _ := newCache(t, src)
	ctx := context.Background()

	_, err := c.GetExceptions(ctx, sitterID, domain.ServiceWalk, "2025-06-10", "2025-06-10")
	require.NoError(t, err)
	_, err = c.GetExceptions(ctx, sitterID, domain.ServiceWalk, "2025-06-10", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, 1, src.exceptionCalls)

	require.NoError(t, c.Invalidate(ctx, sitterID))
	gen, err := mr.Get(c.generationKey(sitterID))
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	src.exceptions = nil
	got, err := c.GetExceptions(ctx, sitterID, domain.ServiceWalk, "2025-06-10", "2025-06-10")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, src.exceptionCalls)
}

func TestSnapshotCache_ConfigNotFoundIsCached(t *testing.T) {
	src := &fakeSource{}
	c, _, _ := newCache(t, src)
	ctx := context.Background()

	_, err := c.GetConfig(ctx, sitterID, domain.ServiceWalk)
	assert.ErrorIs(t, err, configRepo.ErrConfigNotFound)
	_, err = c.GetConfig(ctx, sitterID, domain.ServiceWalk)
	assert.ErrorIs(t, err, configRepo.ErrConfigNotFound)
	assert.Equal(t, 1, src.configCalls)

	src.config = &domain.ServiceConfig{SitterID: sitterID, ServiceType: domain.ServiceWalk, Timezone: "Europe/Moscow", Capacity: 2}
	require.NoError(t, c.Invalidate(ctx, sitterID))

	cfg, err := c.GetConfig(ctx, sitterID, domain.ServiceWalk)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone)

	cfg, err = c.GetConfig(ctx, sitterID, domain.ServiceWalk)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Capacity)
	assert.Equal(t, 2, src.configCalls)
}

func TestSnapshotCache_RedisDownFallsThrough(t *testing.T) {
	src := &fakeSource{}
	c, mr, m := newCache(t, src)
	mr.Close()

	_, err := c.GetRules(context.Background(), sitterID, domain.ServiceWalk)
	require.NoError(t, err)
	_, err = c.GetRules(context.Background(), sitterID, domain.ServiceWalk)
	require.NoError(t, err)

	assert.Equal(t, 2, src.rulesCalls)
	assert.Equal(t, 2, m.results["generation:error"])
	assert.Error(t, c.Invalidate(context.Background(), sitterID))
}

func TestSnapshotCache_WithoutRedis(t *testing.T) {
	src := &fakeSource{}
	c := NewSnapshotCache(nil, time.Minute, src, src, src, &fakeMetrics{results: map[string]int{}}, nopLogger{})

	_, err := c.GetRules(context.Background(), sitterID, domain.ServiceWalk)
	require.NoError(t, err)
	_, err = c.GetRules(context.Background(), sitterID, domain.ServiceWalk)
	require.NoError(t, err)
	assert.Equal(t, 2, src.rulesCalls)
	assert.NoError(t, c.Invalidate(context.Background(), sitterID))
}

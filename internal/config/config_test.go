package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`
[database]
dbname = "availability"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 300*time.Second, cfg.Redis.CacheTTL())
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=availability sslmode=disable", cfg.Database.DSN())

	policy := cfg.Policy()
	assert.Equal(t, domain.DefaultTimezone, policy.DefaultTimezone)
	assert.Equal(t, domain.DefaultFetchTimeout, policy.FetchTimeout)
	assert.Equal(t, domain.DefaultMaxBoardingNights, policy.MaxBoardingNights)
	assert.Equal(t, domain.DefaultWalkDurationMinutes, policy.Defaults[domain.ServiceWalk].DefaultDurationMinutes)
	assert.Equal(t, 0, policy.Defaults[domain.ServiceBoarding].DefaultDurationMinutes)
	assert.Equal(t, domain.DefaultBoardingLeadTimeMinutes, policy.Defaults[domain.ServiceBoarding].LeadTimeMinutes)
}

func TestParse_ExplicitZerosKept(t *testing.T) {
	cfg, err := Parse(`
[database]
dbname = "availability"

[engine]
default_timezone = "Europe/Moscow"
fetch_timeout_ms = 0

[engine.walk]
lead_time_minutes = 0
max_advance_days = 0
capacity = 3

[auth]
admin_ids = [" 0b7c6f1e-3c1d-4c55-9a55-2b0f1f5e6a11 ", ""]
`)
	require.NoError(t, err)

	policy := cfg.Policy()
	walk := policy.Defaults[domain.ServiceWalk]
	assert.Equal(t, "Europe/Moscow", policy.DefaultTimezone)
	assert.Zero(t, policy.FetchTimeout)
	assert.Zero(t, walk.LeadTimeMinutes)
	assert.Zero(t, walk.MaxAdvanceDays)
	assert.Equal(t, 3, walk.Capacity)
	assert.Equal(t, domain.DefaultWalkDurationMinutes, walk.DefaultDurationMinutes)
	assert.Equal(t, []string{"0b7c6f1e-3c1d-4c55-9a55-2b0f1f5e6a11"}, cfg.Auth.AdminIDs)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no database", data: ``},
		{name: "bad timezone", data: "[database]\ndbname=\"a\"\n[engine]\ndefault_timezone=\"Mars/Olympus\""},
		{name: "zero nights", data: "[database]\ndbname=\"a\"\n[engine]\nmax_boarding_nights=0"},
		{name: "short walk", data: "[database]\ndbname=\"a\"\n[engine.walk]\nduration_minutes=1"},
		{name: "zero capacity", data: "[database]\ndbname=\"a\"\n[engine.boarding]\ncapacity=0"},
		{name: "bad port", data: "[server]\nhttp_port=70000\n[database]\ndbname=\"a\""},
		{name: "redis without ttl", data: "[database]\ndbname=\"a\"\n[redis]\nenabled=true\nttl=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse("[server\n")
	assert.Error(t, err)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("AVAILABILITY_DB_PASSWORD", "s3cret")
	t.Setenv("AVAILABILITY_DB_NAME", "availability")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
dbname = "${AVAILABILITY_DB_NAME}"
password = "${AVAILABILITY_DB_PASSWORD}"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "availability", cfg.Database.DBName)
	assert.Equal(t, "s3cret", cfg.Database.Password)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

var (
	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Engine   EngineConfig   `toml:"engine"`
	Auth     AuthConfig     `toml:"auth"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки кэша правил и исключений
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// CacheTTL возвращает время жизни записей кэша
func (r RedisConfig) CacheTTL() time.Duration {
	return time.Duration(r.TTL) * time.Second
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// EngineConfig параметры движка доступности
type EngineConfig struct {
	DefaultTimezone   string          `toml:"default_timezone"`
	FetchTimeoutMs    int             `toml:"fetch_timeout_ms"` // 0 = без ограничения
	MaxBoardingNights int             `toml:"max_boarding_nights"`
	Walk              ServiceDefaults `toml:"walk"`
	DaySitting        ServiceDefaults `toml:"day_sitting"`
	Boarding          ServiceDefaults `toml:"boarding"`
}

// ServiceDefaults настройки услуги, если ситтер не задал свои
type ServiceDefaults struct {
	DurationMinutes int `toml:"duration_minutes"`
	LeadTimeMinutes int `toml:"lead_time_minutes"`
	MaxAdvanceDays  int `toml:"max_advance_days"`
	Capacity        int `toml:"capacity"`
}

// AuthConfig настройки авторизации изменений
type AuthConfig struct {
	AdminIDs []string `toml:"admin_ids"`
}

// Load читает .env (если есть) и TOML-файл, подставляя ${VAR} из окружения
func Load(path string) (*Config, error) {
	// .env необязателен, переменные могут прийти из окружения
	_ = godotenv.Load(".env")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(os.ExpandEnv(string(raw)))
}

// Parse разбирает TOML поверх значений по умолчанию и проверяет результат
// Ключи, отсутствующие в файле, сохраняют значения из Default, в том числе явные нули
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	admins := make([]string, 0, len(cfg.Auth.AdminIDs))
	for _, id := range cfg.Auth.AdminIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins = append(admins, id)
		}
	}
	cfg.Auth.AdminIDs = admins

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "sitter_availability",
		},
		Engine: EngineConfig{
			DefaultTimezone:   domain.DefaultTimezone,
			FetchTimeoutMs:    int(domain.DefaultFetchTimeout / time.Millisecond),
			MaxBoardingNights: domain.DefaultMaxBoardingNights,
			Walk: ServiceDefaults{
				DurationMinutes: domain.DefaultWalkDurationMinutes,
				LeadTimeMinutes: domain.DefaultLeadTimeMinutes,
				MaxAdvanceDays:  domain.DefaultMaxAdvanceDays,
				Capacity:        domain.DefaultCapacity,
			},
			DaySitting: ServiceDefaults{
				DurationMinutes: domain.DefaultDaySittingDurationMinutes,
				LeadTimeMinutes: domain.DefaultLeadTimeMinutes,
				MaxAdvanceDays:  domain.DefaultMaxAdvanceDays,
				Capacity:        domain.DefaultCapacity,
			},
			Boarding: ServiceDefaults{
				LeadTimeMinutes: domain.DefaultBoardingLeadTimeMinutes,
				MaxAdvanceDays:  domain.DefaultMaxAdvanceDays,
				Capacity:        domain.DefaultCapacity,
			},
		},
	}
}

// Validate проверяет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Engine.DefaultTimezone); err != nil {
		return fmt.Errorf("%w: engine.default_timezone=%q: %v", ErrInvalidConfig, c.Engine.DefaultTimezone, err)
	}
	if c.Engine.FetchTimeoutMs < 0 {
		return fmt.Errorf("%w: engine.fetch_timeout_ms=%d", ErrInvalidConfig, c.Engine.FetchTimeoutMs)
	}
	if c.Engine.MaxBoardingNights < 1 {
		return fmt.Errorf("%w: engine.max_boarding_nights=%d", ErrInvalidConfig, c.Engine.MaxBoardingNights)
	}

	services := map[string]ServiceDefaults{
		"walk":        c.Engine.Walk,
		"day_sitting": c.Engine.DaySitting,
		"boarding":    c.Engine.Boarding,
	}
	for name, d := range services {
		if name != "boarding" && (d.DurationMinutes < domain.MinDurationMinutes || d.DurationMinutes > domain.MaxDurationMinutes) {
			return fmt.Errorf("%w: engine.%s.duration_minutes=%d", ErrInvalidConfig, name, d.DurationMinutes)
		}
		if d.LeadTimeMinutes < domain.MinLeadTimeMinutes || d.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
			return fmt.Errorf("%w: engine.%s.lead_time_minutes=%d", ErrInvalidConfig, name, d.LeadTimeMinutes)
		}
		if d.MaxAdvanceDays < domain.MinAdvanceDays || d.MaxAdvanceDays > domain.MaxAdvanceDays {
			return fmt.Errorf("%w: engine.%s.max_advance_days=%d", ErrInvalidConfig, name, d.MaxAdvanceDays)
		}
		if d.Capacity < domain.MinCapacity || d.Capacity > domain.MaxCapacity {
			return fmt.Errorf("%w: engine.%s.capacity=%d", ErrInvalidConfig, name, d.Capacity)
		}
	}

	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("%w: redis.ttl=%d", ErrInvalidConfig, c.Redis.TTL)
	}
	return nil
}

// Policy собирает политику движка из секции engine
func (c *Config) Policy() domain.Policy {
	toConfig := func(st domain.ServiceType, d ServiceDefaults) domain.ServiceConfig {
		cfg := domain.ServiceConfig{
			ServiceType:     st,
			LeadTimeMinutes: d.LeadTimeMinutes,
			MaxAdvanceDays:  d.MaxAdvanceDays,
			Capacity:        d.Capacity,
		}
		if st.IsPointInTime() {
			cfg.DefaultDurationMinutes = d.DurationMinutes
		}
		return cfg
	}

	return domain.Policy{
		DefaultTimezone:   c.Engine.DefaultTimezone,
		FetchTimeout:      time.Duration(c.Engine.FetchTimeoutMs) * time.Millisecond,
		MaxBoardingNights: c.Engine.MaxBoardingNights,
		Defaults: map[domain.ServiceType]domain.ServiceConfig{
			domain.ServiceWalk:       toConfig(domain.ServiceWalk, c.Engine.Walk),
			domain.ServiceDaySitting: toConfig(domain.ServiceDaySitting, c.Engine.DaySitting),
			domain.ServiceBoarding:   toConfig(domain.ServiceBoarding, c.Engine.Boarding),
		},
	}
}

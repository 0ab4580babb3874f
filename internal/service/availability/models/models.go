package models

import (
	"github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

// GetConfigRequest запрос действующих настроек услуги
type GetConfigRequest struct {
	SitterID    string
	ServiceType string
}

// EffectiveConfigResponse действующие настройки услуги
type EffectiveConfigResponse struct {
	Config    domain.ServiceConfig
	IsDefault bool // ситтер не сохранял свои настройки
}

// UpsertConfigRequest запрос на изменение настроек услуги
// Незаданные поля берутся из текущих настроек или значений по умолчанию
type UpsertConfigRequest struct {
	ActorID                string
	SitterID               string
	ServiceType            string
	Timezone               *string
	DefaultDurationMinutes *int
	LeadTimeMinutes        *int
	MaxAdvanceDays         *int
	Capacity               *int
}

// ConfigResponse сохранённые настройки услуги
type ConfigResponse struct {
	Config  domain.ServiceConfig
	Audited bool
}

// ReplaceRulesRequest запрос на замену недельного правила
type ReplaceRulesRequest struct {
	ActorID     string
	SitterID    string
	ServiceType string
	Weekday     string // 0-6 (0 = воскресенье) или название дня
	Ranges      []availability.RawRange
}

// RulesResponse сохранённое недельное правило
type RulesResponse struct {
	Rule    domain.WeeklyRule
	Audited bool
}

// UpsertExceptionRequest запрос на создание или замену исключения
type UpsertExceptionRequest struct {
	ActorID     string
	SitterID    string
	ServiceType string
	Date        string
	Blocked     bool
	Ranges      []availability.RawRange
	Note        string
}

// ExceptionResponse сохранённое исключение
type ExceptionResponse struct {
	Exception domain.DateException
	Audited   bool
}

// DeleteExceptionRequest запрос на удаление исключения
type DeleteExceptionRequest struct {
	ActorID     string
	SitterID    string
	ServiceType string
	Date        string
}

// DeleteExceptionResponse результат удаления исключения
type DeleteExceptionResponse struct {
	Deleted bool // false, если исключения не было
	Audited bool
}

// ListAuditRequest запрос журнала изменений
type ListAuditRequest struct {
	ActorID     string
	SitterID    string
	ServiceType *string
	Limit       *int
}

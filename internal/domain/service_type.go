package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownServiceType возвращается при неизвестном типе услуги
var ErrUnknownServiceType = errors.New("domain: unknown service type")

// ServiceType тип услуги ситтера
type ServiceType string

const (
	ServiceWalk       ServiceType = "walk"
	ServiceDaySitting ServiceType = "day_sitting"
	ServiceBoarding   ServiceType = "boarding"
)

// AllServiceTypes все поддерживаемые типы услуг
var AllServiceTypes = []ServiceType{ServiceWalk, ServiceDaySitting, ServiceBoarding}

// ParseServiceType разбирает тип услуги из строки (без учёта регистра, допускаются DaySitting и day-sitting)
func ParseServiceType(s string) (ServiceType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	switch normalized {
	case "walk":
		return ServiceWalk, nil
	case "day_sitting", "daysitting":
		return ServiceDaySitting, nil
	case "boarding":
		return ServiceBoarding, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
	}
}

// IsPointInTime возвращает true для услуг, бронируемых слотами внутри одного дня
func (s ServiceType) IsPointInTime() bool {
	return s == ServiceWalk || s == ServiceDaySitting
}

// IsValid возвращает true для известных типов услуг
func (s ServiceType) IsValid() bool {
	return s == ServiceWalk || s == ServiceDaySitting || s == ServiceBoarding
}

func (s ServiceType) String() string {
	return string(s)
}

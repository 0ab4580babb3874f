package domain

import "time"

// ServiceConfig настройки доступности ситтера для одного типа услуги
type ServiceConfig struct {
	SitterID               string
	ServiceType            ServiceType
	Timezone               string
	DefaultDurationMinutes int
	LeadTimeMinutes        int
	MaxAdvanceDays         int // 0 = без ограничений
	Capacity               int // количество одновременных бронирований на слот
	UpdatedAt              time.Time
}

// HasAdvanceLimit возвращает true, если ограничена дальность бронирования
func (c *ServiceConfig) HasAdvanceLimit() bool {
	return c.MaxAdvanceDays > 0
}

// LeadTime возвращает минимальное время до начала бронирования
func (c *ServiceConfig) LeadTime() time.Duration {
	return time.Duration(c.LeadTimeMinutes) * time.Minute
}

// Policy параметры движка, задаваемые при создании (а не глобальным состоянием)
type Policy struct {
	DefaultTimezone   string
	FetchTimeout      time.Duration
	MaxBoardingNights int
	Defaults          map[ServiceType]ServiceConfig
}

// DefaultPolicy возвращает политику со значениями по умолчанию
func DefaultPolicy() Policy {
	return Policy{
		DefaultTimezone:   DefaultTimezone,
		FetchTimeout:      DefaultFetchTimeout,
		MaxBoardingNights: DefaultMaxBoardingNights,
		Defaults: map[ServiceType]ServiceConfig{
			ServiceWalk: {
				ServiceType:            ServiceWalk,
				DefaultDurationMinutes: DefaultWalkDurationMinutes,
				LeadTimeMinutes:        DefaultLeadTimeMinutes,
				MaxAdvanceDays:         DefaultMaxAdvanceDays,
				Capacity:               DefaultCapacity,
			},
			ServiceDaySitting: {
				ServiceType:            ServiceDaySitting,
				DefaultDurationMinutes: DefaultDaySittingDurationMinutes,
				LeadTimeMinutes:        DefaultLeadTimeMinutes,
				MaxAdvanceDays:         DefaultMaxAdvanceDays,
				Capacity:               DefaultCapacity,
			},
			ServiceBoarding: {
				ServiceType:     ServiceBoarding,
				LeadTimeMinutes: DefaultBoardingLeadTimeMinutes,
				MaxAdvanceDays:  DefaultMaxAdvanceDays,
				Capacity:        DefaultCapacity,
			},
		},
	}
}

// ConfigFor возвращает настройки услуги по умолчанию для ситтера
func (p Policy) ConfigFor(sitterID string, serviceType ServiceType) ServiceConfig {
	cfg, ok := p.Defaults[serviceType]
	if !ok {
		cfg = ServiceConfig{ServiceType: serviceType, Capacity: DefaultCapacity}
	}
	cfg.SitterID = sitterID
	cfg.ServiceType = serviceType
	if cfg.Timezone == "" {
		cfg.Timezone = p.DefaultTimezone
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	return cfg
}

package domain

import "time"

// Default configuration values
const (
	DefaultTimezone                  = "UTC"
	DefaultFetchTimeout              = 3 * time.Second
	DefaultMaxBoardingNights         = 90
	DefaultWalkDurationMinutes       = 30
	DefaultDaySittingDurationMinutes = 240
	DefaultLeadTimeMinutes           = 120
	DefaultBoardingLeadTimeMinutes   = 1440
	DefaultMaxAdvanceDays            = 90
	DefaultCapacity                  = 1
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MinLeadTimeMinutes = 0
	MaxLeadTimeMinutes = 10080 // 1 week
	MinAdvanceDays     = 0
	MaxAdvanceDays     = 365
	MinCapacity        = 1
	MaxCapacity        = 100
	MaxNoteLength      = 500
)

// Audit query limits
const (
	DefaultAuditLimit = 50
	MinAuditLimit     = 1
	MaxAuditLimit     = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, при которых бронирование занимает время ситтера
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

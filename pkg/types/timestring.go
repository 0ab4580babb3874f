package types

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// TimeString время суток в формате "HH:MM"
// Допускается "24:00" как обозначение конца суток
type TimeString string

// NewTimeString создает TimeString из time.Time (учитываются только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return "", fmt.Errorf("%w: minute %d out of range", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeString
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeString, err)
	}

	if minutes < 0 || minutes > 59 || hours < 0 || hours > 24 {
		return 0, ErrInvalidTimeString
	}
	if hours == 24 && minutes != 0 {
		return 0, ErrInvalidTimeString
	}

	return hours*60 + minutes, nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

package get_day_slots

import "errors"

var (
	// ErrInvalidSitter возвращается при пустом или некорректном идентификаторе ситтера
	ErrInvalidSitter = errors.New("invalid sitter id")

	// ErrInvalidService возвращается для неизвестной услуги или передержки
	ErrInvalidService = errors.New("invalid service type")

	// ErrInvalidDuration возвращается при нецелой, нулевой или отрицательной длительности
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnavailable возвращается, если не удалось прочитать данные ситтера
	ErrUnavailable = errors.New("usecase: availability data unavailable")

	// ErrTimeout возвращается, если чтение данных не уложилось в отведённое время
	ErrTimeout = errors.New("usecase: availability data fetch timed out")
)

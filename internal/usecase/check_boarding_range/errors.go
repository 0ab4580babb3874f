package check_boarding_range

import "errors"

var (
	// ErrInvalidSitter возвращается при пустом или некорректном идентификаторе ситтера
	ErrInvalidSitter = errors.New("invalid sitter id")

	// ErrInvalidRange возвращается при некорректных датах или слишком длинном диапазоне
	ErrInvalidRange = errors.New("invalid date range")

	// ErrUnavailable возвращается, если не удалось прочитать данные ситтера
	ErrUnavailable = errors.New("usecase: availability data unavailable")

	// ErrTimeout возвращается, если чтение данных не уложилось в отведённое время
	ErrTimeout = errors.New("usecase: availability data fetch timed out")
)

package availability

import "errors"

var (
	// ErrInvalidSitter возвращается при пустом или некорректном идентификаторе ситтера
	ErrInvalidSitter = errors.New("invalid sitter id")

	// ErrInvalidService возвращается при неизвестном типе услуги
	ErrInvalidService = errors.New("invalid service type")

	// ErrInvalidRanges возвращается, если интервалы не прошли нормализацию
	ErrInvalidRanges = errors.New("invalid ranges")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidDate возвращается при некорректной дате исключения
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных настройках услуги
	ErrInvalidInput = errors.New("invalid input data")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на изменение доступности ситтера
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package exceptions

import "errors"

var (
	// ErrExceptionNotFound возвращается, когда исключение на дату не найдено
	ErrExceptionNotFound = errors.New("exceptions.repository: exception not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("exceptions.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("exceptions.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("exceptions.repository: failed to scan row")

	// ErrEncodeRanges возвращается, если интервалы не удалось сериализовать
	ErrEncodeRanges = errors.New("exceptions.repository: failed to encode ranges")
)

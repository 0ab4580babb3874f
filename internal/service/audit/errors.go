package audit

import "errors"

var (
	// ErrRecordFailed возвращается, если запись не удалось сохранить
	// Изменение, которое она описывает, при этом не откатывается
	ErrRecordFailed = errors.New("audit: failed to record entry")
)

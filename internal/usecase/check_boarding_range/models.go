package check_boarding_range

import "github.com/m04kA/SMC-SitterAvailability/internal/domain"

// Request модель запроса проверки диапазона передержки
type Request struct {
	SitterID  string
	StartDate string // YYYY-MM-DD, включительно
	EndDate   string // YYYY-MM-DD, включительно, строго позже StartDate
	Locale    string
}

// Response модель ответа с вердиктом по дням
type Response struct {
	SitterID string
	Timezone string
	Config   domain.ServiceConfig
	domain.BoardingRangeResult
}

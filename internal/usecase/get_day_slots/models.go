package get_day_slots

import "github.com/m04kA/SMC-SitterAvailability/internal/domain"

// Request модель запроса слотов на день
type Request struct {
	SitterID        string
	ServiceType     string
	Date            string   // YYYY-MM-DD в часовом поясе ситтера
	DurationMinutes *float64 // nil - длительность из настроек услуги
	Locale          string
}

// Response модель ответа со слотами на день
type Response struct {
	SitterID        string
	ServiceType     domain.ServiceType
	Date            string
	Timezone        string
	Config          domain.ServiceConfig
	DurationMinutes int
	Slots           []domain.Slot
	DayReason       *domain.Reason // причина, если в день нет ни одного кандидата
}

// BookableCount количество доступных слотов
func (r *Response) BookableCount() int {
	n := 0
	for _, s := range r.Slots {
		if s.Bookable {
			n++
		}
	}
	return n
}

package domain

// Slot кандидат на бронирование для услуг внутри одного дня
type Slot struct {
	Date        string
	StartMinute int
	EndMinute   int
	Bookable    bool
	Reason      *Reason
}

// BoardingDayVerdict вердикт доступности одного дня передержки
type BoardingDayVerdict struct {
	Date     string
	Bookable bool
	Reason   *Reason
}

// BoardingRangeResult результат проверки диапазона передержки
type BoardingRangeResult struct {
	StartDate     string
	EndDate       string
	Bookable      bool
	Days          []BoardingDayVerdict
	FirstBlocking *BoardingDayVerdict // первый недоступный день (по дате), nil если диапазон доступен
}

package availability

import "github.com/m04kA/SMC-SitterAvailability/internal/domain"

// DefaultLocale язык пояснений по умолчанию
const DefaultLocale = "en"

var causeBuckets = map[domain.Cause]domain.ReasonBucket{
	domain.CauseLeadTime:         domain.ReasonLeadTimeViolation,
	domain.CauseBookingConfirmed: domain.ReasonExistingBooking,
	domain.CauseBookingPending:   domain.ReasonPendingBooking,
	domain.CauseExceptionBlock:   domain.ReasonDateException,
	domain.CauseExceptionHours:   domain.ReasonDateException,
	domain.CauseRuleGap:          domain.ReasonRuleMismatch,
	domain.CauseOutsideHours:     domain.ReasonOutsideConfiguredHours,
	domain.CauseBeyondHorizon:    domain.ReasonOther,
}

var explanations = map[string]map[domain.Cause]string{
	"en": {
		domain.CauseLeadTime:         "This time is too soon to book. Please choose a later time.",
		domain.CauseBookingConfirmed: "The sitter already has a confirmed booking at this time.",
		domain.CauseBookingPending:   "Another request for this time is awaiting the sitter's confirmation.",
		domain.CauseExceptionBlock:   "The sitter is unavailable on this date.",
		domain.CauseExceptionHours:   "The sitter has changed their hours for this date.",
		domain.CauseRuleGap:          "The sitter does not offer this service on this day of the week.",
		domain.CauseOutsideHours:     "This time is outside the sitter's working hours.",
		domain.CauseBeyondHorizon:    "Bookings are not open this far in advance yet.",
		domain.CauseNone:             "This time is not available.",
	},
	"ru": {
		domain.CauseLeadTime:         "Слишком поздно для бронирования этого времени. Выберите время позже.",
		domain.CauseBookingConfirmed: "У ситтера уже есть подтверждённое бронирование на это время.",
		domain.CauseBookingPending:   "На это время уже есть заявка, ожидающая подтверждения ситтера.",
		domain.CauseExceptionBlock:   "Ситтер недоступен в эту дату.",
		domain.CauseExceptionHours:   "Ситтер изменил часы работы на эту дату.",
		domain.CauseRuleGap:          "Ситтер не оказывает эту услугу в этот день недели.",
		domain.CauseOutsideHours:     "Это время вне рабочих часов ситтера.",
		domain.CauseBeyondHorizon:    "Бронирование на эту дату ещё не открыто.",
		domain.CauseNone:             "Это время недоступно.",
	},
}

// Classify сопоставляет причину категории и пояснению на языке по умолчанию
func Classify(cause domain.Cause) domain.Reason {
	return ClassifyLocalized(cause, DefaultLocale)
}

// ClassifyLocalized сопоставляет причину категории и пояснению на указанном языке
// Неизвестная или пустая причина даёт категорию Other; неизвестный язык - английский
func ClassifyLocalized(cause domain.Cause, locale string) domain.Reason {
	catalog, ok := explanations[locale]
	if !ok {
		catalog = explanations[DefaultLocale]
	}

	bucket, known := causeBuckets[cause]
	if !known {
		return domain.Reason{
			Bucket:      domain.ReasonOther,
			Cause:       cause,
			Explanation: catalog[domain.CauseNone],
		}
	}

	return domain.Reason{
		Bucket:      bucket,
		Cause:       cause,
		Explanation: catalog[cause],
	}
}

// ClassifyPtr удобная обёртка для полей-указателей в результатах
func ClassifyPtr(cause domain.Cause, locale string) *domain.Reason {
	r := ClassifyLocalized(cause, locale)
	return &r
}

// SupportedLocale возвращает true, если для языка есть пояснения
func SupportedLocale(locale string) bool {
	_, ok := explanations[locale]
	return ok
}

package domain

// ReasonBucket пользовательская категория причины недоступности
type ReasonBucket string

const (
	ReasonExistingBooking        ReasonBucket = "existing_booking"
	ReasonPendingBooking         ReasonBucket = "pending_booking"
	ReasonDateException          ReasonBucket = "date_exception"
	ReasonRuleMismatch           ReasonBucket = "rule_mismatch"
	ReasonLeadTimeViolation      ReasonBucket = "lead_time_violation"
	ReasonOutsideConfiguredHours ReasonBucket = "outside_configured_hours"
	ReasonOther                  ReasonBucket = "other"
)

// Cause внутренняя машинная причина недоступности, вход классификатора
type Cause string

const (
	CauseNone             Cause = ""
	CauseLeadTime         Cause = "lead_time"
	CauseBeyondHorizon    Cause = "beyond_horizon"
	CauseBookingConfirmed Cause = "booking_confirmed"
	CauseBookingPending   Cause = "booking_pending"
	CauseExceptionBlock   Cause = "exception_block"
	CauseExceptionHours   Cause = "exception_hours"
	CauseRuleGap          Cause = "rule_gap"
	CauseOutsideHours     Cause = "outside_hours"
)

// Reason классифицированная причина с пояснением для пользователя
type Reason struct {
	Bucket      ReasonBucket
	Cause       Cause
	Explanation string
}

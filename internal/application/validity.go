package application

import "time"

// Validity statuses returned by public verification.
const (
	ValidityPending   = "Pending Approval"
	ValidityRejected  = "Rejected"
	ValidityValid     = "Valid"
	ValidityNotActive = "Not Yet Active"
	ValidityExpired   = "Expired"
	ValidityDeparted  = "Departed - No Longer Valid"
)

type Validity struct {
	IsValid bool   `json:"is_valid"`
	Status  string `json:"validity_status"`
}

// EvaluateValidity derives the visa's current validity from its status and
// travel dates. When an actual arrival is recorded it replaces the scheduled
// arrival date as the start of the validity window. A recorded departure
// invalidates the visa regardless of dates.
func EvaluateValidity(status string, arrivalDate, expectedDeparture time.Time, actualArrival, actualDeparture *time.Time, now time.Time) Validity {
	switch status {
	case StatusRejected:
		return Validity{IsValid: false, Status: ValidityRejected}
	case StatusApproved:
	default:
		return Validity{IsValid: false, Status: ValidityPending}
	}

	if actualDeparture != nil {
		return Validity{IsValid: false, Status: ValidityDeparted}
	}

	start := arrivalDate
	if actualArrival != nil {
		start = *actualArrival
	}

	if !now.Before(start) && !now.After(expectedDeparture) {
		return Validity{IsValid: true, Status: ValidityValid}
	}
	// Not Yet Active is judged against the scheduled arrival, not the
	// recorded one: an actual arrival stamped in the future does not push
	// the visa back into a not-yet-active state.
	if now.Before(arrivalDate) {
		return Validity{IsValid: true, Status: ValidityNotActive}
	}
	return Validity{IsValid: false, Status: ValidityExpired}
}

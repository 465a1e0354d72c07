package arrival

import (
	"time"

	internal "github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/core/common/validation"
)

// Entry statuses for the ledger.
const (
	EntryStatusPending  = "pending"
	EntryStatusArrived  = "arrived"
	EntryStatusDeparted = "departed"
)

// ArrivalRecord is the ledger view returned by the API, flattened with
// the applicant fields officers need at the border desk.
type ArrivalRecord struct {
	ID                   int64      `json:"id"`
	VisaApplicationID    int64      `json:"visa_application_id"`
	ReferenceNumber      string     `json:"reference_number"`
	ApplicantName        string     `json:"applicant_name"`
	PassportNumber       string     `json:"passport_number"`
	Nationality          string     `json:"nationality"`
	EntryStatus          string     `json:"entry_status"`
	ActualArrivalDate    *time.Time `json:"actual_arrival_date,omitempty"`
	ActualDepartureDate  *time.Time `json:"actual_departure_date,omitempty"`
	ApprovedBy           int64      `json:"approved_by"`
	ArrivalProcessedBy   *int64     `json:"arrival_processed_by,omitempty"`
	DepartureProcessedBy *int64     `json:"departure_processed_by,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// RecordArrivalDTO marks an applicant as physically arrived. The arrival
// timestamp defaults to now when omitted.
type RecordArrivalDTO struct {
	VisaApplicationID int64      `json:"visa_application_id"`
	ActualArrivalDate *time.Time `json:"actual_arrival_date"`
}

func (dto *RecordArrivalDTO) Validate() *internal.AppError {
	if dto.VisaApplicationID <= 0 {
		v := validation.NewValidator()
		v.Field("visa_application_id", "").Required()
		return v.Validate()
	}
	return nil
}

type RecordDepartureDTO struct {
	ActualDepartureDate *time.Time `json:"actual_departure_date"`
}

type ListRecordsFilter struct {
	EntryStatus string
	Search      string
	Page        int
	PageSize    int
}

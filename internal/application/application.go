package application

import (
	"errors"
	"time"

	applicationDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/application"
)

type VisaApplication struct {
	ID                    int64      `json:"id"`
	ReferenceNumber       string     `json:"reference_number"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	Email                 string     `json:"email"`
	PassportNumber        string     `json:"passport_number"`
	Nationality           string     `json:"nationality"`
	PurposeOfVisit        string     `json:"purpose_of_visit,omitempty"`
	Status                string     `json:"status"`
	RejectionReason       *string    `json:"rejection_reason,omitempty"`
	ArrivalDate           time.Time  `json:"arrival_date"`
	ExpectedDepartureDate time.Time  `json:"expected_departure_date"`
	AppliedAt             time.Time  `json:"applied_at"`
	ProcessedAt           *time.Time `json:"processed_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	// DefaultRejectionReason is stored when an officer rejects without
	// giving one.
	DefaultRejectionReason = "Application did not meet entry requirements"
)

// ErrDuplicateReference is returned by the repository when an insert hits
// the unique constraint on reference_number; the generator retries on it.
var ErrDuplicateReference = errors.New("reference number already exists")

func (a *VisaApplication) CanBeApproved() bool {
	return a.Status == StatusPending
}

func (a *VisaApplication) CanBeRejected() bool {
	return a.Status == StatusPending
}

func (a *VisaApplication) Approve() {
	a.Status = StatusApproved
	now := time.Now()
	a.ProcessedAt = &now
	a.UpdatedAt = now
}

func (a *VisaApplication) Reject(reason string) {
	if reason == "" {
		reason = DefaultRejectionReason
	}
	a.Status = StatusRejected
	a.RejectionReason = &reason
	now := time.Now()
	a.ProcessedAt = &now
	a.UpdatedAt = now
}

func (a *VisaApplication) ApplicantName() string {
	return a.FirstName + " " + a.LastName
}

func ToDataModel(a *VisaApplication) *applicationDatamodel.VisaApplication {
	return &applicationDatamodel.VisaApplication{
		ID:                    a.ID,
		ReferenceNumber:       a.ReferenceNumber,
		FirstName:             a.FirstName,
		LastName:              a.LastName,
		Email:                 a.Email,
		PassportNumber:        a.PassportNumber,
		Nationality:           a.Nationality,
		PurposeOfVisit:        a.PurposeOfVisit,
		Status:                a.Status,
		RejectionReason:       a.RejectionReason,
		ArrivalDate:           a.ArrivalDate,
		ExpectedDepartureDate: a.ExpectedDepartureDate,
		AppliedAt:             a.AppliedAt,
		ProcessedAt:           a.ProcessedAt,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

func FromDataModel(a *applicationDatamodel.VisaApplication) *VisaApplication {
	return &VisaApplication{
		ID:                    a.ID,
		ReferenceNumber:       a.ReferenceNumber,
		FirstName:             a.FirstName,
		LastName:              a.LastName,
		Email:                 a.Email,
		PassportNumber:        a.PassportNumber,
		Nationality:           a.Nationality,
		PurposeOfVisit:        a.PurposeOfVisit,
		Status:                a.Status,
		RejectionReason:       a.RejectionReason,
		ArrivalDate:           a.ArrivalDate,
		ExpectedDepartureDate: a.ExpectedDepartureDate,
		AppliedAt:             a.AppliedAt,
		ProcessedAt:           a.ProcessedAt,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

func FromDataModelSlice(models []*applicationDatamodel.VisaApplication) []*VisaApplication {
	result := make([]*VisaApplication, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}

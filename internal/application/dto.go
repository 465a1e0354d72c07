package application

import (
	"time"

	internal "github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/core/common/validation"
)

// SubmitApplicationDTO is the public submission payload. Status and
// reference number are never taken from the client.
type SubmitApplicationDTO struct {
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Email                 string    `json:"email"`
	PassportNumber        string    `json:"passport_number"`
	Nationality           string    `json:"nationality"`
	PurposeOfVisit        string    `json:"purpose_of_visit"`
	ArrivalDate           time.Time `json:"arrival_date"`
	ExpectedDepartureDate time.Time `json:"expected_departure_date"`
}

func (dto *SubmitApplicationDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required().MaxLen(100)
	v.Field("last_name", dto.LastName).Required().MaxLen(100)
	v.Field("email", dto.Email).Required().Email()
	v.Field("passport_number", dto.PassportNumber).Required().MaxLen(20)
	v.Field("nationality", dto.Nationality).Required().MaxLen(100)
	v.Field("purpose_of_visit", dto.PurposeOfVisit).MaxLen(500)
	v.Field("arrival_date", dto.ArrivalDate).Required()
	v.Field("expected_departure_date", dto.ExpectedDepartureDate).Required().
		NotBefore(dto.ArrivalDate, "expected departure date must not be before arrival date")
	return v.Validate()
}

func (dto *SubmitApplicationDTO) ToApplication() *VisaApplication {
	now := time.Now()
	return &VisaApplication{
		FirstName:             dto.FirstName,
		LastName:              dto.LastName,
		Email:                 dto.Email,
		PassportNumber:        dto.PassportNumber,
		Nationality:           dto.Nationality,
		PurposeOfVisit:        dto.PurposeOfVisit,
		Status:                StatusPending,
		ArrivalDate:           dto.ArrivalDate,
		ExpectedDepartureDate: dto.ExpectedDepartureDate,
		AppliedAt:             now,
	}
}

// UpdateApplicationDTO carries applicant-detail corrections. Status,
// reference number and processing fields can only change through the
// dedicated approve/reject operations.
type UpdateApplicationDTO struct {
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Email                 string    `json:"email"`
	PassportNumber        string    `json:"passport_number"`
	Nationality           string    `json:"nationality"`
	PurposeOfVisit        string    `json:"purpose_of_visit"`
	ArrivalDate           time.Time `json:"arrival_date"`
	ExpectedDepartureDate time.Time `json:"expected_departure_date"`
}

func (dto *UpdateApplicationDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required().MaxLen(100)
	v.Field("last_name", dto.LastName).Required().MaxLen(100)
	v.Field("email", dto.Email).Required().Email()
	v.Field("passport_number", dto.PassportNumber).Required().MaxLen(20)
	v.Field("nationality", dto.Nationality).Required().MaxLen(100)
	v.Field("purpose_of_visit", dto.PurposeOfVisit).MaxLen(500)
	v.Field("arrival_date", dto.ArrivalDate).Required()
	v.Field("expected_departure_date", dto.ExpectedDepartureDate).Required().
		NotBefore(dto.ArrivalDate, "expected departure date must not be before arrival date")
	return v.Validate()
}

type RejectApplicationDTO struct {
	Reason string `json:"reason"`
}

type ListApplicationsFilter struct {
	Status      string
	Nationality string
	Search      string
	Page        int
	PageSize    int
}

type VerificationResponse struct {
	ReferenceNumber       string    `json:"reference_number"`
	ApplicantName         string    `json:"applicant_name"`
	Nationality           string    `json:"nationality"`
	Status                string    `json:"status"`
	ArrivalDate           time.Time `json:"arrival_date"`
	ExpectedDepartureDate time.Time `json:"expected_departure_date"`
	IsValid               bool      `json:"is_valid"`
	ValidityStatus        string    `json:"validity_status"`
}

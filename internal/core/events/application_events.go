package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeApplicationSubmitted = "application.submitted"
	EventTypeApplicationApproved  = "application.approved"
	EventTypeApplicationRejected  = "application.rejected"
)

type ApplicationSubmittedEvent struct {
	BaseEvent
	ApplicationID   int64  `json:"application_id"`
	ReferenceNumber string `json:"reference_number"`
	Email           string `json:"email"`
	ApplicantName   string `json:"applicant_name"`
}

func NewApplicationSubmittedEvent(applicationID int64, referenceNumber, email, applicantName string) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeApplicationSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"application_id":   applicationID,
				"reference_number": referenceNumber,
				"email":            email,
				"applicant_name":   applicantName,
			},
		},
		ApplicationID:   applicationID,
		ReferenceNumber: referenceNumber,
		Email:           email,
		ApplicantName:   applicantName,
	}
}

type ApplicationApprovedEvent struct {
	BaseEvent
	ApplicationID   int64  `json:"application_id"`
	ReferenceNumber string `json:"reference_number"`
	Email           string `json:"email"`
	ApplicantName   string `json:"applicant_name"`
}

func NewApplicationApprovedEvent(applicationID int64, referenceNumber, email, applicantName string) *ApplicationApprovedEvent {
	return &ApplicationApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeApplicationApproved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"application_id":   applicationID,
				"reference_number": referenceNumber,
				"email":            email,
				"applicant_name":   applicantName,
			},
		},
		ApplicationID:   applicationID,
		ReferenceNumber: referenceNumber,
		Email:           email,
		ApplicantName:   applicantName,
	}
}

type ApplicationRejectedEvent struct {
	BaseEvent
	ApplicationID   int64  `json:"application_id"`
	ReferenceNumber string `json:"reference_number"`
	Email           string `json:"email"`
	ApplicantName   string `json:"applicant_name"`
	Reason          string `json:"reason"`
}

func NewApplicationRejectedEvent(applicationID int64, referenceNumber, email, applicantName, reason string) *ApplicationRejectedEvent {
	return &ApplicationRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeApplicationRejected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"application_id":   applicationID,
				"reference_number": referenceNumber,
				"email":            email,
				"applicant_name":   applicantName,
				"reason":           reason,
			},
		},
		ApplicationID:   applicationID,
		ReferenceNumber: referenceNumber,
		Email:           email,
		ApplicantName:   applicantName,
		Reason:          reason,
	}
}

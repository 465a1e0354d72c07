package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	internal "github.com/evisarw/visa-management/internal"
	applicationDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/application"
	"github.com/evisarw/visa-management/internal/core/events"
)

const maxReferenceAttempts = 5

type ServiceAPI interface {
	Submit(dto *SubmitApplicationDTO, userID *int64) (*VisaApplication, error)
	GetApplication(id int64) (*VisaApplication, error)
	ListApplications(filter ListApplicationsFilter) ([]*VisaApplication, int64, error)
	UpdateApplication(id int64, dto *UpdateApplicationDTO) (*VisaApplication, error)
	ApproveApplication(id int64, approvedBy int64) (*VisaApplication, error)
	RejectApplication(id int64, reason string) (*VisaApplication, error)
	DeleteApplication(id int64) error
	VerifyByReference(referenceNumber string) (*VerificationResponse, error)
}

type RepositoryAPI interface {
	Create(app *applicationDatamodel.VisaApplication) error
	GetByID(id int64) (*applicationDatamodel.VisaApplication, error)
	GetByReference(referenceNumber string) (*applicationDatamodel.VisaApplication, error)
	Update(app *applicationDatamodel.VisaApplication) error
	List(filter ListApplicationsFilter) ([]*applicationDatamodel.VisaApplication, int64, error)
	// ApproveAndCreateArrival persists the approved application and opens
	// its arrival ledger record in a single transaction.
	ApproveAndCreateArrival(app *applicationDatamodel.VisaApplication, approvedBy int64) error
	// Delete removes the application together with its arrival record.
	Delete(id int64) error
	// ArrivalDates returns the recorded actual arrival and departure for an
	// application; nil when not yet recorded or no ledger record exists.
	ArrivalDates(applicationID int64) (actualArrival, actualDeparture *time.Time, err error)
	LinkUserApplication(userID, applicationID int64) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Submit(dto *SubmitApplicationDTO, userID *int64) (*VisaApplication, error) {
	if appErr := dto.Validate(); appErr != nil {
		s.logger.Error("application validation failed", "error", appErr)
		return nil, appErr
	}

	app := dto.ToApplication()
	model := ToDataModel(app)

	var err error
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		model.ReferenceNumber, err = GenerateReferenceNumber(s.now())
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(model)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateReference) {
			s.logger.Error("failed to create visa application", "error", err)
			return nil, internal.NewInternalError("Failed to submit application", err)
		}
		s.logger.Warn("reference number collision, regenerating",
			"reference_number", model.ReferenceNumber, "attempt", attempt+1)
	}
	if err != nil {
		return nil, internal.NewInternalError("Failed to allocate reference number", err)
	}

	if userID != nil {
		if linkErr := s.repo.LinkUserApplication(*userID, model.ID); linkErr != nil {
			s.logger.Error("failed to link application to user",
				"user_id", *userID, "application_id", model.ID, "error", linkErr)
		}
	}

	created := FromDataModel(model)
	s.logger.Info("visa application submitted",
		"application_id", created.ID,
		"reference_number", created.ReferenceNumber,
		"nationality", created.Nationality)

	s.publish(events.NewApplicationSubmittedEvent(created.ID, created.ReferenceNumber, created.Email, created.ApplicantName()))

	return created, nil
}

func (s *Service) GetApplication(id int64) (*VisaApplication, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get visa application", "error", err, "application_id", id)
		return nil, internal.NewInternalError("Failed to get application", err)
	}
	if model == nil {
		return nil, internal.ErrApplicationNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) ListApplications(filter ListApplicationsFilter) ([]*VisaApplication, int64, error) {
	models, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list visa applications", "error", err)
		return nil, 0, internal.NewInternalError("Failed to list applications", err)
	}
	return FromDataModelSlice(models), total, nil
}

// UpdateApplication corrects applicant details. Status transitions go
// through ApproveApplication and RejectApplication only.
func (s *Service) UpdateApplication(id int64, dto *UpdateApplicationDTO) (*VisaApplication, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("Failed to get application", err)
	}
	if model == nil {
		return nil, internal.ErrApplicationNotFound
	}

	model.FirstName = dto.FirstName
	model.LastName = dto.LastName
	model.Email = dto.Email
	model.PassportNumber = dto.PassportNumber
	model.Nationality = dto.Nationality
	model.PurposeOfVisit = dto.PurposeOfVisit
	model.ArrivalDate = dto.ArrivalDate
	model.ExpectedDepartureDate = dto.ExpectedDepartureDate

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("failed to update visa application", "error", err, "application_id", id)
		return nil, internal.NewInternalError("Failed to update application", err)
	}

	return FromDataModel(model), nil
}

func (s *Service) ApproveApplication(id int64, approvedBy int64) (*VisaApplication, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("Failed to get application", err)
	}
	if model == nil {
		return nil, internal.ErrApplicationNotFound
	}

	app := FromDataModel(model)
	if !app.CanBeApproved() {
		s.logger.Warn("cannot approve application in current status",
			"application_id", id, "status", app.Status)
		if app.Status == StatusRejected {
			return nil, internal.ErrAlreadyRejected
		}
		return nil, internal.ErrAlreadyApproved
	}

	app.Approve()
	if err := s.repo.ApproveAndCreateArrival(ToDataModel(app), approvedBy); err != nil {
		s.logger.Error("failed to approve visa application",
			"error", err, "application_id", id, "approved_by", approvedBy)
		return nil, internal.NewInternalError("Failed to approve application", err)
	}

	s.logger.Info("visa application approved",
		"application_id", app.ID,
		"reference_number", app.ReferenceNumber,
		"approved_by", approvedBy)

	s.publish(events.NewApplicationApprovedEvent(app.ID, app.ReferenceNumber, app.Email, app.ApplicantName()))

	return app, nil
}

func (s *Service) RejectApplication(id int64, reason string) (*VisaApplication, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("Failed to get application", err)
	}
	if model == nil {
		return nil, internal.ErrApplicationNotFound
	}

	app := FromDataModel(model)
	if !app.CanBeRejected() {
		s.logger.Warn("cannot reject application in current status",
			"application_id", id, "status", app.Status)
		if app.Status == StatusApproved {
			return nil, internal.ErrAlreadyApproved
		}
		return nil, internal.ErrAlreadyRejected
	}

	app.Reject(reason)
	if err := s.repo.Update(ToDataModel(app)); err != nil {
		s.logger.Error("failed to reject visa application", "error", err, "application_id", id)
		return nil, internal.NewInternalError("Failed to reject application", err)
	}

	s.logger.Info("visa application rejected",
		"application_id", app.ID,
		"reference_number", app.ReferenceNumber,
		"reason", *app.RejectionReason)

	s.publish(events.NewApplicationRejectedEvent(app.ID, app.ReferenceNumber, app.Email, app.ApplicantName(), *app.RejectionReason))

	return app, nil
}

func (s *Service) DeleteApplication(id int64) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("Failed to get application", err)
	}
	if model == nil {
		return internal.ErrApplicationNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete visa application", "error", err, "application_id", id)
		return internal.NewInternalError("Failed to delete application", err)
	}

	s.logger.Info("visa application deleted",
		"application_id", id,
		"reference_number", model.ReferenceNumber)
	return nil
}

// VerifyByReference is the public lookup behind the QR code on issued
// visa documents.
func (s *Service) VerifyByReference(referenceNumber string) (*VerificationResponse, error) {
	model, err := s.repo.GetByReference(referenceNumber)
	if err != nil {
		s.logger.Error("failed to look up reference number", "error", err, "reference_number", referenceNumber)
		return nil, internal.NewInternalError("Failed to verify application", err)
	}
	if model == nil {
		return nil, internal.ErrApplicationNotFound
	}

	actualArrival, actualDeparture, err := s.repo.ArrivalDates(model.ID)
	if err != nil {
		s.logger.Error("failed to load arrival dates for verification",
			"error", err, "application_id", model.ID)
		return nil, internal.NewInternalError("Failed to verify application", err)
	}

	app := FromDataModel(model)
	validity := EvaluateValidity(app.Status, app.ArrivalDate, app.ExpectedDepartureDate, actualArrival, actualDeparture, s.now())

	return &VerificationResponse{
		ReferenceNumber:       app.ReferenceNumber,
		ApplicantName:         app.ApplicantName(),
		Nationality:           app.Nationality,
		Status:                app.Status,
		ArrivalDate:           app.ArrivalDate,
		ExpectedDepartureDate: app.ExpectedDepartureDate,
		IsValid:               validity.IsValid,
		ValidityStatus:        validity.Status,
	}, nil
}

func (s *Service) publish(event events.Event) {
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event",
			"event_type", event.EventType(), "error", err)
	}
}

package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evisarw/visa-management/internal/application"
	"github.com/evisarw/visa-management/internal/core/events"
)

// EnqueuerAPI is the dispatcher surface the service needs.
type EnqueuerAPI interface {
	Enqueue(email Email) error
}

type ApplicationReaderAPI interface {
	GetApplication(id int64) (*application.VisaApplication, error)
}

type DocumentGeneratorAPI interface {
	VisaPDF(app *application.VisaApplication) ([]byte, error)
	VerifyURL(referenceNumber string) string
}

// Service turns application lifecycle events into emails.
type Service struct {
	dispatcher   EnqueuerAPI
	applications ApplicationReaderAPI
	documents    DocumentGeneratorAPI
	issuerName   string
	logger       *slog.Logger
}

func NewService(dispatcher EnqueuerAPI, applications ApplicationReaderAPI, documents DocumentGeneratorAPI, issuerName string, logger *slog.Logger) *Service {
	return &Service{
		dispatcher:   dispatcher,
		applications: applications,
		documents:    documents,
		issuerName:   issuerName,
		logger:       logger,
	}
}

// Subscribe registers the lifecycle event handlers on the bus.
func (s *Service) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeApplicationSubmitted, s.handleSubmitted)
	bus.Subscribe(events.EventTypeApplicationApproved, s.handleApproved)
	bus.Subscribe(events.EventTypeApplicationRejected, s.handleRejected)
}

func (s *Service) handleSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ApplicationSubmittedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	body, err := renderTemplate("submitted", templateData{
		ApplicantName:   e.ApplicantName,
		ReferenceNumber: e.ReferenceNumber,
		IssuerName:      s.issuerName,
	})
	if err != nil {
		return fmt.Errorf("render submitted email: %w", err)
	}

	return s.dispatcher.Enqueue(Email{
		To:       e.Email,
		Subject:  fmt.Sprintf("Visa application received - %s", e.ReferenceNumber),
		HTMLBody: body,
	})
}

func (s *Service) handleApproved(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ApplicationApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	body, err := renderTemplate("approved", templateData{
		ApplicantName:   e.ApplicantName,
		ReferenceNumber: e.ReferenceNumber,
		VerifyURL:       s.documents.VerifyURL(e.ReferenceNumber),
		IssuerName:      s.issuerName,
	})
	if err != nil {
		return fmt.Errorf("render approved email: %w", err)
	}

	email := Email{
		To:       e.Email,
		Subject:  fmt.Sprintf("Visa application approved - %s", e.ReferenceNumber),
		HTMLBody: body,
	}

	// The attachment is best-effort: a document failure should not block
	// the approval email itself.
	if app, err := s.applications.GetApplication(e.ApplicationID); err != nil {
		s.logger.Error("failed to load application for approval email",
			"application_id", e.ApplicationID, "error", err)
	} else if pdf, err := s.documents.VisaPDF(app); err != nil {
		s.logger.Error("failed to generate visa document for approval email",
			"application_id", e.ApplicationID, "error", err)
	} else {
		email.Attachment = &Attachment{
			Filename: fmt.Sprintf("visa-%s.pdf", e.ReferenceNumber),
			MIMEType: "application/pdf",
			Data:     pdf,
		}
	}

	return s.dispatcher.Enqueue(email)
}

func (s *Service) handleRejected(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ApplicationRejectedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	body, err := renderTemplate("rejected", templateData{
		ApplicantName:   e.ApplicantName,
		ReferenceNumber: e.ReferenceNumber,
		Reason:          e.Reason,
		IssuerName:      s.issuerName,
	})
	if err != nil {
		return fmt.Errorf("render rejected email: %w", err)
	}

	return s.dispatcher.Enqueue(Email{
		To:       e.Email,
		Subject:  fmt.Sprintf("Visa application rejected - %s", e.ReferenceNumber),
		HTMLBody: body,
	})
}

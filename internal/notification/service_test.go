package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evisarw/visa-management/internal/application"
	"github.com/evisarw/visa-management/internal/core/events"
	"github.com/evisarw/visa-management/internal/notification"
)

type fakeEnqueuer struct {
	emails []notification.Email
	err    error
}

func (f *fakeEnqueuer) Enqueue(email notification.Email) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, email)
	return nil
}

type fakeApplicationReader struct {
	app *application.VisaApplication
	err error
}

func (f *fakeApplicationReader) GetApplication(id int64) (*application.VisaApplication, error) {
	return f.app, f.err
}

type fakeDocumentGenerator struct {
	pdf []byte
	err error
}

func (f *fakeDocumentGenerator) VisaPDF(app *application.VisaApplication) ([]byte, error) {
	return f.pdf, f.err
}

func (f *fakeDocumentGenerator) VerifyURL(referenceNumber string) string {
	return "https://evisa.example.com/verify/" + referenceNumber
}

var _ = Describe("NotificationService", func() {
	var (
		enqueuer  *fakeEnqueuer
		reader    *fakeApplicationReader
		documents *fakeDocumentGenerator
		bus       *events.EventBus
	)

	BeforeEach(func() {
		enqueuer = &fakeEnqueuer{}
		reader = &fakeApplicationReader{
			app: &application.VisaApplication{
				ID:              1,
				ReferenceNumber: "RW26253001",
				Status:          application.StatusApproved,
			},
		}
		documents = &fakeDocumentGenerator{pdf: []byte("%PDF-1.7 test")}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)

		service := notification.NewService(enqueuer, reader, documents, "Directorate of Immigration", logger)
		service.Subscribe(bus)
	})

	It("sends a confirmation email on submission", func() {
		event := events.NewApplicationSubmittedEvent(1, "RW26253001", "amina.uwase@example.com", "Amina Uwase")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(enqueuer.emails).To(HaveLen(1))
		email := enqueuer.emails[0]
		Expect(email.To).To(Equal("amina.uwase@example.com"))
		Expect(email.Subject).To(ContainSubstring("received"))
		Expect(email.Subject).To(ContainSubstring("RW26253001"))
		Expect(email.HTMLBody).To(ContainSubstring("Amina Uwase"))
		Expect(email.Attachment).To(BeNil())
	})

	It("attaches the visa document to the approval email", func() {
		event := events.NewApplicationApprovedEvent(1, "RW26253001", "amina.uwase@example.com", "Amina Uwase")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(enqueuer.emails).To(HaveLen(1))
		email := enqueuer.emails[0]
		Expect(email.Subject).To(ContainSubstring("approved"))
		Expect(email.HTMLBody).To(ContainSubstring("verify"))
		Expect(email.Attachment).ToNot(BeNil())
		Expect(email.Attachment.Filename).To(Equal("visa-RW26253001.pdf"))
		Expect(email.Attachment.MIMEType).To(Equal("application/pdf"))
	})

	It("still sends the approval email when the document fails", func() {
		documents.err = errors.New("render failed")
		event := events.NewApplicationApprovedEvent(1, "RW26253001", "amina.uwase@example.com", "Amina Uwase")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(enqueuer.emails).To(HaveLen(1))
		Expect(enqueuer.emails[0].Attachment).To(BeNil())
	})

	It("includes the reason in the rejection email", func() {
		event := events.NewApplicationRejectedEvent(1, "RW26253001", "amina.uwase@example.com", "Amina Uwase", "Passport expired")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(enqueuer.emails).To(HaveLen(1))
		email := enqueuer.emails[0]
		Expect(email.Subject).To(ContainSubstring("rejected"))
		Expect(email.HTMLBody).To(ContainSubstring("Passport expired"))
	})

	It("propagates enqueue failures back to the bus", func() {
		enqueuer.err = errors.New("queue full")
		event := events.NewApplicationSubmittedEvent(1, "RW26253001", "amina.uwase@example.com", "Amina Uwase")

		Expect(bus.PublishSync(context.Background(), event)).NotTo(Succeed())
	})
})

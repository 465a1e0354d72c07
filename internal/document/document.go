package document

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	internal "github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/application"
)

// Service renders the printable visa document handed to travellers. Only
// approved applications get a document.
type Service struct {
	frontendURL string
	issuerName  string
	logger      *slog.Logger
}

func NewService(frontendURL, issuerName string, logger *slog.Logger) *Service {
	return &Service{
		frontendURL: strings.TrimRight(frontendURL, "/"),
		issuerName:  issuerName,
		logger:      logger,
	}
}

// VerifyURL is the address encoded in the document QR code.
func (s *Service) VerifyURL(referenceNumber string) string {
	return fmt.Sprintf("%s/verify/%s", s.frontendURL, referenceNumber)
}

// VisaPDF renders the A5 visa document with applicant details, the
// validity window and a QR code pointing at public verification.
func (s *Service) VisaPDF(app *application.VisaApplication) ([]byte, error) {
	if app.Status != application.StatusApproved {
		return nil, internal.ErrNotApproved
	}

	qrPNG, err := qrcode.Encode(s.VerifyURL(app.ReferenceNumber), qrcode.Medium, 256)
	if err != nil {
		s.logger.Error("failed to encode verification QR code",
			"error", err, "reference_number", app.ReferenceNumber)
		return nil, internal.NewInternalError("Failed to generate visa document", err)
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(fmt.Sprintf("Visa %s", app.ReferenceNumber), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, s.issuerName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "VISA ON ARRIVAL", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, app.ReferenceNumber, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	s.field(pdf, "Full name", app.ApplicantName())
	s.field(pdf, "Passport number", app.PassportNumber)
	s.field(pdf, "Nationality", app.Nationality)
	s.field(pdf, "Valid from", app.ArrivalDate.Format("02 Jan 2006"))
	s.field(pdf, "Valid until", app.ExpectedDepartureDate.Format("02 Jan 2006"))
	if app.ProcessedAt != nil {
		s.field(pdf, "Issued on", app.ProcessedAt.Format("02 Jan 2006"))
	}

	pdf.RegisterImageOptionsReader("qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pageW, pageH := pdf.GetPageSize()
	const qrSize = 35.0
	pdf.ImageOptions("qr", (pageW-qrSize)/2, pageH-qrSize-18, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetY(pageH - 16)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, "Scan to verify validity at "+s.VerifyURL(app.ReferenceNumber), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("failed to render visa document",
			"error", err, "reference_number", app.ReferenceNumber)
		return nil, internal.NewInternalError("Failed to generate visa document", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) field(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

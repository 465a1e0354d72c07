package notification

import (
	"bytes"
	"html/template"
)

type templateData struct {
	ApplicantName   string
	ReferenceNumber string
	Reason          string
	VerifyURL       string
	IssuerName      string
}

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "submitted"}}
<html><body>
<h2>Application received</h2>
<p>Dear {{.ApplicantName}},</p>
<p>Your visa-on-arrival application has been received and is awaiting review.</p>
<p>Your reference number is <strong>{{.ReferenceNumber}}</strong>. Keep it for
tracking and verification.</p>
<p>{{.IssuerName}}</p>
</body></html>
{{end}}

{{define "approved"}}
<html><body>
<h2>Application approved</h2>
<p>Dear {{.ApplicantName}},</p>
<p>Your visa-on-arrival application <strong>{{.ReferenceNumber}}</strong> has
been approved. Your visa document is attached to this email.</p>
<p>Border officers can verify it at any time via the QR code, or at
<a href="{{.VerifyURL}}">{{.VerifyURL}}</a>.</p>
<p>{{.IssuerName}}</p>
</body></html>
{{end}}

{{define "rejected"}}
<html><body>
<h2>Application rejected</h2>
<p>Dear {{.ApplicantName}},</p>
<p>We regret to inform you that your visa-on-arrival application
<strong>{{.ReferenceNumber}}</strong> has been rejected.</p>
<p>Reason: {{.Reason}}</p>
<p>You may submit a new application once the issue has been resolved.</p>
<p>{{.IssuerName}}</p>
</body></html>
{{end}}
`))

func renderTemplate(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

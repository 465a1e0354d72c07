package notification

import (
	"io"

	gomail "gopkg.in/gomail.v2"
)

// SMTPSender delivers emails through a plain SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(email Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTMLBody)

	if email.Attachment != nil {
		att := email.Attachment
		msg.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {att.MIMEType}}))
	}

	return s.dialer.DialAndSend(msg)
}

package notification

// Attachment is an optional file included with an outgoing email.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Email is one outbound message handed to the dispatcher.
type Email struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// SenderAPI delivers a single email. Implementations must be safe for
// concurrent use by the worker pool.
type SenderAPI interface {
	Send(email Email) error
}

package mail

import gomail "gopkg.in/mail.v2"

// Dialer opens an authenticated SMTP session. *gomail.Dialer satisfies it.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// MailSender defines what callers need from a configured mailer
type MailSender interface {
	Send(body string) error
	Store(dir, body string) (string, error)
}

var _ MailSender = (*Mailer)(nil)

// Message is a single outgoing email as the mailer composes it.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment string
}

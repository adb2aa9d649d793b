package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	netmail "net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ryan-gang/sendmail/internal/config"

	gomail "gopkg.in/mail.v2"
)

// Mailer sends plain-text messages with an optional attachment to a single
// recipient. Configuration is fixed at Configure time and every Send opens
// its own SMTP session, so a Mailer can be reused. Concurrent Send calls on
// one Mailer are not supported.
type Mailer struct {
	from       *netmail.Address
	to         *netmail.Address
	replyTo    *netmail.Address
	subject    string
	attachment string
	dialer     Dialer
}

// Configure validates the addresses and SMTP settings and returns a Mailer
// ready to send to recipient. It performs no network I/O.
func Configure(cfg config.ConfigProvider, recipient, subject string, opts ...Option) (*Mailer, error) {
	const op = "configure"
	if cfg == nil {
		return nil, newError(ErrConfig, op, errors.New("no configuration provided"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, newError(ErrConfig, op, err)
	}

	from, err := parseAddress("from", cfg.GetSender())
	if err != nil {
		return nil, newError(ErrAddress, op, err)
	}
	to, err := parseAddress("to", recipient)
	if err != nil {
		return nil, newError(ErrAddress, op, err)
	}
	var replyTo *netmail.Address
	if strings.TrimSpace(cfg.GetReplyTo()) != "" {
		replyTo, err = parseAddress("reply-to", cfg.GetReplyTo())
		if err != nil {
			return nil, newError(ErrAddress, op, err)
		}
	}

	o := options{
		attachment: cfg.GetAttachment(),
		timeout:    cfg.GetTimeout(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dialer == nil {
		o.dialer = newDialer(cfg, o.timeout)
	}

	return &Mailer{
		from:       from,
		to:         to,
		replyTo:    replyTo,
		subject:    subject,
		attachment: o.attachment,
		dialer:     o.dialer,
	}, nil
}

func parseAddress(field, value string) (*netmail.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%s address is empty", field)
	}
	addr, err := netmail.ParseAddress(value)
	if err != nil {
		return nil, fmt.Errorf("%s address %q: %w", field, value, err)
	}
	return addr, nil
}

// newDialer makes the TLS decision explicit: implicit TLS when use_tls is
// set, otherwise a plain connection upgraded with STARTTLS if offered.
func newDialer(cfg config.ConfigProvider, timeout time.Duration) *gomail.Dialer {
	dialer := gomail.NewDialer(cfg.GetServer(), cfg.GetPort(), cfg.GetUsername(), cfg.GetPassword())
	dialer.SSL = cfg.UseTLS()
	dialer.StartTLSPolicy = gomail.OpportunisticStartTLS
	dialer.TLSConfig = &tls.Config{ServerName: cfg.GetServer(), MinVersion: tls.VersionTLS12}
	// a failed attempt is reported, never redialed
	dialer.RetryFailure = false
	if timeout > 0 {
		dialer.Timeout = timeout
	}
	return dialer
}

// Message returns the message a Send with body would transmit.
func (m *Mailer) Message(body string) Message {
	to := m.to.Address
	if m.to.Name != "" {
		to = m.to.String()
	}
	return Message{
		To:         to,
		Subject:    m.subject,
		Body:       body,
		Attachment: m.attachment,
	}
}

func (m *Mailer) compose(msg Message) (*gomail.Message, error) {
	gm := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	gm.SetAddressHeader("From", m.from.Address, m.from.Name)
	gm.SetAddressHeader("To", m.to.Address, m.to.Name)
	if m.replyTo != nil {
		gm.SetAddressHeader("Reply-To", m.replyTo.Address, m.replyTo.Name)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if msg.Attachment != "" {
		// read now, so a bad path fails before any connection is made
		data, err := os.ReadFile(msg.Attachment)
		if err != nil {
			return nil, newError(ErrAttachment, "attach", err)
		}
		gm.Attach(filepath.Base(msg.Attachment), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return gm, nil
}

// Send composes the message and transmits it over a new SMTP session.
// Nothing is retried.
func (m *Mailer) Send(body string) error {
	gm, err := m.compose(m.Message(body))
	if err != nil {
		return err
	}

	sender, err := m.dialer.Dial()
	if err != nil {
		return newError(ErrConnection, "dial", err)
	}
	defer sender.Close()

	if err := sender.Send(m.from.Address, []string{m.to.Address}, gm); err != nil {
		return newError(ErrTransmission, "send", err)
	}
	return nil
}

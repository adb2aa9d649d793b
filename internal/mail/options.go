package mail

import "time"

// Option adjusts a Mailer at Configure time.
type Option func(*options)

type options struct {
	attachment string
	timeout    time.Duration
	dialer     Dialer
}

// WithAttachment replaces the attachment path taken from the configuration.
// An empty path sends without attachment.
func WithAttachment(path string) Option {
	return func(o *options) {
		o.attachment = path
	}
}

// WithTimeout sets the dial timeout. Zero keeps the library default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithDialer replaces the SMTP dialer built from the configuration.
func WithDialer(d Dialer) Option {
	return func(o *options) {
		o.dialer = d
	}
}

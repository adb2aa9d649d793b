package mail

import (
	"errors"
	"fmt"
)

var (
	// ErrAddress indicates a malformed from, to or reply-to address.
	ErrAddress = errors.New("invalid email address")

	// ErrConfig indicates settings that cannot describe an SMTP session.
	ErrConfig = errors.New("invalid mailer configuration")

	// ErrConnection indicates the server could not be reached or rejected the credentials.
	ErrConnection = errors.New("smtp connection failed")

	// ErrTransmission indicates the message was refused after the session was established.
	ErrTransmission = errors.New("smtp transmission failed")

	// ErrAttachment indicates the attachment file could not be read.
	ErrAttachment = errors.New("attachment unreadable")
)

// Error carries one of the sentinel kinds above together with its cause.
// errors.Is matches both.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

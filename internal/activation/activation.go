// Package activation composes the account activation mail sent to newly
// registered users.
package activation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const Subject = "Account Activation"

var (
	ErrInvalidBaseURL = errors.New("activation base url must be absolute")
	ErrEmptyToken     = errors.New("activation token is empty")
)

// NewToken returns a random token identifying one pending activation.
func NewToken() string {
	return uuid.NewString()
}

// Link appends token as the last path segment of baseURL.
func Link(baseURL, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	return u.JoinPath(token).String(), nil
}

func Body(link string) string {
	return "Please, follow this link to activate your account " + link
}

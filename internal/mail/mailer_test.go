package mail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	netmail "net/mail"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ryan-gang/sendmail/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	gomail "gopkg.in/mail.v2"
)

// MockDialer is a mock implementation of Dialer.
type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) Dial() (gomail.SendCloser, error) {
	args := m.Called()
	sender, _ := args.Get(0).(gomail.SendCloser)
	return sender, args.Error(1)
}

type envelope struct {
	from string
	to   []string
	raw  []byte
}

// recordingSender stands in for an SMTP session and keeps what it was given.
type recordingSender struct {
	sent   []envelope
	err    error
	closed int
}

func (s *recordingSender) Send(from string, to []string, msg io.WriterTo) error {
	if s.err != nil {
		return s.err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return err
	}
	s.sent = append(s.sent, envelope{from: from, to: to, raw: buf.Bytes()})
	return nil
}

func (s *recordingSender) Close() error {
	s.closed++
	return nil
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Sender = "chatter@example.com"
	cfg.Username = "chatter@example.com"
	cfg.Password = "secret"
	cfg.Server = "smtp.example.com"
	return cfg
}

func provider(cfg *config.Config) config.ConfigProvider {
	return config.NewConfigProvider(cfg)
}

func readMessage(t *testing.T, raw []byte) *netmail.Message {
	t.Helper()
	msg, err := netmail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	return msg
}

func TestConfigure_InvalidRecipient(t *testing.T) {
	t.Parallel()

	for _, recipient := range []string{"", "not-an-address", "bob@", "<bob@example.com"} {
		dialer := &MockDialer{}
		m, err := Configure(provider(testConfig()), recipient, "Hi", WithDialer(dialer))

		require.ErrorIs(t, err, ErrAddress, recipient)
		assert.Nil(t, m)
		dialer.AssertNotCalled(t, "Dial")
	}
}

func TestConfigure_InvalidSender(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Sender = "chatter at example.com"

	_, err := Configure(provider(cfg), "bob@example.com", "Hi", WithDialer(&MockDialer{}))
	require.ErrorIs(t, err, ErrAddress)

	var mailErr *Error
	require.True(t, errors.As(err, &mailErr))
	assert.Equal(t, "configure", mailErr.Op)
}

func TestConfigure_InvalidReplyTo(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.ReplyTo = "reply@@example.com"

	_, err := Configure(provider(cfg), "bob@example.com", "Hi", WithDialer(&MockDialer{}))
	require.ErrorIs(t, err, ErrAddress)
}

func TestConfigure_InvalidSettings(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Port = 0

	_, err := Configure(provider(cfg), "bob@example.com", "Hi")
	require.ErrorIs(t, err, ErrConfig)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = Configure(nil, "bob@example.com", "Hi")
	require.ErrorIs(t, err, ErrConfig)
}

func TestConfigure_DialerFromConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Port = 587
	cfg.UseTLS = false
	cfg.Timeout = 5

	m, err := Configure(provider(cfg), "bob@example.com", "Hi")
	require.NoError(t, err)

	dialer, ok := m.dialer.(*gomail.Dialer)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", dialer.Host)
	assert.Equal(t, 587, dialer.Port)
	assert.Equal(t, "chatter@example.com", dialer.Username)
	assert.False(t, dialer.SSL)
	assert.Equal(t, gomail.OpportunisticStartTLS, dialer.StartTLSPolicy)
	assert.False(t, dialer.RetryFailure)
	assert.Equal(t, 5*time.Second, dialer.Timeout)
	assert.Equal(t, "smtp.example.com", dialer.TLSConfig.ServerName)

	m, err = Configure(provider(testConfig()), "bob@example.com", "Hi", WithTimeout(time.Minute))
	require.NoError(t, err)
	dialer = m.dialer.(*gomail.Dialer)
	assert.True(t, dialer.SSL, "use_tls dials implicit TLS")
	assert.Equal(t, time.Minute, dialer.Timeout)
}

func TestSend_PlainText(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.ReplyTo = "support@example.com"
	sender := &recordingSender{}
	dialer := &MockDialer{}
	dialer.On("Dial").Return(sender, nil).Once()

	m, err := Configure(provider(cfg), "bob@example.com", "Greetings", WithDialer(dialer))
	require.NoError(t, err)
	require.NoError(t, m.Send("hello"))

	dialer.AssertExpectations(t)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, 1, sender.closed)

	env := sender.sent[0]
	assert.Equal(t, "chatter@example.com", env.from)
	assert.Equal(t, []string{"bob@example.com"}, env.to)

	msg := readMessage(t, env.raw)
	assert.Equal(t, "Greetings", msg.Header.Get("Subject"))
	assert.Equal(t, "bob@example.com", msg.Header.Get("To"))
	assert.Equal(t, "chatter@example.com", msg.Header.Get("From"))
	assert.Equal(t, "support@example.com", msg.Header.Get("Reply-To"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mediaType)
	assert.True(t, strings.EqualFold(params["charset"], "utf-8"))

	body, err := io.ReadAll(quotedprintable.NewReader(msg.Body))
	require.NoError(t, err)
	assert.Equal(t, "hello", strings.TrimRight(string(body), "\r\n"))
}

func TestSend_NoReplyTo(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	dialer := &MockDialer{}
	dialer.On("Dial").Return(sender, nil)

	m, err := Configure(provider(testConfig()), "bob@example.com", "", WithDialer(dialer))
	require.NoError(t, err)
	require.NoError(t, m.Send(""))

	msg := readMessage(t, sender.sent[0].raw)
	assert.Empty(t, msg.Header.Get("Reply-To"))
	assert.Empty(t, msg.Header.Get("Subject"))
}

func TestSend_WithAttachment(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("quarterly numbers"), 0o600))

	sender := &recordingSender{}
	dialer := &MockDialer{}
	dialer.On("Dial").Return(sender, nil)

	m, err := Configure(provider(testConfig()), "bob@example.com", "Report", WithDialer(dialer), WithAttachment(path))
	require.NoError(t, err)
	require.NoError(t, m.Send("see attached"))
	require.Len(t, sender.sent, 1)

	msg := readMessage(t, sender.sent[0].raw)
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	reader := multipart.NewReader(msg.Body, params["boundary"])

	text, err := reader.NextPart()
	require.NoError(t, err)
	assert.Contains(t, text.Header.Get("Content-Type"), "text/plain")
	textBody, err := io.ReadAll(text)
	require.NoError(t, err)
	assert.Equal(t, "see attached", strings.TrimRight(string(textBody), "\r\n"))

	file, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "report.txt", file.FileName())
	content, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, file))
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(content))

	_, err = reader.NextPart()
	assert.ErrorIs(t, err, io.EOF, "exactly two parts")
}

func TestSend_AttachmentFromConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# notes"), 0o600))
	cfg := testConfig()
	cfg.Attachment = path

	m, err := Configure(provider(cfg), "bob@example.com", "Notes", WithDialer(&MockDialer{}))
	require.NoError(t, err)
	assert.Equal(t, path, m.Message("x").Attachment)

	m, err = Configure(provider(cfg), "bob@example.com", "Notes", WithDialer(&MockDialer{}), WithAttachment(""))
	require.NoError(t, err)
	assert.Empty(t, m.Message("x").Attachment)
}

func TestSend_MissingAttachment(t *testing.T) {
	t.Parallel()

	dialer := &MockDialer{}
	m, err := Configure(provider(testConfig()), "bob@example.com", "Report",
		WithDialer(dialer), WithAttachment(filepath.Join(t.TempDir(), "missing.pdf")))
	require.NoError(t, err, "attachment is only checked at send time")

	err = m.Send("see attached")
	require.ErrorIs(t, err, ErrAttachment)
	require.ErrorIs(t, err, os.ErrNotExist)
	dialer.AssertNotCalled(t, "Dial")
}

func TestSend_Twice(t *testing.T) {
	t.Parallel()

	first := &recordingSender{}
	second := &recordingSender{}
	dialer := &MockDialer{}
	dialer.On("Dial").Return(first, nil).Once()
	dialer.On("Dial").Return(second, nil).Once()

	m, err := Configure(provider(testConfig()), "bob@example.com", "Ping", WithDialer(dialer))
	require.NoError(t, err)

	require.NoError(t, m.Send("one"))
	require.NoError(t, m.Send("two"))

	dialer.AssertNumberOfCalls(t, "Dial", 2)
	require.Len(t, first.sent, 1)
	require.Len(t, second.sent, 1)

	body, err := io.ReadAll(quotedprintable.NewReader(readMessage(t, second.sent[0].raw).Body))
	require.NoError(t, err)
	assert.Equal(t, "two", strings.TrimRight(string(body), "\r\n"))
}

func TestSend_AuthFailure(t *testing.T) {
	t.Parallel()

	authErr := errors.New("535 5.7.8 Username and Password not accepted")
	dialer := &MockDialer{}
	dialer.On("Dial").Return(nil, authErr).Once()

	m, err := Configure(provider(testConfig()), "bob@example.com", "Hi", WithDialer(dialer))
	require.NoError(t, err)

	err = m.Send("hello")
	require.ErrorIs(t, err, ErrConnection)
	require.ErrorIs(t, err, authErr)
	assert.NotErrorIs(t, err, ErrTransmission)
	dialer.AssertExpectations(t)
}

func TestSend_TransmissionFailure(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{err: errors.New("554 message rejected")}
	dialer := &MockDialer{}
	dialer.On("Dial").Return(sender, nil).Once()

	m, err := Configure(provider(testConfig()), "bob@example.com", "Hi", WithDialer(dialer))
	require.NoError(t, err)

	err = m.Send("hello")
	require.ErrorIs(t, err, ErrTransmission)
	assert.Equal(t, 1, sender.closed, "session is closed after a failed send")
	assert.Contains(t, err.Error(), "554 message rejected")
}

func TestMessage(t *testing.T) {
	t.Parallel()

	m, err := Configure(provider(testConfig()), "Bob <bob@example.com>", "Hi", WithDialer(&MockDialer{}))
	require.NoError(t, err)

	msg := m.Message("body")
	assert.Equal(t, `"Bob" <bob@example.com>`, msg.To)
	assert.Equal(t, "Hi", msg.Subject)
	assert.Equal(t, "body", msg.Body)
}

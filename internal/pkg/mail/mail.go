package mail

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrConfigurationMissing is returned when the relay account address or secret is absent.
	ErrConfigurationMissing = errors.New("mail account address or secret is not configured")
	// ErrTransportUnavailable is returned by a transport that cannot deliver for the process lifetime.
	ErrTransportUnavailable = errors.New("email service not available")
	// ErrVerificationTimeout is returned when the relay handshake does not finish in time.
	ErrVerificationTimeout = errors.New("mail verification timeout")
	// ErrSendTimeout is returned when a single submission does not finish in time.
	ErrSendTimeout = errors.New("mail send timeout")
	// ErrRelayRejected wraps errors reported by the relay for a submission.
	ErrRelayRejected = errors.New("mail relay rejected message")
	// ErrNoRecipients is returned when To/Cc/Bcc are all empty.
	ErrNoRecipients = errors.New("no recipients provided")
	// ErrNoSender is returned when both Message.From and the configured default From are empty.
	ErrNoSender = errors.New("no sender provided")
)

// Message represents an email payload.
//
// Fields are provider-agnostic so they can be sent using SMTP or other
// delivery mechanisms.
type Message struct {
	// From is an optional explicit sender; fallback depends on implementation.
	From string
	// FromName is the optional display name paired with From.
	FromName string
	// To lists required recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body; preferred when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Recipients returns every envelope recipient of the message.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	out = append(out, m.Bcc...)
	return out
}

// Mail abstracts an email provider (SMTP, third-party API, etc).
type Mail interface {
	io.Closer
	// Verify checks that the relay accepts a connection with the configured account.
	Verify(ctx context.Context) error
	// Send dispatches the given message and returns the assigned Message-ID.
	Send(ctx context.Context, msg Message) (string, error)
	// Available reports whether the transport can currently attempt deliveries.
	Available() bool
}

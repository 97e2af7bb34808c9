// Package mail defines the contracts for sending email messages.
//
// Handlers and use cases work with the Mail interface and the Message payload.
// The SMTP implementation keeps a small pool of long-lived relay sessions,
// caps the outbound send rate and bounds every verification and submission
// with a timeout. When the relay account is not configured (or the relay
// refuses verification) the application installs the Disabled implementation,
// which fails fast with ErrTransportUnavailable.
package mail

package mail

import "context"

// Disabled is a Mail implementation that never delivers.
//
// It is installed when the relay account is not configured.
type Disabled struct {
	reason error
}

// NewDisabled returns a transport that fails every operation with ErrTransportUnavailable.
func NewDisabled(reason error) *Disabled {
	return &Disabled{reason: reason}
}

// Reason returns the error that caused the transport to be disabled.
func (d *Disabled) Reason() error {
	return d.reason
}

// Verify always fails with ErrTransportUnavailable.
func (d *Disabled) Verify(context.Context) error {
	return ErrTransportUnavailable
}

// Send always fails with ErrTransportUnavailable.
func (d *Disabled) Send(context.Context, Message) (string, error) {
	return "", ErrTransportUnavailable
}

// Available always returns false.
func (d *Disabled) Available() bool {
	return false
}

// Close implements io.Closer for interface compatibility.
func (d *Disabled) Close() error {
	return nil
}

package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"
)

const (
	// DefaultHost is the relay used when SMTPConfig.Host is empty.
	DefaultHost = "smtp.gmail.com"
	// DefaultPort is the submission port used when SMTPConfig.Port is zero.
	DefaultPort = 587
	// DefaultFromName is the sender display name used when none is configured.
	DefaultFromName = "YATRI Training Portal"
	// DefaultMaxConnections caps concurrently open relay sessions.
	DefaultMaxConnections = 1
	// DefaultMaxMessages is the number of messages sent before a session is rotated.
	DefaultMaxMessages = 100
	// DefaultRateLimit is the number of messages allowed per minute.
	DefaultRateLimit = 14
	// DefaultVerifyTimeout bounds Verify.
	DefaultVerifyTimeout = 30 * time.Second
	// DefaultSendTimeout bounds a single submission.
	DefaultSendTimeout = 60 * time.Second
)

// Dialer opens an authenticated relay session.
//
// *gomail.Dialer satisfies this interface.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// SMTPConfig configures the SMTP implementation.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username is the relay account address.
	Username string
	// Password is the relay account secret.
	Password string
	// From is the default sender when Message.From is empty. Defaults to Username.
	From string
	// FromName is the default sender display name.
	FromName string
	// InsecureSkipVerify disables TLS certificate verification of the relay.
	InsecureSkipVerify bool
	// MaxConnections caps concurrently open relay sessions.
	MaxConnections int
	// MaxMessages rotates a session after this many messages.
	MaxMessages int
	// RateLimit is the number of messages allowed per minute.
	RateLimit int
	// VerifyTimeout bounds Verify.
	VerifyTimeout time.Duration
	// SendTimeout bounds a single submission, excluding time spent queued.
	SendTimeout time.Duration
	// Dialer overrides the gomail dialer built from Host/Port/Username/Password.
	Dialer Dialer
}

type session struct {
	sc   gomail.SendCloser
	sent int
}

func (s *session) reset() {
	if s.sc != nil {
		//nolint:errcheck,gosec // the session is discarded either way
		s.sc.Close()
	}
	s.sc = nil
	s.sent = 0
}

// SMTP is a Mail implementation backed by gopkg.in/gomail.v2.
//
// Sessions are kept open between messages and handed out from a pool of
// MaxConnections slots. Each slot redials after MaxMessages submissions or
// after any relay error.
type SMTP struct {
	dialer        Dialer
	from          string
	fromName      string
	maxMessages   int
	verifyTimeout time.Duration
	sendTimeout   time.Duration
	limiter       *rate.Limiter
	pool          chan *session
	closed        *atomic.Bool
	failure       *atomic.Error
}

// NewSMTP constructs an SMTP mail sender.
//
// It returns ErrConfigurationMissing when Username or Password is empty.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.Password) == "" {
		return nil, ErrConfigurationMissing
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	if cfg.MaxConnections < 1 {
		cfg.MaxConnections = DefaultMaxConnections
	}
	if cfg.MaxMessages < 1 {
		cfg.MaxMessages = DefaultMaxMessages
	}
	if cfg.RateLimit < 1 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = DefaultVerifyTimeout
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}

	dialer := cfg.Dialer
	if dialer == nil {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		if cfg.InsecureSkipVerify {
			// #nosec G402 -- opt-in through configuration for self-hosted relays.
			d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: cfg.Host}
		}
		dialer = d
	}

	pool := make(chan *session, cfg.MaxConnections)
	for range cfg.MaxConnections {
		pool <- &session{}
	}

	return &SMTP{
		dialer:        dialer,
		from:          cfg.From,
		fromName:      cfg.FromName,
		maxMessages:   cfg.MaxMessages,
		verifyTimeout: cfg.VerifyTimeout,
		sendTimeout:   cfg.SendTimeout,
		limiter:       newSendLimiter(cfg.RateLimit),
		pool:          pool,
		closed:        atomic.NewBool(false),
		failure:       atomic.NewError(nil),
	}, nil
}

// newSendLimiter spaces sends evenly so that no minute carries more than perMinute.
func newSendLimiter(perMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Available reports whether the transport is open and has not been marked unavailable.
func (s *SMTP) Available() bool {
	return !s.closed.Load() && s.failure.Load() == nil
}

// MarkUnavailable disables the transport for the rest of the process lifetime.
func (s *SMTP) MarkUnavailable(reason error) {
	if reason == nil {
		reason = ErrTransportUnavailable
	}
	s.failure.Store(reason)
}

// Verify dials and authenticates against the relay, then hangs up.
//
// It returns ErrVerificationTimeout when the handshake exceeds the verify
// timeout. The handshake itself is not interrupted.
func (s *SMTP) Verify(ctx context.Context) error {
	if !s.Available() {
		return ErrTransportUnavailable
	}

	done := make(chan error, 1)
	go func() {
		sc, err := s.dialer.Dial()
		if err == nil {
			err = sc.Close()
		}
		done <- err
	}()

	timer := time.NewTimer(s.verifyTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail verification failed: %w", err)
		}
		return nil
	case <-timer.C:
		return ErrVerificationTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send delivers a message over a pooled relay session.
//
// The call first waits for the rate limiter and a free session, both bounded
// only by ctx. The submission is then bounded by the send timeout; on timeout
// ErrSendTimeout is returned while the submission keeps running in the
// background and releases its session when it finishes.
func (s *SMTP) Send(ctx context.Context, msg Message) (string, error) {
	if !s.Available() {
		return "", ErrTransportUnavailable
	}

	m, id, err := s.build(msg)
	if err != nil {
		return "", err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var sess *session
	select {
	case sess = <-s.pool:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	done := make(chan error, 1)
	go func() {
		err := s.deliver(sess, m)
		s.release(sess)
		done <- err
	}()

	timer := time.NewTimer(s.sendTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRelayRejected, err)
		}
		return id, nil
	case <-timer.C:
		return "", ErrSendTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close hangs up idle sessions. Sessions still in use are closed when released.
func (s *SMTP) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	held := make([]*session, 0, cap(s.pool))
	for {
		select {
		case sess := <-s.pool:
			if sess.sc != nil {
				errs = append(errs, sess.sc.Close())
				sess.sc = nil
				sess.sent = 0
			}
			held = append(held, sess)
		default:
			for _, sess := range held {
				s.pool <- sess
			}
			return errors.Join(errs...)
		}
	}
}

func (s *SMTP) deliver(sess *session, m *gomail.Message) error {
	if sess.sc == nil {
		sc, err := s.dialer.Dial()
		if err != nil {
			return err
		}
		sess.sc = sc
		sess.sent = 0
	}

	if err := gomail.Send(sess.sc, m); err != nil {
		sess.reset()
		return err
	}

	sess.sent++
	if sess.sent >= s.maxMessages {
		sess.reset()
	}

	return nil
}

func (s *SMTP) release(sess *session) {
	if s.closed.Load() {
		sess.reset()
	}
	s.pool <- sess
}

func (s *SMTP) build(msg Message) (*gomail.Message, string, error) {
	if len(msg.Recipients()) == 0 {
		return nil, "", ErrNoRecipients
	}

	from, name := msg.From, msg.FromName
	if from == "" {
		from = s.from
		if name == "" {
			name = s.fromName
		}
	}
	if from == "" {
		return nil, "", ErrNoSender
	}

	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(from))

	m := gomail.NewMessage()
	if name != "" {
		m.SetAddressHeader("From", from, name)
	} else {
		m.SetHeader("From", from)
	}
	if len(msg.To) > 0 {
		m.SetHeader("To", msg.To...)
	}
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	if len(msg.Bcc) > 0 {
		m.SetHeader("Bcc", msg.Bcc...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", id)

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	return m, id, nil
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i+1 < len(addr) {
		return strings.Trim(addr[i+1:], "> ")
	}
	return "localhost"
}

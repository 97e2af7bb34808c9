// Package idempotency guards side-effecting operations with a Redis-backed state key.
//
// A key moves from absent to in_progress when an operation starts and then to
// completed or failed once it returns. Replays of the same key are rejected
// until the recorded state expires.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

// DefaultPrefix namespaces every key written by a StateTracker.
const DefaultPrefix = "yatri:idempotency:"

// State is the recorded lifecycle of one operation key.
type State string

const (
	StateNone       State = "none"        // operation can proceed
	StateInProgress State = "in_progress" // operation already in progress
	StateCompleted  State = "completed"   // operation already completed
	StateFailed     State = "failed"      // previously operation failed
	StateError      State = "error"       // this operation error
)

func (s State) String() string {
	return string(s)
}

func parseState(v string) (State, error) {
	switch s := State(v); s {
	case StateInProgress, StateCompleted, StateFailed:
		return s, nil
	default:
		return StateError, ErrInvalidState
	}
}

// Idempotency runs operations at most once per key.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Extend(ctx context.Context, key string, lockDuration time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// StateTracker implements Idempotency on top of a go-redis client.
type StateTracker struct {
	client *redis.Client
	prefix string
}

// New returns a StateTracker. An empty prefix falls back to DefaultPrefix.
func New(client *redis.Client, prefix string) *StateTracker {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &StateTracker{
		client: client,
		prefix: prefix,
	}
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Minute
)

// Option tunes a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration sets how long the in_progress marker survives a crashed caller.
func WithLockDuration(lockDuration time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = lockDuration
	}
}

// WithStateTTL sets how long the completed or failed state is remembered.
func WithStateTTL(stateTTL time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = stateTTL
	}
}

// Acquire marks key as in progress. It returns StateNone when the caller owns
// the key, otherwise the state recorded by an earlier caller.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	// the second attempt covers a key that expired between SetNX and Get
	for range 2 {
		acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}

		result, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return StateError, err
		}

		return parseState(result)
	}

	return StateError, ErrInvalidState
}

func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateFailed.String(), ttl).Err()
}

// Extend resets the expiry of a held key, for operations that outgrow the
// lock duration they were acquired with.
func (s *StateTracker) Extend(ctx context.Context, key string, lockDuration time.Duration) error {
	return s.client.Expire(ctx, s.prefix+key, lockDuration).Err()
}

// Exec runs fn once for key and records its outcome.
//
// A key already held returns ErrAlreadyInProgress, ErrAlreadyCompleted or
// ErrAlreadyFailed without calling fn. The outcome is recorded even when ctx
// is canceled while fn runs.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	execOpt := &execOptions{
		lockDuration: defaultLockDuration,
		stateTTL:     defaultStateTTL,
	}
	for _, opt := range opts {
		opt(execOpt)
	}
	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}
	if execOpt.stateTTL <= 0 {
		execOpt.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, execOpt.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	err = fn(ctx)

	markCtx := context.WithoutCancel(ctx)
	if err != nil {
		if markErr := s.MarkFailed(markCtx, key, execOpt.stateTTL); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	return s.MarkCompleted(markCtx, key, execOpt.stateTTL)
}

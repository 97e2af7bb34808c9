// Package goroutine runs background and fan-out work with bounded concurrency.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/yatri/internal/pkg/stacktrace"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxGoroutine is multiplied by the CPU count when NewManager receives
// a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs fire-and-forget tasks, such as the startup relay check, and
// lets shutdown wait for them.
type Manager struct {
	group errgroup.Group

	mu     sync.RWMutex // guards closed against a concurrent Wait
	closed bool

	errMu sync.Mutex
	errs  []error
}

// NewManager creates a Manager running at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	m := &Manager{}
	m.group.SetLimit(maxGoroutine)

	return m
}

// Go starts f unless the manager is closed or full; either case is logged
// and f is dropped. f is skipped when ctx is already done when it starts.
func (m *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	if m == nil {
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping new goroutine")
		return
	}

	started := m.group.TryGo(func() error {
		defer recoverPanic(ctx)

		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "goroutine canceled", "because", err)
			return nil
		}
		if err := f(ctx); err != nil {
			m.errMu.Lock()
			m.errs = append(m.errs, err)
			m.errMu.Unlock()
		}
		return nil
	})
	if !started {
		slog.WarnContext(ctx, "Maximum goroutine limit reached, failed to start new goroutine")
	}
}

// Wait closes the manager, blocks until every started task returns and
// joins the errors they reported.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	//nolint:errcheck,gosec // tasks never return errors, they are collected in errs
	m.group.Wait()

	m.errMu.Lock()
	defer m.errMu.Unlock()

	return errors.Join(m.errs...)
}

// ForEach calls fn for every index in [0, n) with at most limit calls running
// at once, and blocks until all of them have returned.
//
// A panic inside fn is recovered and logged; the remaining indexes still run.
// ForEach does not stop early when ctx is canceled, fn decides what to do with it.
func ForEach(ctx context.Context, n, limit int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}
	if limit < 1 || limit > n {
		limit = n
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i := range n {
		g.Go(func() error {
			defer recoverPanic(ctx)

			fn(ctx, i)
			return nil
		})
	}

	//nolint:errcheck,gosec // tasks never return errors
	g.Wait()
}

func recoverPanic(ctx context.Context) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic occurred in goroutine", "because", rvr, "stack", paths)
		return
	}
	slog.ErrorContext(ctx, "panic occurred in goroutine", "because", rvr, "stack", string(stack))
}

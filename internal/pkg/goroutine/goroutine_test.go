package goroutine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForEach(t *testing.T) {
	t.Run("visits every index within the limit", func(t *testing.T) {
		var (
			mu       sync.Mutex
			inflight int
			peak     int
			seen     = make([]bool, 20)
		)

		ForEach(context.Background(), len(seen), 3, func(_ context.Context, i int) {
			mu.Lock()
			inflight++
			peak = max(peak, inflight)
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			inflight--
			seen[i] = true
			mu.Unlock()
		})

		assert.LessOrEqual(t, peak, 3)
		for i, ok := range seen {
			assert.True(t, ok, "index %d not visited", i)
		}
	})

	t.Run("zero items never calls fn", func(t *testing.T) {
		called := false

		ForEach(context.Background(), 0, 5, func(context.Context, int) { called = true })

		assert.False(t, called)
	})

	t.Run("panic does not stop other items", func(t *testing.T) {
		var mu sync.Mutex
		done := 0

		ForEach(context.Background(), 4, 2, func(_ context.Context, i int) {
			if i == 1 {
				panic("boom")
			}
			mu.Lock()
			done++
			mu.Unlock()
		})

		assert.Equal(t, 3, done)
	})
}

func TestManager(t *testing.T) {
	m := NewManager(2)

	m.Go(context.Background(), func(context.Context) error { return nil })
	m.Go(context.Background(), func(context.Context) error { return errors.New("failed") })

	err := m.Wait()

	assert.EqualError(t, err, "failed")

	m.Go(context.Background(), func(context.Context) error { return errors.New("after close") })
	assert.EqualError(t, m.Wait(), "failed")
}

func TestManager_Limits(t *testing.T) {
	t.Run("drops tasks beyond the limit", func(t *testing.T) {
		m := NewManager(1)
		release := make(chan struct{})
		ran := make(chan int, 2)

		m.Go(context.Background(), func(context.Context) error { <-release; ran <- 1; return nil })
		m.Go(context.Background(), func(context.Context) error { ran <- 2; return nil })
		close(release)

		assert.NoError(t, m.Wait())
		close(ran)
		var got []int
		for v := range ran {
			got = append(got, v)
		}
		assert.Equal(t, []int{1}, got)
	})

	t.Run("canceled context skips the task", func(t *testing.T) {
		m := NewManager(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		m.Go(ctx, func(context.Context) error { called = true; return nil })

		assert.NoError(t, m.Wait())
		assert.False(t, called)
	})

	t.Run("nil manager is a no-op", func(t *testing.T) {
		var m *Manager
		m.Go(context.Background(), func(context.Context) error { return nil })
		assert.NoError(t, m.Wait())
	})
}

package feed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	mu      sync.Mutex
	count   int
	err     error
	calls   atomic.Int32
	release chan struct{}
}

func (f *fakeCounter) UnprocessedSessionsCount(ctx context.Context, projectID string) (int, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, f.err
}

func TestLiveCounterRefresh(t *testing.T) {
	src := &fakeCounter{count: 4}
	counter := NewLiveCounter(src, "1", 0, nil)
	assert.Equal(t, DefaultLivePollInterval, counter.Interval())

	_, known := counter.Count()
	assert.False(t, known)

	n, err := counter.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	src.mu.Lock()
	src.err = errors.New("unavailable")
	src.mu.Unlock()
	n, err = counter.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, 4, n, "failed refresh keeps the last value")
	got, known := counter.Count()
	assert.True(t, known)
	assert.Equal(t, 4, got)
}

func TestLiveCounterConcurrentRefreshShareRequest(t *testing.T) {
	src := &fakeCounter{count: 2, release: make(chan struct{})}
	counter := NewLiveCounter(src, "1", time.Second, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = counter.Refresh(context.Background())
		}()
	}
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.LessOrEqual(t, src.calls.Load(), int32(5))
	n, _ := counter.Count()
	assert.Equal(t, 2, n)
}

func TestLiveCounterRunPolls(t *testing.T) {
	src := &fakeCounter{count: 1}
	counter := NewLiveCounter(src, "1", 5*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan int, 16)
	done := make(chan struct{})
	go func() {
		counter.Run(ctx, func(n int) {
			select {
			case updates <- n:
			default:
			}
		})
		close(done)
	}()

	assert.Equal(t, 1, <-updates)
	src.mu.Lock()
	src.count = 3
	src.mu.Unlock()
	require.Eventually(t, func() bool {
		n, _ := counter.Count()
		return n == 3
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestShowLiveBadge(t *testing.T) {
	assert.True(t, ShowLiveBadge(3, false))
	assert.False(t, ShowLiveBadge(3, true))
	assert.False(t, ShowLiveBadge(0, false))
}

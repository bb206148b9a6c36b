package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shivam-bit/highlight/internal/logging"
)

const DefaultLivePollInterval = 5 * time.Second

// UnprocessedCounter reports how many sessions are still live for a project.
type UnprocessedCounter interface {
	UnprocessedSessionsCount(ctx context.Context, projectID string) (int, error)
}

// LiveCounter tracks the number of live (unprocessed) sessions. Concurrent
// refreshes share one request.
type LiveCounter struct {
	source    UnprocessedCounter
	projectID string
	interval  time.Duration
	logger    logging.Logger
	group     singleflight.Group

	mu    sync.RWMutex
	count int
	known bool
}

func NewLiveCounter(source UnprocessedCounter, projectID string, interval time.Duration, logger logging.Logger) *LiveCounter {
	if interval <= 0 {
		interval = DefaultLivePollInterval
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &LiveCounter{
		source:    source,
		projectID: strings.TrimSpace(projectID),
		interval:  interval,
		logger:    logger,
	}
}

func (c *LiveCounter) Interval() time.Duration {
	return c.interval
}

// Count returns the last successfully fetched count.
func (c *LiveCounter) Count() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count, c.known
}

// Refresh fetches the count. A failed refresh keeps the previous value.
func (c *LiveCounter) Refresh(ctx context.Context) (int, error) {
	v, err, _ := c.group.Do(c.projectID, func() (any, error) {
		return c.source.UnprocessedSessionsCount(ctx, c.projectID)
	})
	if err != nil {
		c.logger.Debug("unprocessed count refresh failed", logging.F("err", err))
		count, _ := c.Count()
		return count, err
	}
	count := v.(int)
	c.mu.Lock()
	c.count = count
	c.known = true
	c.mu.Unlock()
	return count, nil
}

// Run refreshes immediately and then on every interval until ctx is done,
// calling onUpdate after each successful refresh.
func (c *LiveCounter) Run(ctx context.Context, onUpdate func(int)) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		if count, err := c.Refresh(ctx); err == nil && onUpdate != nil {
			onUpdate(count)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ShowLiveBadge reports whether the "(N live)" shortcut should be offered.
func ShowLiveBadge(count int, showLiveSessions bool) bool {
	return count > 0 && !showLiveSessions
}

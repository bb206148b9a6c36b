package feed

import (
	"time"

	"golang.org/x/time/rate"
)

const DefaultScrollCheckInterval = 1200 * time.Millisecond

// ScrollTrigger turns viewport proximity signals into load-more requests at
// a bounded cadence.
type ScrollTrigger struct {
	loader    *Loader
	limiter   *rate.Limiter
	threshold int
}

func NewScrollTrigger(loader *Loader, interval time.Duration, threshold int) *ScrollTrigger {
	if interval <= 0 {
		interval = DefaultScrollCheckInterval
	}
	if threshold < 0 {
		threshold = 0
	}
	return &ScrollTrigger{
		loader:    loader,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		threshold: threshold,
	}
}

// Check reports a load-more request when the cursor is within the threshold
// of the last rendered row. It returns nil when nothing should be fetched.
func (t *ScrollTrigger) Check(cursor, rendered int) *Request {
	if t == nil || t.loader == nil {
		return nil
	}
	if rendered-1-cursor > t.threshold {
		return nil
	}
	if !t.loader.HasNextPage() || t.loader.Loading() {
		return nil
	}
	if !t.limiter.Allow() {
		return nil
	}
	req, err := t.loader.BeginMore()
	if err != nil {
		return nil
	}
	return req
}

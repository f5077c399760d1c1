package backend

import (
	"context"
	"time"
)

// throttle spaces out scene reads. One editor save usually produces a burst
// of fsnotify events (write, chmod, rename), and each one wakes the poller;
// the throttle makes a burst cost at most one read and hash per interval.
// It is used from the poller goroutine only.
type throttle struct {
	interval time.Duration
	next     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval < 0 {
		interval = 0
	}
	return &throttle{interval: interval}
}

// wait blocks until the next read is allowed. It returns false when ctx is
// cancelled first, so a stopping watcher never sleeps out the interval.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval == 0 {
		return ctx.Err() == nil
	}
	if delay := time.Until(t.next); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	t.next = time.Now().Add(t.interval)
	return true
}

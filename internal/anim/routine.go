package anim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/atomicstack/menuz/internal/menu"
)

// ErrUnknownRoutine is returned by Lookup for names it does not know.
var ErrUnknownRoutine = errors.New("unknown routine")

// frameInterval is how often Fade publishes progress.
var frameInterval = 16 * time.Millisecond

// Progress is a float in [0, 1] shared between a routine goroutine and the
// renderer.
type Progress struct {
	bits atomic.Uint64
}

// Load returns the last stored value.
func (p *Progress) Load() float64 {
	if p == nil {
		return 0
	}
	return math.Float64frombits(p.bits.Load())
}

// Store clamps v to [0, 1] and stores it.
func (p *Progress) Store(v float64) {
	if p == nil {
		return
	}
	p.bits.Store(math.Float64bits(math.Max(0, math.Min(1, v))))
}

// Fade returns a routine that ramps progress from 0 to 1 over d. It stops
// early with the context error if cancelled.
func Fade(d time.Duration, progress *Progress) menu.Routine {
	return func(ctx context.Context) error {
		progress.Store(0)
		if d <= 0 {
			progress.Store(1)
			return nil
		}
		start := time.Now()
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticker.C:
				elapsed := now.Sub(start)
				progress.Store(float64(elapsed) / float64(d))
				if elapsed >= d {
					progress.Store(1)
					return nil
				}
			}
		}
	}
}

// Delay returns a routine that waits d before completing.
func Delay(d time.Duration) menu.Routine {
	return func(ctx context.Context) error {
		if d <= 0 {
			return nil
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}

// Fail returns a routine that waits d and then reports err. Scenes use it to
// exercise the error path of custom transitions.
func Fail(d time.Duration, err error) menu.Routine {
	wait := Delay(d)
	return func(ctx context.Context) error {
		if waitErr := wait(ctx); waitErr != nil {
			return waitErr
		}
		return err
	}
}

// Lookup resolves a routine by name as written in scene files.
func Lookup(name string, d time.Duration, progress *Progress) (menu.Routine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fade":
		return Fade(d, progress), nil
	case "delay", "wait":
		return Delay(d), nil
	case "fail":
		return Fail(d, errors.New("routine failed")), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRoutine, name)
}

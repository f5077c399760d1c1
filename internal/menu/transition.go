package menu

import (
	"context"
	"fmt"
	"strings"
)

// TransitionKind selects how a menu visually changes state.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionAnimation
	TransitionCustom
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionNone:
		return "none"
	case TransitionAnimation:
		return "animation"
	case TransitionCustom:
		return "custom"
	default:
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
}

// ParseTransitionKind accepts the lower-case names produced by String. An
// empty string maps to TransitionNone.
func ParseTransitionKind(s string) (TransitionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TransitionNone, nil
	case "animation", "animator":
		return TransitionAnimation, nil
	case "custom":
		return TransitionCustom, nil
	}
	return TransitionNone, fmt.Errorf("unknown transition kind %q", s)
}

// Renderer is the visual collaborator a menu drives from OpenImmediate and
// CloseImmediate.
type Renderer interface {
	SetVisible(bool)
	SetInteractable(bool)
	SetBlocksInput(bool)
}

// Animator is the animation state machine consulted by animation
// transitions. Close transitions poll it once per tick.
type Animator interface {
	FireTrigger(name string)
	IsInTransition() bool
	CurrentStateName() string
}

// Routine is a caller-supplied custom transition. It runs off the tick
// thread and must return promptly once ctx is cancelled.
type Routine func(ctx context.Context) error

type nopRenderer struct{}

func (nopRenderer) SetVisible(bool) {}

func (nopRenderer) SetInteractable(bool) {}

func (nopRenderer) SetBlocksInput(bool) {}

// transitionRunner plays the open and close transitions configured for a
// single menu.
type transitionRunner struct {
	menu  string
	sched *Scheduler
}

// playOpen starts the open transition without waiting for it. The returned
// task is nil unless a custom routine was launched.
func (r *transitionRunner) playOpen(cfg *Config) *Task {
	switch cfg.OpenTransition {
	case TransitionAnimation:
		if cfg.Animator != nil {
			cfg.Animator.FireTrigger(cfg.OpenTrigger)
		}
	case TransitionCustom:
		if cfg.OpenRoutine != nil {
			return r.sched.GoRoutine(r.menu+":open", cfg.OpenRoutine, nil)
		}
	}
	return nil
}

// playClose starts the close transition and arranges for done to run on
// the tick that observes its completion. It returns nil when there is
// nothing to wait for, in which case done has not been called.
func (r *transitionRunner) playClose(cfg *Config, done func(error)) *Task {
	switch cfg.CloseTransition {
	case TransitionAnimation:
		if cfg.Animator == nil {
			return nil
		}
		animator := cfg.Animator
		state := cfg.CloseState
		animator.FireTrigger(cfg.CloseTrigger)
		return r.sched.Go(r.menu+":close", func() bool {
			if animator.IsInTransition() {
				return false
			}
			return animator.CurrentStateName() == state
		}, func() { done(nil) })
	case TransitionCustom:
		if cfg.CloseRoutine == nil {
			return nil
		}
		return r.sched.GoRoutine(r.menu+":close", cfg.CloseRoutine, done)
	}
	return nil
}

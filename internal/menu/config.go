package menu

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultOpenTrigger  = "OpenTrigger"
	DefaultCloseTrigger = "CloseTrigger"
	DefaultCloseState   = "Close"
)

var (
	// ErrMissingRoutine reports a custom transition without a routine.
	ErrMissingRoutine = errors.New("custom transition has no routine")
	// ErrMissingAnimator reports an animation transition without an animator.
	ErrMissingAnimator = errors.New("animation transition has no animator")
	// ErrMissingName reports a menu configured without a name.
	ErrMissingName = errors.New("menu name is required")
)

// Config describes a menu at authoring time.
type Config struct {
	Name            string
	OpenTransition  TransitionKind
	CloseTransition TransitionKind
	OpenTrigger     string
	CloseTrigger    string
	CloseState      string
	OpenRoutine     Routine
	CloseRoutine    Routine
	Renderer        Renderer
	Animator        Animator
}

// withDefaults fills in the trigger and state names the animation
// collaborator expects when none were configured.
func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.OpenTrigger) == "" {
		c.OpenTrigger = DefaultOpenTrigger
	}
	if strings.TrimSpace(c.CloseTrigger) == "" {
		c.CloseTrigger = DefaultCloseTrigger
	}
	if strings.TrimSpace(c.CloseState) == "" {
		c.CloseState = DefaultCloseState
	}
	if c.Renderer == nil {
		c.Renderer = nopRenderer{}
	}
	return c
}

// Validate reports configuration that would make a transition silently do
// nothing. Errors wrap the sentinel values above.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}
	if err := validateDirection(c.Name, "open", c.OpenTransition, c.OpenRoutine, c.Animator); err != nil {
		return err
	}
	return validateDirection(c.Name, "close", c.CloseTransition, c.CloseRoutine, c.Animator)
}

func validateDirection(name, direction string, kind TransitionKind, routine Routine, animator Animator) error {
	switch kind {
	case TransitionNone:
		return nil
	case TransitionAnimation:
		if animator == nil {
			return fmt.Errorf("menu %s %s: %w", name, direction, ErrMissingAnimator)
		}
	case TransitionCustom:
		if routine == nil {
			return fmt.Errorf("menu %s %s: %w", name, direction, ErrMissingRoutine)
		}
	default:
		return fmt.Errorf("menu %s %s: unknown transition kind %d", name, direction, int(kind))
	}
	return nil
}

// Package anim provides the frame-stepped animation state machine panels use
// for animation transitions, plus ready-made custom transition routines.
package anim

import "github.com/atomicstack/menuz/internal/menu"

const (
	// StateOpen is the resting state reached through the open trigger.
	StateOpen = "Open"
	// DefaultFrames is the transition length used when none is configured.
	DefaultFrames = 8
)

// Controller is a minimal trigger-driven state machine. Firing a mapped
// trigger starts a transition that lasts a fixed number of frames; Step
// advances it by one. Controllers are driven from the tick thread only.
type Controller struct {
	frames     int
	state      string
	target     string
	closeState string
	remaining  int
	triggers   map[string]string
}

// NewController returns a controller resting in initial with the default
// trigger mapping: open trigger to StateOpen and close trigger to
// closeState.
func NewController(frames int, initial, closeState string) *Controller {
	if frames < 0 {
		frames = 0
	}
	if closeState == "" {
		closeState = menu.DefaultCloseState
	}
	if initial == "" {
		initial = closeState
	}
	c := &Controller{
		frames:     frames,
		state:      initial,
		target:     initial,
		closeState: closeState,
		triggers:   make(map[string]string),
	}
	c.Map(menu.DefaultOpenTrigger, StateOpen)
	c.Map(menu.DefaultCloseTrigger, closeState)
	return c
}

// Map routes trigger to state, replacing any earlier mapping.
func (c *Controller) Map(trigger, state string) {
	c.triggers[trigger] = state
}

// FireTrigger starts a transition toward the state mapped to name. Unknown
// triggers are ignored. A zero-frame controller switches state at once.
func (c *Controller) FireTrigger(name string) {
	state, ok := c.triggers[name]
	if !ok {
		return
	}
	c.target = state
	c.remaining = c.frames
	if c.remaining == 0 {
		c.state = state
	}
}

// Step advances the running transition by one frame and reports whether it
// is still running afterwards.
func (c *Controller) Step() bool {
	if c.remaining == 0 {
		return false
	}
	c.remaining--
	if c.remaining == 0 {
		c.state = c.target
	}
	return c.remaining > 0
}

// IsInTransition reports whether frames remain in the current transition.
func (c *Controller) IsInTransition() bool { return c.remaining > 0 }

// CurrentStateName returns the state last reached. During a transition it
// is still the state being left.
func (c *Controller) CurrentStateName() string { return c.state }

// CloseState returns the state the close trigger leads to.
func (c *Controller) CloseState() string { return c.closeState }

// Target returns the state the controller is heading to.
func (c *Controller) Target() string { return c.target }

// Progress returns how far the current transition has run, in [0, 1].
func (c *Controller) Progress() float64 {
	if c.frames == 0 || c.remaining == 0 {
		return 1
	}
	return float64(c.frames-c.remaining) / float64(c.frames)
}

var _ menu.Animator = (*Controller)(nil)

package scene

import (
	"strings"

	"github.com/atomicstack/menuz/internal/anim"
	"github.com/atomicstack/menuz/internal/binding"
	"github.com/atomicstack/menuz/internal/menu"
)

// View records what a menu asked its renderer to do. The UI reads it to
// decide which panels to draw and which accept keys.
type View struct {
	visible      bool
	interactable bool
	blocksInput  bool
}

func (v *View) SetVisible(on bool)      { v.visible = on }
func (v *View) SetInteractable(on bool) { v.interactable = on }
func (v *View) SetBlocksInput(on bool)  { v.blocksInput = on }

func (v *View) Visible() bool      { return v.visible }
func (v *View) Interactable() bool { return v.interactable }
func (v *View) BlocksInput() bool  { return v.blocksInput }

// Action names accepted on action buttons.
type Action string

const (
	ActionBack    Action = "back"
	ActionForward Action = "forward"
	ActionClose   Action = "close"
	ActionQuit    Action = "quit"
	ActionSolo    Action = "solo"
)

func parseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionBack, ActionForward, ActionClose, ActionQuit, ActionSolo:
		return a, true
	}
	return "", false
}

// Button is a labelled control on a panel.
type Button struct {
	Label   string
	Binding binding.Binding
	enabled bool
}

func newButton(label string, b binding.Binding) *Button {
	return &Button{Label: label, Binding: b, enabled: true}
}

// SetEnabled lets history bindings grey the button out.
func (b *Button) SetEnabled(on bool) { b.enabled = on }

// Enabled reports whether Press will do anything.
func (b *Button) Enabled() bool { return b.enabled }

// Press activates the binding if the button is enabled.
func (b *Button) Press() bool {
	if !b.enabled || b.Binding == nil {
		return false
	}
	b.Binding.Activate()
	return true
}

// Panel is one live menu together with everything needed to draw it.
type Panel struct {
	Def      PanelDef
	Menu     *menu.Menu
	View     *View
	Animator *anim.Controller
	Progress *anim.Progress
	Buttons  []*Button
}

// Name returns the menu name.
func (p *Panel) Name() string { return p.Menu.Name() }

// Title returns the display title.
func (p *Panel) Title() string { return p.Def.DisplayTitle() }

// Step advances the panel animator by a frame.
func (p *Panel) Step() {
	if p.Animator != nil {
		p.Animator.Step()
	}
}

// Refresh recomputes button state from the menu's history.
func (p *Panel) Refresh() {
	for _, b := range p.Buttons {
		if b.Binding != nil {
			b.Binding.Refresh()
		}
	}
}

// Transition returns a progress value for drawing: animator progress while
// an animation runs, routine progress while a custom close is pending and
// 1 otherwise.
func (p *Panel) Transition() float64 {
	if p.Animator != nil && p.Animator.IsInTransition() {
		return p.Animator.Progress()
	}
	if p.Menu.ClosePending() && p.Progress != nil {
		return p.Progress.Load()
	}
	return 1
}

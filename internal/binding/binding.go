// Package binding connects user-facing controls to menu navigation: plain
// transitions between two menus and back/forward history buttons whose
// enabled state follows the menu's history.
package binding

import (
	"github.com/atomicstack/menuz/internal/logging/events"
	"github.com/atomicstack/menuz/internal/menu"
)

// Toggle is anything whose enabled state a binding can drive.
type Toggle interface {
	SetEnabled(bool)
}

// Binding is a control that can be activated and refreshed every frame.
type Binding interface {
	Activate()
	Refresh()
}

// Transitioner moves from one menu to another when activated.
type Transitioner struct {
	From *menu.Menu
	To   *menu.Menu
}

// NewTransitioner builds a transitioner. from is usually the menu that owns
// the control.
func NewTransitioner(from, to *menu.Menu) *Transitioner {
	return &Transitioner{From: from, To: to}
}

// Activate calls From.TransitionTo(To). Missing endpoints are skipped.
func (t *Transitioner) Activate() {
	if t == nil || t.From == nil || t.To == nil {
		events.Binding.Skip("transition", "missing endpoint")
		return
	}
	events.Binding.Activate("transition", t.From.Name(), t.To.Name())
	t.From.TransitionTo(t.To)
}

// Refresh is a no-op; transitions are always available.
func (t *Transitioner) Refresh() {}

// HistoryButton drives Back or Forward on its menu.
type HistoryButton struct {
	Menu    *menu.Menu
	Forward bool
	Target  Toggle

	enabled bool
	primed  bool
}

// NewBackButton returns a history button that navigates back.
func NewBackButton(m *menu.Menu, target Toggle) *HistoryButton {
	return &HistoryButton{Menu: m, Target: target}
}

// NewForwardButton returns a history button that navigates forward.
func NewForwardButton(m *menu.Menu, target Toggle) *HistoryButton {
	return &HistoryButton{Menu: m, Forward: true, Target: target}
}

func (b *HistoryButton) kind() string {
	if b.Forward {
		return "forward"
	}
	return "back"
}

// Enabled reports the state computed by the last Refresh.
func (b *HistoryButton) Enabled() bool { return b.enabled }

// Refresh recomputes whether the button can be used and pushes the result
// to Target. Call it once per frame.
func (b *HistoryButton) Refresh() {
	if b == nil {
		return
	}
	enabled := false
	if b.Menu != nil {
		if b.Forward {
			enabled = b.Menu.CanGoForward()
		} else {
			enabled = b.Menu.CanGoBack()
		}
	}
	if b.primed && enabled == b.enabled {
		return
	}
	b.primed = true
	b.enabled = enabled
	if b.Target != nil {
		b.Target.SetEnabled(enabled)
	}
	events.Binding.Refresh(menuName(b.Menu), b.kind(), enabled)
}

// Activate navigates back or forward. An empty history does nothing.
func (b *HistoryButton) Activate() {
	if b == nil || b.Menu == nil {
		events.Binding.Skip("history", "missing menu")
		return
	}
	if b.Forward {
		if !b.Menu.CanGoForward() {
			events.Binding.Skip("forward", "empty history")
			return
		}
		events.Binding.Activate("forward", b.Menu.Name(), "")
		b.Menu.Forward()
		return
	}
	if !b.Menu.CanGoBack() {
		events.Binding.Skip("back", "empty history")
		return
	}
	events.Binding.Activate("back", b.Menu.Name(), "")
	b.Menu.Back()
}

// Action runs an arbitrary callback, used for close, quit and solo buttons.
type Action struct {
	Name string
	Fn   func()
}

// Activate runs Fn.
func (a *Action) Activate() {
	if a == nil || a.Fn == nil {
		return
	}
	events.Binding.Activate(a.Name, "", "")
	a.Fn()
}

// Refresh is a no-op.
func (a *Action) Refresh() {}

// RefreshAll refreshes every binding in order.
func RefreshAll(bindings []Binding) {
	for _, b := range bindings {
		if b != nil {
			b.Refresh()
		}
	}
}

func menuName(m *menu.Menu) string {
	if m == nil {
		return ""
	}
	return m.Name()
}

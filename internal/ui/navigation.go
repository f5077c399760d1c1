package ui

import (
	"github.com/atomicstack/menuz/internal/logging/events"
	"github.com/atomicstack/menuz/internal/scene"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(m.focus, keyMsg.String())
	if m.mode == ModeInspector {
		return m.handleInspectorKey(keyMsg)
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.requestQuit()
	case "i":
		m.openInspector()
	case "tab":
		m.cycleFocus(1)
	case "shift+tab":
		m.cycleFocus(-1)
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home":
		if lvl := m.focusedLevel(); lvl != nil {
			lvl.MoveCursorHome()
		}
	case "end":
		if lvl := m.focusedLevel(); lvl != nil {
			lvl.MoveCursorEnd()
		}
	case "enter", " ":
		m.pressFocused()
	case "left", "backspace":
		if p := m.focusedPanel(); p != nil {
			p.Menu.Back()
		}
	case "right":
		if p := m.focusedPanel(); p != nil {
			p.Menu.Forward()
		}
	case "esc":
		if p := m.focusedPanel(); p != nil {
			p.Menu.Close()
		}
	}
	m.ensureFocus()
	return nil
}

func (m *Model) moveCursor(delta int) {
	lvl := m.focusedLevel()
	if lvl == nil {
		return
	}
	lvl.MoveCursorWrap(delta)
	lvl.EnsureCursorVisible(m.maxVisibleButtons())
}

// pressFocused presses the button under the cursor of the focused panel.
// Disabled buttons ignore the press.
func (m *Model) pressFocused() {
	p := m.focusedPanel()
	lvl := m.focusedLevel()
	if p == nil || lvl == nil {
		return
	}
	if lvl.Cursor < 0 || lvl.Cursor >= len(p.Buttons) {
		return
	}
	b := p.Buttons[lvl.Cursor]
	events.UI.Press(p.Name(), b.Label, b.Enabled())
	if !b.Press() {
		m.setInfo(b.Label + " is unavailable")
		return
	}
	m.errMsg = ""
	m.syncPanels()
}

// focusable lists panels that are open and accept input, in scene order.
// Panels playing a close transition are skipped.
func (m *Model) focusable() []*scene.Panel {
	sc := m.store.Scene()
	if sc == nil {
		return nil
	}
	var out []*scene.Panel
	for _, p := range sc.Panels() {
		if p.Menu.IsOpen() && p.View.Interactable() && !p.Menu.ClosePending() {
			out = append(out, p)
		}
	}
	return out
}

func (m *Model) ensureFocus() {
	candidates := m.focusable()
	for _, p := range candidates {
		if p.Name() == m.focus {
			return
		}
	}
	if len(candidates) == 0 {
		m.focus = ""
		return
	}
	m.setFocus(candidates[0].Name())
}

func (m *Model) setFocus(name string) {
	if name == m.focus {
		return
	}
	m.focus = name
	events.UI.Focus(name)
}

func (m *Model) cycleFocus(delta int) {
	candidates := m.focusable()
	if len(candidates) == 0 {
		return
	}
	idx := 0
	for i, p := range candidates {
		if p.Name() == m.focus {
			idx = i
			break
		}
	}
	n := len(candidates)
	idx = ((idx+delta)%n + n) % n
	m.setFocus(candidates[idx].Name())
}

func (m *Model) focusedPanel() *scene.Panel {
	sc := m.store.Scene()
	if sc == nil || m.focus == "" {
		return nil
	}
	p, ok := sc.Panel(m.focus)
	if !ok {
		return nil
	}
	return p
}

func (m *Model) focusedLevel() *level {
	if m.focus == "" {
		return nil
	}
	return m.levels[m.focus]
}

// Focus returns the name of the panel receiving keys.
func (m *Model) Focus() string { return m.focus }

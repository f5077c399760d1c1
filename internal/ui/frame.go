package ui

import (
	"fmt"
	"time"

	"github.com/atomicstack/menuz/internal/scene"
	uistate "github.com/atomicstack/menuz/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg struct {
	at time.Time
}

func (m *Model) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(frameMsg); !ok {
		return nil
	}
	m.advanceFrame()
	return m.frameCmd()
}

// advanceFrame runs one frame: animators step, suspended transitions are
// polled, and history buttons pick up the resulting state.
func (m *Model) advanceFrame() {
	sc := m.store.Scene()
	if sc != nil {
		sc.Step()
	}
	m.registry.Scheduler().Tick()
	if sc != nil {
		sc.Refresh()
	}
	m.syncPanels()
}

// syncPanels rebuilds per-panel button lists, drops lists for panels that
// no longer exist and moves focus off panels that can no longer take input.
func (m *Model) syncPanels() {
	sc := m.store.Scene()
	seen := make(map[string]struct{})
	if sc != nil {
		for _, p := range sc.Panels() {
			name := p.Name()
			seen[name] = struct{}{}
			items := buttonItems(p)
			if lvl, ok := m.levels[name]; ok {
				lvl.UpdateItems(items)
			} else {
				m.levels[name] = uistate.NewLevel(name, p.Title(), items)
			}
		}
	}
	for name := range m.levels {
		if _, ok := seen[name]; !ok {
			delete(m.levels, name)
		}
	}
	m.ensureFocus()
	if m.mode == ModeInspector {
		m.refreshInspector()
	}
}

func buttonItems(p *scene.Panel) []uistate.Item {
	items := make([]uistate.Item, len(p.Buttons))
	for i, b := range p.Buttons {
		items[i] = uistate.Item{
			ID:       fmt.Sprintf("%d:%s", i, b.Label),
			Label:    b.Label,
			Disabled: !b.Enabled(),
		}
	}
	return items
}

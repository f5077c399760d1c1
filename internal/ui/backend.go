package ui

import (
	"fmt"

	"github.com/atomicstack/menuz/internal/backend"
	"github.com/atomicstack/menuz/internal/data/dispatcher"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent hands a reload to the dispatcher. A failed reload keeps
// the running scene and shows the error; a missing file is reported the
// same way.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		if backend.IsMissing(res.Err) {
			m.errMsg = "scene file missing: " + m.store.Source()
		} else {
			m.errMsg = "reload failed: " + res.Err.Error()
		}
		return
	}
	if !res.SceneReloaded {
		return
	}
	m.errMsg = ""
	if m.verbose {
		m.setInfo(reloadInfo(res))
	}
	m.syncPanels()
}

func reloadInfo(res dispatcher.Result) string {
	return fmt.Sprintf("scene reloaded: %d panels, %d open", res.Panels, res.Open)
}

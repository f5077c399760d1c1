package ui

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/menuz/internal/format/table"
	"github.com/atomicstack/menuz/internal/logging/events"
	"github.com/atomicstack/menuz/internal/menu"
	"github.com/atomicstack/menuz/internal/ui/command"
	uistate "github.com/atomicstack/menuz/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

var inspectorColumns = []table.Alignment{
	table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight,
}

func (m *Model) openInspector() {
	m.mode = ModeInspector
	m.refreshInspector()
	events.UI.Inspector(true)
}

func (m *Model) closeInspector() {
	m.mode = ModePanels
	m.inspector.SetFilter("", 0)
	events.UI.Inspector(false)
}

// inspectorRows lays out one row per registered menu. The first row is the
// column header.
func (m *Model) inspectorRows() (header string, items []uistate.Item) {
	menus := m.registry.Menus()
	rows := make([][]string, 0, len(menus)+1)
	rows = append(rows, []string{"NAME", "STATE", "OPEN", "CLOSE", "BACK", "FWD"})
	for _, mn := range menus {
		back, fwd := mn.HistoryDepth()
		cfg := mn.Config()
		rows = append(rows, []string{
			mn.Name(),
			menuState(mn),
			cfg.OpenTransition.String(),
			cfg.CloseTransition.String(),
			strconv.Itoa(back),
			strconv.Itoa(fwd),
		})
	}
	lines := table.Format(rows, inspectorColumns)
	items = make([]uistate.Item, len(menus))
	for i, mn := range menus {
		// rows[i+1] holds NAME STATE OPEN CLOSE for this menu.
		items[i] = uistate.Item{ID: mn.Name(), Label: lines[i+1], Tags: rows[i+1][1:4]}
	}
	return lines[0], items
}

func menuState(mn *menu.Menu) string {
	switch {
	case mn.ClosePending():
		return "closing"
	case mn.IsOpen():
		return "open"
	default:
		return "closed"
	}
}

func (m *Model) refreshInspector() {
	_, items := m.inspectorRows()
	m.inspector.UpdateItems(items)
	m.inspector.EnsureCursorVisible(m.maxVisibleInspectorRows())
}

func (m *Model) selectedMenu() (*menu.Menu, bool) {
	item, ok := m.inspector.Current()
	if !ok {
		return nil, false
	}
	return m.registry.Find(item.ID)
}

func (m *Model) handleInspectorKey(msg tea.KeyMsg) tea.Cmd {
	if m.handleTextInput(msg) {
		m.inspector.EnsureCursorVisible(m.maxVisibleInspectorRows())
		return nil
	}
	switch msg.String() {
	case "ctrl+c":
		m.requestQuit()
	case "esc":
		m.closeInspector()
	case "up":
		m.inspector.MoveCursorWrap(-1)
	case "down":
		m.inspector.MoveCursorWrap(1)
	case "pgup":
		m.inspector.MoveCursorPageUp(m.maxVisibleInspectorRows())
	case "pgdown":
		m.inspector.MoveCursorPageDown(m.maxVisibleInspectorRows())
	case "home":
		m.inspector.MoveCursorHome()
	case "end":
		m.inspector.MoveCursorEnd()
	case "enter", "ctrl+t":
		return m.runInspectorCommand("toggle", m.toggleMenu)
	case "ctrl+s":
		return m.runInspectorCommand("solo", m.soloMenu)
	case "ctrl+p":
		return m.runInspectorCommand("populate", m.populate)
	case "ctrl+n":
		return m.runInspectorCommand("spawn", m.spawnMenu)
	}
	m.inspector.EnsureCursorVisible(m.maxVisibleInspectorRows())
	return nil
}

func (m *Model) runInspectorCommand(name string, handler command.Handler) tea.Cmd {
	target := ""
	if item, ok := m.inspector.Current(); ok {
		target = item.ID
	}
	return m.bus.Execute(command.Request{Name: name, Target: target, Handler: handler})
}

func (m *Model) handleCommandResult(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if res.Err != nil {
		m.errMsg = res.Err.Error()
		m.forceClearInfo()
	} else {
		m.errMsg = ""
		if res.Info != "" {
			m.setInfo(res.Info)
		}
	}
	m.syncPanels()
	return nil
}

func (m *Model) lookup(target string) (*menu.Menu, error) {
	if target == "" {
		return nil, fmt.Errorf("no menu selected")
	}
	mn, ok := m.registry.Find(target)
	if !ok {
		return nil, fmt.Errorf("menu %q is not registered", target)
	}
	return mn, nil
}

func (m *Model) toggleMenu(target string) (string, error) {
	mn, err := m.lookup(target)
	if err != nil {
		return "", err
	}
	m.registry.Toggle(mn)
	return fmt.Sprintf("%s is now %s", mn.Name(), menuState(mn)), nil
}

func (m *Model) soloMenu(target string) (string, error) {
	mn, err := m.lookup(target)
	if err != nil {
		return "", err
	}
	m.registry.SoloOpen(mn)
	m.setFocus(mn.Name())
	return fmt.Sprintf("%s opened solo", mn.Name()), nil
}

func (m *Model) populate(string) (string, error) {
	sc := m.store.Scene()
	if sc == nil {
		return "", fmt.Errorf("no scene loaded")
	}
	m.registry.ForcePopulate(sc)
	return fmt.Sprintf("registry populated: %d menus, %d open", m.registry.Len(), len(m.registry.OpenMenus())), nil
}

func (m *Model) spawnMenu(target string) (string, error) {
	sc := m.store.Scene()
	if sc == nil {
		return "", fmt.Errorf("no scene loaded")
	}
	if target == "" {
		return "", fmt.Errorf("no menu selected")
	}
	p, err := sc.Spawn(target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("spawned %s", p.Name()), nil
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/menuz/internal/scene"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	panelChrome   = 4 // border plus horizontal padding
	minPanelInner = 8
	panelFooter   = "↑/↓ move  enter press  ←/→ back/forward  tab focus  esc close  i inspect  q quit"
	inspectFooter = "↑/↓ move  enter/ctrl+t toggle  ctrl+s solo  ctrl+p populate  ctrl+n spawn  esc back"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == ModeInspector {
		return m.viewInspector()
	}
	return m.viewPanels()
}

func (m *Model) visiblePanels() []*scene.Panel {
	sc := m.store.Scene()
	if sc == nil {
		return nil
	}
	var out []*scene.Panel
	for _, p := range sc.Panels() {
		if p.View.Visible() {
			out = append(out, p)
		}
	}
	return out
}

func (m *Model) viewPanels() string {
	panels := m.visiblePanels()
	var body string
	if len(panels) == 0 {
		body = renderLines([]styledLine{{text: "(no open menus)", style: styles.Info}})
	} else {
		inner := m.panelInnerWidth(len(panels))
		boxes := make([]string, len(panels))
		for i, p := range panels {
			boxes[i] = m.renderPanel(p, inner)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	}
	bottom := m.statusLines(panelFooter)
	return body + "\n" + renderLines(applyWidth(bottom, m.width))
}

func (m *Model) panelInnerWidth(count int) int {
	if m.width <= 0 || count == 0 {
		return 0
	}
	return max(m.width/count-panelChrome, minPanelInner)
}

// renderPanel draws one panel: title, buttons and, while a transition
// plays, a progress bar.
func (m *Model) renderPanel(p *scene.Panel, inner int) string {
	focused := p.Name() == m.focus
	lines := make([]styledLine, 0, len(p.Buttons)+2)
	title := p.Title()
	if p.Menu.ClosePending() {
		title += " (closing)"
	}
	lines = append(lines, styledLine{text: title, style: styles.PanelTitle})

	lvl := m.levels[p.Name()]
	if lvl == nil || len(lvl.Items) == 0 {
		lines = append(lines, styledLine{text: "(no buttons)", style: styles.Info})
	} else {
		maxVisible := m.maxVisibleButtons()
		lvl.EnsureCursorVisible(maxVisible)
		start, end := lvl.ViewportOffset, len(lvl.Items)
		if maxVisible > 0 && end-start > maxVisible {
			end = start + maxVisible
		}
		for idx := start; idx < end; idx++ {
			item := lvl.Items[idx]
			lines = append(lines, buttonLine(item.Label, item.Disabled, focused && idx == lvl.Cursor, inner))
		}
	}
	if progress := p.Transition(); progress < 1 {
		lines = append(lines, styledLine{text: progressBar(progress, inner), style: styles.Progress})
	}
	box := styles.Panel
	if focused {
		box = styles.FocusedPanel
	}
	style := *box
	if inner > 0 {
		lines = applyWidth(lines, inner)
		style = style.Width(inner + 2)
	}
	return style.Render(renderLines(lines))
}

func buttonLine(label string, disabled, selected bool, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch {
	case disabled:
		lineStyle = styles.DisabledItem
	case selected:
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	text := "▌ " + label
	if selected && width > 0 {
		if pad := width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func progressBar(progress float64, width int) string {
	if width <= 0 {
		width = minPanelInner
	}
	filled := min(max(int(progress*float64(width)+0.5), 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m *Model) viewInspector() string {
	header, _ := m.inspectorRows()
	open := len(m.registry.OpenMenus())
	lines := []styledLine{
		{text: fmt.Sprintf("Menus: %d registered, %d open", m.registry.Len(), open), style: styles.Header},
		{text: "  " + header, style: styles.Header},
	}
	lvl := m.inspector
	if len(lvl.Items) == 0 {
		msg := "(no menus registered)"
		if lvl.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", lvl.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		maxVisible := m.maxVisibleInspectorRows()
		lvl.EnsureCursorVisible(maxVisible)
		start, end := lvl.ViewportOffset, len(lvl.Items)
		if maxVisible > 0 && end-start > maxVisible {
			end = start + maxVisible
		}
		for idx := start; idx < end; idx++ {
			lines = append(lines, buttonLine(lvl.Items[idx].Label, false, idx == lvl.Cursor, m.width))
		}
	}
	lines = limitHeight(lines, m.height-4, m.width)
	lines = append(lines, m.statusLines(inspectFooter)...)
	lines = append(lines, styledLine{text: m.filterPrompt()})
	return renderLines(applyWidth(lines, m.width))
}

// statusLines returns the error or info row followed by the optional
// footer.
func (m *Model) statusLines(hints string) []styledLine {
	var status styledLine
	switch {
	case m.errMsg != "":
		status = styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	case m.currentInfo() != "":
		status = styledLine{text: m.infoMsg, style: styles.Info}
	}
	lines := []styledLine{status}
	if m.showFooter {
		footer := hints
		if m.lastTransition != "" {
			footer = m.lastTransition + "  │  " + hints
		}
		lines = append(lines, styledLine{text: footer, style: styles.Footer})
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) bottomRows() int {
	if m.showFooter {
		return 2
	}
	return 1
}

// maxVisibleButtons leaves room for the panel border, title, progress row
// and the status rows below the panels.
func (m *Model) maxVisibleButtons() int {
	if m.height <= 0 {
		return -1
	}
	return max(m.height-4-m.bottomRows(), 1)
}

func (m *Model) maxVisibleInspectorRows() int {
	if m.height <= 0 {
		return -1
	}
	return max(m.height-3-m.bottomRows(), 1)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, styledLine{text: truncateText("…", width)})
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width cells, the ellipsis included.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

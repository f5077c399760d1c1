package ui

import (
	"unicode"

	"github.com/atomicstack/menuz/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "(type to filter menus)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// editFilter runs op against the inspector filter and marks the cursor
// dirty when the caret moved.
func (m *Model) editFilter(op func(*level) bool) bool {
	lvl := m.inspector
	before := lvl.FilterCursorPos()
	if !op(lvl) {
		return false
	}
	if before != lvl.FilterCursorPos() {
		m.filterCursorDirty = true
	}
	return true
}

// handleTextInput feeds filter editing keys to the inspector level. It
// reports whether the key was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	lvl := m.inspector
	if lvl == nil {
		return false
	}
	switch msg.String() {
	case "ctrl+u":
		if lvl.Filter == "" {
			return false
		}
		m.editFilter(func(l *level) bool { l.SetFilter("", 0); return true })
		events.Filter.Cleared(lvl.ID)
		return true
	case "ctrl+w":
		if !m.editFilter((*level).DeleteFilterWordBackward) {
			return false
		}
		events.Filter.WordBackspace(lvl.ID, lvl.Filter)
		return true
	case "ctrl+a":
		if !m.editFilter((*level).MoveFilterCursorStart) {
			return false
		}
		events.Filter.Cursor(lvl.ID, lvl.FilterCursor)
		return true
	case "ctrl+e":
		if !m.editFilter((*level).MoveFilterCursorEnd) {
			return false
		}
		events.Filter.Cursor(lvl.ID, lvl.FilterCursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.editFilter((*level).DeleteFilterRuneBackward) {
			return false
		}
		events.Filter.Backspace(lvl.ID, lvl.Filter)
		return true
	case tea.KeyLeft:
		if !m.editFilter((*level).MoveFilterCursorRuneBackward) {
			return false
		}
		events.Filter.Cursor(lvl.ID, lvl.FilterCursor)
		return true
	case tea.KeyRight:
		if !m.editFilter((*level).MoveFilterCursorRuneForward) {
			return false
		}
		events.Filter.Cursor(lvl.ID, lvl.FilterCursor)
		return true
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if !m.editFilter(func(l *level) bool { return l.InsertFilterText(text) }) {
		return false
	}
	events.Filter.Append(m.inspector.ID, m.inspector.Filter)
	return true
}

// filterPrompt renders the inspector filter line with a block caret.
func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := []rune(m.inspector.Filter)
	if len(text) == 0 {
		placeholder := []rune(filterPlaceholder)
		return prompt + m.renderFilterCursor(string(placeholder[0])) + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	pos := min(max(m.inspector.FilterCursorPos(), 0), len(text))
	caret, after := " ", ""
	if pos < len(text) {
		caret = string(text[pos])
		after = string(text[pos+1:])
	}
	return prompt + render(styles.Filter, string(text[:pos])) + m.renderFilterCursor(caret) + render(styles.Filter, after)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}

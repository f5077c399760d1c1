package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the filter query and caret. Starting a filter remembers
// the cursor; clearing it puts the cursor back.
func (l *Level) SetFilter(query string, caret int) {
	was := strings.TrimSpace(l.Filter) != ""
	now := strings.TrimSpace(query) != ""

	l.Filter = query
	l.FilterCursor = clamp(caret, 0, len([]rune(query)))

	switch {
	case now && !was:
		l.LastCursor = l.Cursor
		l.Cursor = 0
	case now:
		l.Cursor = 0
	}
	l.applyFilter()

	switch {
	case now:
		if idx := BestMatchIndex(l.Items, query); idx >= 0 {
			l.Cursor = idx
		}
	case was:
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the caret as a rune offset into the filter.
func (l *Level) FilterCursorPos() int {
	return clamp(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// InsertFilterText inserts text at the caret.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	l.SetFilter(string(runes[:pos])+text+string(runes[pos:]), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward removes the rune before the caret.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	return l.cutFilter(pos-1, pos)
}

// DeleteFilterWordBackward removes the word before the caret along with any
// whitespace between it and the caret.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	return l.cutFilter(wordStart([]rune(l.Filter), pos), pos)
}

func (l *Level) cutFilter(from, to int) bool {
	runes := []rune(l.Filter)
	if from >= to {
		return false
	}
	l.SetFilter(string(runes[:from])+string(runes[to:]), from)
	return true
}

// MoveFilterCursorStart puts the caret before the first rune.
func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(0)
}

// MoveFilterCursorEnd puts the caret after the last rune.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(len([]rune(l.Filter)))
}

// MoveFilterCursorRuneBackward moves the caret one rune left.
func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() - 1)
}

// MoveFilterCursorRuneForward moves the caret one rune right.
func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() + 1)
}

func (l *Level) moveFilterCursor(pos int) bool {
	pos = clamp(pos, 0, len([]rune(l.Filter)))
	if pos == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = pos
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// FilterItems keeps the items matching every whitespace separated term of
// query. A term matches when it fuzzy matches the item ID or one of its tags,
// so "open custom" narrows the inspector to open menus with a custom
// transition.
func FilterItems(items []Item, query string) []Item {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return CloneItems(items)
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if matchesAll(item, terms) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matchesAll(item Item, terms []string) bool {
	for _, term := range terms {
		if !fuzzy.MatchNormalizedFold(term, item.ID) && len(fuzzy.FindNormalizedFold(term, item.Tags)) == 0 {
			return false
		}
	}
	return true
}

// BestMatchIndex picks the row the cursor should land on for query: an exact
// ID, then an ID prefix, then the closest fuzzy ID match. Tag-only matches
// fall back to the first row. It returns -1 for an empty list.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return 0
	}
	lead := terms[0]
	for i, item := range items {
		if strings.EqualFold(item.ID, lead) {
			return i
		}
	}
	lower := strings.ToLower(lead)
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.ID), lower) {
			return i
		}
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(lead, ids) {
		if best < 0 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

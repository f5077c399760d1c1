package state

import (
	"reflect"
	"testing"
)

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	level.SetFilter("two", len("two"))

	if level.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", level.Filter)
	}
	if level.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", level.FilterCursor)
	}
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}
	if len(level.Items) != 1 || level.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", level.Items)
	}

	level.SetFilter("", 0)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("alpha")

	if !level.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}

	level.FilterCursor = 1
	if !level.InsertFilterText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if level.Filter != "azb" {
		t.Fatalf("expected insert into middle, got %q", level.Filter)
	}
	if level.FilterCursor != 2 {
		t.Fatalf("expected cursor 2 after insert, got %d", level.FilterCursor)
	}

	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", level.Filter, level.FilterCursor)
	}

	level.SetFilter("abc def", len("abc def"))
	if !level.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if level.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	level.SetFilter("abc", 0)
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterCaretMovement(t *testing.T) {
	level := newTestLevel("one", "two")
	level.SetFilter("one two", len("one two"))

	if !level.MoveFilterCursorRuneBackward() || level.FilterCursor != len("one two")-1 {
		t.Fatalf("expected caret one rune left, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorRuneForward() || level.FilterCursor != len("one two") {
		t.Fatalf("expected caret back at end, got %d", level.FilterCursor)
	}
	if level.MoveFilterCursorRuneForward() {
		t.Fatal("expected no movement past the end")
	}
	if !level.MoveFilterCursorStart() || level.FilterCursor != 0 {
		t.Fatalf("expected caret at start, got %d", level.FilterCursor)
	}
	if level.MoveFilterCursorRuneBackward() {
		t.Fatal("expected no movement before the start")
	}
	if !level.MoveFilterCursorEnd() || level.FilterCursor != len("one two") {
		t.Fatalf("expected caret at end, got %d", level.FilterCursor)
	}

	level.FilterCursor = 99
	if level.FilterCursorPos() != len("one two") {
		t.Fatalf("expected out of range caret clamped, got %d", level.FilterCursorPos())
	}
}

func TestFilterItemsMatchesEveryTerm(t *testing.T) {
	items := []Item{
		{ID: "home", Tags: []string{"open", "animation", "animation"}},
		{ID: "settings", Tags: []string{"closed", "none", "custom"}},
		{ID: "audio", Tags: []string{"open", "none", "custom"}},
	}

	if got := FilterItems(items, "set"); len(got) != 1 || got[0].ID != "settings" {
		t.Fatalf("expected only settings, got %#v", got)
	}
	if got := FilterItems(items, "open"); len(got) != 2 {
		t.Fatalf("expected both open menus via tags, got %#v", got)
	}
	if got := FilterItems(items, "open  custom"); len(got) != 1 || got[0].ID != "audio" {
		t.Fatalf("expected terms to intersect, got %#v", got)
	}
	if got := FilterItems(items, "nomatch"); len(got) != 0 {
		t.Fatalf("expected no results, got %#v", got)
	}

	all := FilterItems(items, "   ")
	if len(all) != 3 {
		t.Fatalf("expected blank query to keep everything, got %d", len(all))
	}
	all[0].ID = "changed"
	if items[0].ID != "home" {
		t.Fatal("expected filtering to copy the items")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{
		{ID: "settings#1", Tags: []string{"open"}},
		{ID: "settings"},
		{ID: "audio"},
	}

	if idx := BestMatchIndex(items, "SETTINGS"); idx != 1 {
		t.Fatalf("expected exact ID match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "au"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "ado"); idx != 2 {
		t.Fatalf("expected fuzzy match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "open"); idx != 0 {
		t.Fatalf("expected tag-only match to fall back to 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestSetFilterSelectsBestMatch(t *testing.T) {
	items := []Item{{ID: "home"}, {ID: "resolve"}, {ID: "sound"}}
	level := NewLevel("id", "title", items)
	level.SetFilter("so", 2)
	if !reflect.DeepEqual(level.Items, []Item{{ID: "resolve"}, {ID: "sound"}}) {
		t.Fatalf("expected fuzzy matches for so, got %#v", level.Items)
	}
	if level.Cursor != 1 {
		t.Fatalf("expected prefix match sound under the cursor, got %d", level.Cursor)
	}
}

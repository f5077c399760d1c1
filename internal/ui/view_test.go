package ui

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/atomicstack/menuz/internal/backend"
	"github.com/atomicstack/menuz/internal/scene"
	"github.com/charmbracelet/lipgloss"
)

func TestViewDrawsOpenPanelsSideBySide(t *testing.T) {
	m := newTestModel(t, Options{Width: 80})
	settings, _ := m.Scene().Panel("settings")
	settings.Menu.OpenImmediate()
	m.syncPanels()

	view := m.View()
	first := strings.Split(view, "\n")[1]
	if !strings.Contains(first, "Home") || !strings.Contains(first, "Settings") {
		t.Fatalf("expected both titles on one row, got:\n%s", view)
	}
	for _, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w > 80 {
			t.Fatalf("line wider than 80 cells (%d): %q", w, line)
		}
	}
}

func TestViewShowsProgressWhileClosing(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootMenu: "settings", Width: 40}))
	h.Key("esc")
	view := h.View()
	if !strings.Contains(view, "Settings (closing)") {
		t.Fatalf("expected closing marker, got:\n%s", view)
	}
	if !strings.Contains(view, "░") {
		t.Fatalf("expected progress bar, got:\n%s", view)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0.5, 4); got != "██░░" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := progressBar(2, 3); got != "███" {
		t.Fatalf("expected clamped bar, got %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("settings", 5); got != "sett…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateText("home", 10); got != "home" {
		t.Fatalf("expected untouched text, got %q", got)
	}
}

func TestBackendReloadRestoresOpenPanels(t *testing.T) {
	m := newTestModel(t, Options{RootMenu: "settings", Verbose: true})
	def, err := scene.Parse([]byte(testScene+`
  - name: extra
    buttons:
      - {label: Home, goto: home}
`), scene.FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m.applyBackendEvent(backend.Event{Kind: backend.KindScene, Data: def})

	if m.Registry().Len() != 3 {
		t.Fatalf("expected 3 menus after reload, got %d", m.Registry().Len())
	}
	if got := openNames(m); len(got) != 1 || got[0] != "settings" {
		t.Fatalf("expected settings to stay open, got %v", got)
	}
	if _, ok := m.levels["extra"]; !ok {
		t.Fatalf("expected a button list for the new panel")
	}
	if !strings.Contains(m.currentInfo(), "scene reloaded: 3 panels, 1 open") {
		t.Fatalf("unexpected reload notice %q", m.currentInfo())
	}
}

func TestBackendErrorsKeepScene(t *testing.T) {
	m := newTestModel(t, Options{})
	before := m.Scene()
	m.applyBackendEvent(backend.Event{Kind: backend.KindScene, Err: errors.New("bad yaml")})
	if m.Scene() != before {
		t.Fatalf("expected running scene to survive a failed reload")
	}
	if !strings.Contains(m.errMsg, "bad yaml") {
		t.Fatalf("expected reload error, got %q", m.errMsg)
	}

	m.applyBackendEvent(backend.Event{Kind: backend.KindScene, Err: fs.ErrNotExist})
	if !strings.HasPrefix(m.errMsg, "scene file missing") {
		t.Fatalf("expected missing file notice, got %q", m.errMsg)
	}
}

package binding

import (
	"testing"

	"github.com/atomicstack/menuz/internal/menu"
)

type toggleRecorder struct {
	calls []bool
}

func (r *toggleRecorder) SetEnabled(v bool) { r.calls = append(r.calls, v) }

func newPair(t *testing.T) (*menu.Registry, *menu.Menu, *menu.Menu) {
	t.Helper()
	reg := menu.NewRegistry(nil)
	home, err := menu.New(reg, menu.Config{Name: "home"})
	if err != nil {
		t.Fatalf("new home: %v", err)
	}
	settings, err := menu.New(reg, menu.Config{Name: "settings"})
	if err != nil {
		t.Fatalf("new settings: %v", err)
	}
	home.OpenImmediate()
	return reg, home, settings
}

func TestTransitionerActivate(t *testing.T) {
	reg, home, settings := newPair(t)
	NewTransitioner(home, settings).Activate()
	if home.IsOpen() || !settings.IsOpen() {
		t.Fatalf("expected settings open and home closed")
	}
	if !settings.CanGoBack() {
		t.Fatalf("expected history recorded on settings")
	}
	if open := reg.OpenMenus(); len(open) != 1 || open[0] != settings {
		t.Fatalf("unexpected open menus %v", open)
	}
}

func TestTransitionerMissingEndpointIsSkipped(t *testing.T) {
	_, home, _ := newPair(t)
	(&Transitioner{From: home}).Activate()
	if !home.IsOpen() {
		t.Fatalf("expected home to stay open")
	}
}

func TestHistoryButtonRefreshTracksHistory(t *testing.T) {
	_, home, settings := newPair(t)
	back := &toggleRecorder{}
	forward := &toggleRecorder{}
	backBtn := NewBackButton(settings, back)
	fwdBtn := NewForwardButton(home, forward)

	RefreshAll([]Binding{backBtn, fwdBtn})
	if backBtn.Enabled() || fwdBtn.Enabled() {
		t.Fatalf("expected both buttons disabled initially")
	}

	home.TransitionTo(settings)
	RefreshAll([]Binding{backBtn, fwdBtn})
	if !backBtn.Enabled() {
		t.Fatalf("expected back enabled after transition")
	}

	backBtn.Activate()
	RefreshAll([]Binding{backBtn, fwdBtn})
	if !home.IsOpen() || settings.IsOpen() {
		t.Fatalf("expected back to reopen home")
	}
	if backBtn.Enabled() || !fwdBtn.Enabled() {
		t.Fatalf("expected back disabled and forward enabled")
	}

	fwdBtn.Activate()
	if !settings.IsOpen() || home.IsOpen() {
		t.Fatalf("expected forward to reopen settings")
	}

	wantBack := []bool{false, true, false}
	if len(back.calls) != len(wantBack) {
		t.Fatalf("expected back toggle calls %v, got %v", wantBack, back.calls)
	}
	for i := range wantBack {
		if back.calls[i] != wantBack[i] {
			t.Fatalf("expected back toggle calls %v, got %v", wantBack, back.calls)
		}
	}
}

func TestHistoryButtonOnEmptyHistoryDoesNothing(t *testing.T) {
	_, home, _ := newPair(t)
	NewBackButton(home, nil).Activate()
	NewForwardButton(home, nil).Activate()
	if !home.IsOpen() {
		t.Fatalf("expected home to remain open")
	}
}

func TestActionRunsCallback(t *testing.T) {
	ran := false
	a := &Action{Name: "quit", Fn: func() { ran = true }}
	a.Refresh()
	a.Activate()
	if !ran {
		t.Fatalf("expected action callback")
	}
	var nilAction *Action
	nilAction.Activate()
}

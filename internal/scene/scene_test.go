package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/menuz/internal/anim"
	"github.com/atomicstack/menuz/internal/menu"
)

const sampleYAML = `
root: home
frames: 2
panels:
  - name: home
    title: Home
    open: {kind: animation}
    close: {kind: animation}
    buttons:
      - {label: Settings, goto: settings}
      - {label: Quit, action: quit}
  - name: settings
    close: {kind: custom, routine: delay, duration: 1ms}
    buttons:
      - {label: Audio, goto: audio}
      - {label: Back, action: back}
      - {label: Forward, action: forward}
  - name: audio
    buttons:
      - {label: Back, action: back}
      - {label: Solo, action: solo}
      - {label: Close, action: close}
`

const sampleTOML = `
root = "home"

[[panels]]
name = "home"
  [[panels.buttons]]
  label = "Next"
  goto = "next"

[[panels]]
name = "next"
title = "Next Page"
  [panels.close]
  kind = "custom"
  routine = "fade"
  duration = "5ms"
  [[panels.buttons]]
  label = "Back"
  action = "back"
`

func buildSample(t *testing.T, hooks Hooks) (*Scene, *menu.Registry) {
	t.Helper()
	def, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	reg := menu.NewRegistry(nil)
	s, err := Build(def, reg, hooks)
	require.NoError(t, err)
	return s, reg
}

func panel(t *testing.T, s *Scene, name string) *Panel {
	t.Helper()
	p, ok := s.Panel(name)
	require.True(t, ok, "panel %s", name)
	return p
}

func press(t *testing.T, p *Panel, label string) {
	t.Helper()
	for _, b := range p.Buttons {
		if b.Label == label {
			require.True(t, b.Press(), "button %s on %s disabled", label, p.Name())
			return
		}
	}
	t.Fatalf("no button %q on %s", label, p.Name())
}

func settle(t *testing.T, s *Scene, reg *menu.Registry) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for reg.Scheduler().Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("scheduler did not settle")
		}
		s.Step()
		reg.Scheduler().Tick()
		time.Sleep(time.Millisecond)
	}
	s.Refresh()
}

func TestParseYAMLAndBuild(t *testing.T) {
	s, reg := buildSample(t, Hooks{})
	assert.Equal(t, 3, reg.Len())
	assert.Empty(t, reg.OpenMenus())

	home := panel(t, s, "home")
	assert.NotNil(t, home.Animator)
	assert.Equal(t, "Home", home.Title())
	assert.Equal(t, "settings", panel(t, s, "settings").Title())
	assert.Nil(t, panel(t, s, "audio").Animator)
	assert.Equal(t, menu.TransitionCustom, panel(t, s, "settings").Menu.Config().CloseTransition)

	s.OpenRoot()
	assert.True(t, home.View.Visible())
	assert.True(t, home.View.Interactable())
}

func TestParseTOML(t *testing.T) {
	def, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)
	require.Len(t, def.Panels, 2)
	assert.Equal(t, "custom", def.Panels[1].Close.Kind)
	assert.Equal(t, "next", def.Panels[0].Buttons[0].Goto)
}

func TestDefaultSceneIsValid(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)
	s, err := Build(def, nil, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, "home", s.Root().Name())
}

func TestValidateReportsProblems(t *testing.T) {
	cases := map[string]struct {
		src  string
		want error
	}{
		"empty":     {"panels: []", ErrNoPanels},
		"duplicate": {"panels: [{name: a}, {name: a}]", ErrDuplicatePanel},
		"root":      {"root: b\npanels: [{name: a}]", ErrUnknownPanel},
		"goto":      {"panels: [{name: a, buttons: [{label: x, goto: b}]}]", ErrUnknownPanel},
		"action":    {"panels: [{name: a, buttons: [{label: x, action: dance}]}]", ErrUnknownAction},
		"both":      {"panels: [{name: a, buttons: [{label: x, goto: a, action: back}]}]", ErrBadButton},
		"routine":   {"panels: [{name: a, close: {kind: custom}}]", menu.ErrMissingRoutine},
		"duration":  {"panels: [{name: a, close: {kind: custom, routine: fade, duration: soon}}]", ErrBadDuration},
		"name":      {"panels: [{title: x}]", menu.ErrMissingName},
		"hash":      {"panels: [{name: \"a#b\"}]", ErrReservedName},
		"frames":    {"frames: -1\npanels: [{name: a}]", ErrBadFrames},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), FormatYAML)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestFrameCount(t *testing.T) {
	def, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 2, def.FrameCount())

	def, err = Parse([]byte("panels: [{name: a}]"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, anim.DefaultFrames, def.FrameCount())
}

func TestZeroFramesCloseOnNextTick(t *testing.T) {
	def, err := Parse([]byte(`
frames: 0
panels:
  - name: home
    open: {kind: animation}
    close: {kind: animation}
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, def.FrameCount())

	reg := menu.NewRegistry(nil)
	s, err := Build(def, reg, Hooks{})
	require.NoError(t, err)
	home := panel(t, s, "home")

	home.Menu.Open()
	assert.False(t, home.Animator.IsInTransition())
	assert.Equal(t, anim.StateOpen, home.Animator.CurrentStateName())

	home.Menu.Close()
	require.True(t, home.Menu.ClosePending())
	reg.Scheduler().Tick()
	assert.False(t, home.Menu.IsOpen())
}

func TestLoadPicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o600))
	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "home", def.Root)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNavigationThroughButtons(t *testing.T) {
	s, reg := buildSample(t, Hooks{})
	home := panel(t, s, "home")
	settings := panel(t, s, "settings")
	s.OpenRoot()
	settle(t, s, reg)

	press(t, home, "Settings")
	assert.True(t, settings.Menu.IsOpen())
	assert.True(t, home.Menu.IsOpen(), "animation close still playing")
	settle(t, s, reg)
	assert.False(t, home.Menu.IsOpen())
	assert.False(t, home.View.Visible())

	back := settings.Buttons[1]
	forward := settings.Buttons[2]
	assert.True(t, back.Enabled())
	assert.False(t, forward.Enabled())
	assert.False(t, forward.Press())

	press(t, settings, "Back")
	settle(t, s, reg)
	assert.True(t, home.Menu.IsOpen())
	assert.False(t, settings.Menu.IsOpen())

	assert.True(t, home.Menu.CanGoForward())
}

func TestActionButtons(t *testing.T) {
	quit := 0
	s, reg := buildSample(t, Hooks{Quit: func() { quit++ }})
	home := panel(t, s, "home")
	audio := panel(t, s, "audio")

	press(t, home, "Quit")
	assert.Equal(t, 1, quit)

	home.Menu.OpenImmediate()
	panel(t, s, "settings").Menu.OpenImmediate()
	press(t, audio, "Solo")
	open := reg.OpenMenus()
	require.Len(t, open, 1)
	assert.Same(t, audio.Menu, open[0])

	press(t, audio, "Close")
	assert.False(t, audio.Menu.IsOpen())
}

func TestSpawnCreatesIndependentPanel(t *testing.T) {
	s, reg := buildSample(t, Hooks{})
	p, err := s.Spawn("audio")
	require.NoError(t, err)
	assert.Equal(t, "audio#1", p.Name())
	assert.Equal(t, 4, reg.Len())
	assert.Contains(t, s.FindAllMenus(), p.Menu)

	again, err := s.Spawn(p.Name())
	require.NoError(t, err)
	assert.Equal(t, "audio#2", again.Name())

	_, err = s.Spawn("nope")
	assert.ErrorIs(t, err, ErrUnknownPanel)
}

func TestTeardownAndForcePopulate(t *testing.T) {
	s, reg := buildSample(t, Hooks{})
	s.OpenRoot()

	reg.Reset()
	require.True(t, reg.EnsurePopulated(s))
	assert.Equal(t, 3, reg.Len())
	require.Len(t, reg.OpenMenus(), 1)

	s.Teardown()
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, s.Panels())
}

func TestRestoreOpensNamedPanels(t *testing.T) {
	s, reg := buildSample(t, Hooks{})
	assert.False(t, s.Restore([]string{"missing"}))
	assert.True(t, s.Restore([]string{"audio", "settings"}))
	open := reg.OpenMenus()
	require.Len(t, open, 2)
	assert.Equal(t, "audio", open[0].Name())
}

func TestAttachMovesSceneToRegistry(t *testing.T) {
	s, _ := buildSample(t, Hooks{})
	other := menu.NewRegistry(nil)
	s.Attach(other)
	assert.Same(t, other, s.Registry())
	assert.Equal(t, 3, other.Len())

	_, err := s.Spawn("home")
	require.NoError(t, err)
	assert.Equal(t, 4, other.Len())
}

package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/menuz/internal/backend"
	"github.com/atomicstack/menuz/internal/data/dispatcher"
	"github.com/atomicstack/menuz/internal/logging"
	"github.com/atomicstack/menuz/internal/menu"
	"github.com/atomicstack/menuz/internal/scene"
	"github.com/atomicstack/menuz/internal/state"
	"github.com/atomicstack/menuz/internal/theme"
	"github.com/atomicstack/menuz/internal/ui/command"
	uistate "github.com/atomicstack/menuz/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

type Mode int

const (
	ModePanels Mode = iota
	ModeInspector
)

const (
	defaultFPS      = 30
	inspectorLevel  = "inspector"
	transitionArrow = "→"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	FPS        int
	ShowFooter bool
	Verbose    bool
	RootMenu   string
	Source     string
	Watcher    *backend.Watcher
}

// Model implements the Bubble Tea model that drives a menu scene.
type Model struct {
	mode        Mode
	levels      map[string]*level
	focus       string
	inspector   *level
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	interval    time.Duration

	lastTransition string
	quitting       bool
	quitSent       bool

	backend           *backend.Watcher
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	registry    *menu.Registry
	store       state.SceneStore
	dispatcher  *dispatcher.Dispatcher
	bus         *command.Bus
	unsubscribe func()
}

// NewModel builds the scene described by def and opens its root panel, or
// the panel named by opts.RootMenu when it exists.
func NewModel(def *scene.Definition, opts Options) (*Model, error) {
	m := &Model{
		mode:       ModePanels,
		levels:     map[string]*level{},
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		backend:    opts.Watcher,
		registry:   menu.NewRegistry(menu.NewScheduler()),
		store:      state.NewSceneStore(),
		bus:        command.New(),
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	m.interval = time.Second / time.Duration(fps)

	hooks := scene.Hooks{Quit: m.requestQuit}
	sc, err := scene.Build(def, m.registry, hooks)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	m.store.SetSource(opts.Source)
	m.store.SetScene(sc)
	m.dispatcher = dispatcher.New(m.store, m.registry, hooks)
	m.unsubscribe = m.registry.Subscribe(m.noteTransition)
	logging.SetFrameSource(m.registry.Scheduler().Frame)

	m.applyRootMenuOverride(opts.RootMenu)
	m.inspector = uistate.NewLevel(inspectorLevel, "Menus", nil)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	sc.Refresh()
	m.syncPanels()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frameCmd()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResult,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.quitting && !m.quitSent {
		m.quitSent = true
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Close releases the transition subscription and stops frame tracing.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	logging.SetFrameSource(nil)
}

// Registry exposes the registry backing the scene.
func (m *Model) Registry() *menu.Registry { return m.registry }

// Scene returns the scene currently on screen.
func (m *Model) Scene() *scene.Scene { return m.store.Scene() }

// Quitting reports whether a quit has been requested.
func (m *Model) Quitting() bool { return m.quitting }

func (m *Model) requestQuit() {
	m.quitting = true
}

// noteTransition follows navigation: the panel that was opened takes focus.
func (m *Model) noteTransition(from, to *menu.Menu) {
	if from == nil || to == nil {
		return
	}
	m.lastTransition = from.Name() + " " + transitionArrow + " " + to.Name()
	m.setFocus(to.Name())
}

func (m *Model) applyRootMenuOverride(requested string) {
	sc := m.store.Scene()
	if sc == nil {
		return
	}
	if requested != "" {
		if p, ok := sc.Panel(requested); ok {
			p.Menu.OpenImmediate()
			m.focus = p.Name()
			return
		}
		m.errMsg = fmt.Sprintf("unknown root menu %q", requested)
	}
	sc.OpenRoot()
	if root := sc.Root(); root != nil {
		m.focus = root.Name()
	}
}

package menu

import (
	"slices"

	"github.com/atomicstack/menuz/internal/logging"
	"github.com/atomicstack/menuz/internal/logging/events"
	"github.com/google/uuid"
)

// Listener is notified synchronously when a menu opens or closes.
type Listener func()

// Menu is a single navigable panel with its own back and forward history.
// All methods must be called from the tick thread.
type Menu struct {
	id       string
	cfg      Config
	registry *Registry
	runner   *transitionRunner

	open bool
	// ignoreNextHistoryChange suppresses exactly one registerHistoryChange.
	ignoreNextHistoryChange bool

	previous []*Menu
	next     []*Menu

	onOpened []Listener
	onClosed []Listener

	openTask  *Task
	closeTask *Task
}

// New validates cfg, builds a closed menu and registers it with reg.
func New(reg *Registry, cfg Config) (*Menu, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry(nil)
	}
	cfg = cfg.withDefaults()
	m := &Menu{
		id:       uuid.NewString(),
		cfg:      cfg,
		registry: reg,
		runner:   &transitionRunner{menu: cfg.Name, sched: reg.Scheduler()},
	}
	reg.Register(m)
	return m, nil
}

// ID returns the stable identity assigned at construction.
func (m *Menu) ID() string { return m.id }

// Name returns the configured menu name.
func (m *Menu) Name() string { return m.cfg.Name }

// IsOpen reports the menu's open state.
func (m *Menu) IsOpen() bool { return m.open }

// Config returns a copy of the effective configuration.
func (m *Menu) Config() Config { return m.cfg }

// Registry returns the registry the menu belongs to.
func (m *Menu) Registry() *Registry { return m.registry }

// ClosePending reports whether a close transition is still playing.
func (m *Menu) ClosePending() bool { return m.closeTask.Pending() }

// OnOpened appends a listener invoked after every OpenImmediate.
func (m *Menu) OnOpened(l Listener) {
	if l != nil {
		m.onOpened = append(m.onOpened, l)
	}
}

// OnClosed appends a listener invoked after every CloseImmediate.
func (m *Menu) OnClosed(l Listener) {
	if l != nil {
		m.onClosed = append(m.onClosed, l)
	}
}

// HistoryDepth returns the sizes of the back and forward stacks.
func (m *Menu) HistoryDepth() (back, forward int) {
	return len(m.previous), len(m.next)
}

// Open opens the menu immediately and then starts the open transition.
// Listeners are notified before the transition plays; it is never awaited.
// Does not record history.
func (m *Menu) Open() {
	m.OpenImmediate()
	events.Menu.Open(m.Name(), m.cfg.OpenTransition.String())
	m.openTask.Cancel()
	m.openTask = m.runner.playOpen(&m.cfg)
}

// OpenImmediate opens the menu without a transition. Calling it on an open
// menu is safe. A close transition still in flight is cancelled.
func (m *Menu) OpenImmediate() {
	if m.closeTask.Pending() {
		m.closeTask.Cancel()
		events.Menu.CloseCancelled(m.Name())
	}
	m.closeTask = nil

	m.cfg.Renderer.SetVisible(true)
	m.cfg.Renderer.SetBlocksInput(true)
	m.cfg.Renderer.SetInteractable(true)

	m.open = true
	m.registry.markOpen(m)
	events.Menu.OpenImmediate(m.Name())

	notify(m.onOpened)
}

// Close plays the close transition and closes the menu once it finishes.
// With no transition the menu closes before Close returns. A second Close
// while a transition is still playing does nothing. Does not record history.
func (m *Menu) Close() {
	if m.closeTask.Pending() {
		events.Menu.CloseSkipped(m.Name())
		return
	}
	m.openTask.Cancel()
	m.openTask = nil
	events.Menu.Close(m.Name(), m.cfg.CloseTransition.String())

	task := m.runner.playClose(&m.cfg, func(err error) {
		if err != nil {
			logging.Error(err)
			events.Menu.RoutineError(m.Name(), err)
		}
		m.closeTask = nil
		m.CloseImmediate()
	})
	if task == nil {
		m.CloseImmediate()
		return
	}
	m.closeTask = task
	events.Menu.CloseDeferred(m.Name(), task.Name())
}

// CloseImmediate closes the menu without a transition.
func (m *Menu) CloseImmediate() {
	if m.closeTask.Pending() {
		m.closeTask.Cancel()
	}
	m.closeTask = nil

	m.cfg.Renderer.SetVisible(false)
	m.cfg.Renderer.SetBlocksInput(false)
	m.cfg.Renderer.SetInteractable(false)

	m.open = false
	m.registry.markClosed(m)
	events.Menu.CloseImmediate(m.Name())

	notify(m.onClosed)
}

// CanGoBack reports whether Back has somewhere to go.
func (m *Menu) CanGoBack() bool { return len(m.previous) > 0 }

// CanGoForward reports whether Forward has somewhere to go.
func (m *Menu) CanGoForward() bool { return len(m.next) > 0 }

// Back transitions to the previous menu in history. The current menu is
// pushed onto the target's forward stack so Forward can return here.
func (m *Menu) Back() {
	if !m.CanGoBack() {
		return
	}
	target := pop(&m.previous)
	target.next = append(target.next, m)
	target.ignoreNextHistoryChange = true
	events.Menu.Back(m.Name(), target.Name())
	m.TransitionTo(target)
}

// Forward transitions to the next menu in history. The current menu is
// pushed onto the target's back stack so Back can return here.
func (m *Menu) Forward() {
	if !m.CanGoForward() {
		return
	}
	target := pop(&m.next)
	target.previous = append(target.previous, m)
	target.ignoreNextHistoryChange = true
	events.Menu.Forward(m.Name(), target.Name())
	m.TransitionTo(target)
}

// TransitionTo records history on target, opens it, closes m and publishes
// the transition. Navigating to m itself or to nil does nothing.
func (m *Menu) TransitionTo(target *Menu) {
	if target == nil {
		return
	}
	if target == m {
		events.Menu.SelfTransition(m.Name())
		return
	}
	target.registerHistoryChange(m)
	target.Open()
	m.Close()

	events.Menu.Transition(m.Name(), target.Name())
	m.registry.Bus().Publish(m, target)
}

func (m *Menu) registerHistoryChange(from *Menu) {
	if m.ignoreNextHistoryChange {
		m.ignoreNextHistoryChange = false
		events.Menu.HistorySuppressed(m.Name(), from.Name())
		return
	}
	m.previous = append(m.previous, from)
	clear(m.next)
	m.next = m.next[:0]
	events.Menu.History(m.Name(), from.Name(), len(m.previous))
}

// Destroy cancels in-flight transitions, drops the menu from the history of
// every registered menu and removes it from its registry. The menu must not
// be used afterwards.
func (m *Menu) Destroy() {
	m.openTask.Cancel()
	m.closeTask.Cancel()
	m.openTask = nil
	m.closeTask = nil
	isM := func(other *Menu) bool { return other == m }
	for _, other := range m.registry.menus {
		other.previous = slices.DeleteFunc(other.previous, isM)
		other.next = slices.DeleteFunc(other.next, isM)
	}
	m.previous = nil
	m.next = nil
	m.registry.Deregister(m)
}

func pop(stack *[]*Menu) *Menu {
	s := *stack
	top := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return top
}

func notify(listeners []Listener) {
	// Listeners may register further listeners; iterate over a snapshot.
	snapshot := append([]Listener(nil), listeners...)
	for _, l := range snapshot {
		l()
	}
}

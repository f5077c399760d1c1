package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atomicstack/menuz/internal/anim"
	"github.com/atomicstack/menuz/internal/binding"
	"github.com/atomicstack/menuz/internal/logging/events"
	"github.com/atomicstack/menuz/internal/menu"
)

// Hooks are callbacks for actions the scene cannot perform itself.
type Hooks struct {
	Quit func()
}

// Scene is a built set of panels registered with one registry.
type Scene struct {
	def      *Definition
	registry *menu.Registry
	hooks    Hooks
	panels   []*Panel
	spawned  int
}

// Build creates a panel, and registers a menu, for every panel definition.
// Nothing is opened; call OpenRoot or Restore afterwards.
func Build(def *Definition, reg *menu.Registry, hooks Hooks) (*Scene, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = menu.NewRegistry(nil)
	}
	s := &Scene{def: def, registry: reg, hooks: hooks}
	for _, pd := range def.Panels {
		p, err := s.newPanel(pd, pd.Name)
		if err != nil {
			s.Teardown()
			return nil, err
		}
		s.panels = append(s.panels, p)
	}
	for _, p := range s.panels {
		s.bindButtons(p)
	}
	return s, nil
}

// Definition returns the definition the scene was built from.
func (s *Scene) Definition() *Definition { return s.def }

// Registry returns the registry the scene's menus belong to.
func (s *Scene) Registry() *menu.Registry { return s.registry }

// FindAllMenus implements menu.Finder.
func (s *Scene) FindAllMenus() []*menu.Menu {
	out := make([]*menu.Menu, 0, len(s.panels))
	for _, p := range s.panels {
		out = append(out, p.Menu)
	}
	return out
}

// Panels returns the panels in definition order, spawned panels last.
func (s *Scene) Panels() []*Panel {
	return slices.Clone(s.panels)
}

// Panel looks a panel up by menu name.
func (s *Scene) Panel(name string) (*Panel, bool) {
	for _, p := range s.panels {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// PanelFor returns the panel that owns m.
func (s *Scene) PanelFor(m *menu.Menu) (*Panel, bool) {
	for _, p := range s.panels {
		if p.Menu == m {
			return p, true
		}
	}
	return nil, false
}

// Root returns the root panel, or the first panel when no root is set.
func (s *Scene) Root() *Panel {
	if len(s.panels) == 0 {
		return nil
	}
	if p, ok := s.Panel(s.def.Root); ok {
		return p
	}
	return s.panels[0]
}

// Attach moves the scene onto reg: later spawns and solo actions use it, and
// reg is force-populated with the scene's menus.
func (s *Scene) Attach(reg *menu.Registry) {
	s.registry = reg
	reg.ForcePopulate(s)
}

// OpenRoot opens the root panel without a transition.
func (s *Scene) OpenRoot() {
	if root := s.Root(); root != nil {
		root.Menu.OpenImmediate()
	}
}

// Restore reopens the named panels without transitions. Unknown names are
// skipped. It reports whether anything was opened.
func (s *Scene) Restore(names []string) bool {
	opened := false
	for _, name := range names {
		if p, ok := s.Panel(name); ok {
			p.Menu.OpenImmediate()
			opened = true
		}
	}
	return opened
}

// Step advances every animator by one frame.
func (s *Scene) Step() {
	for _, p := range s.panels {
		p.Step()
	}
}

// Refresh updates button state for every panel.
func (s *Scene) Refresh() {
	for _, p := range s.panels {
		p.Refresh()
	}
}

// Teardown destroys every menu. The scene must not be used afterwards.
func (s *Scene) Teardown() {
	for _, p := range s.panels {
		p.Menu.Destroy()
	}
	events.Scene.Teardown(len(s.panels))
	s.panels = nil
}

// Spawn instantiates another panel from the definition named template. The
// copy gets a unique name, its own history and the template's buttons.
func (s *Scene) Spawn(template string) (*Panel, error) {
	// Spawned panels carry a "#n" suffix; copies of copies use the original.
	base, _, _ := strings.Cut(template, "#")
	var pd *PanelDef
	for i := range s.def.Panels {
		if s.def.Panels[i].Name == base {
			pd = &s.def.Panels[i]
			break
		}
	}
	if pd == nil {
		return nil, fmt.Errorf("spawn: %w %q", ErrUnknownPanel, template)
	}
	name := s.uniqueName(pd.Name)
	p, err := s.newPanel(*pd, name)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", template, err)
	}
	p.Def.Title = fmt.Sprintf("%s (%d)", pd.DisplayTitle(), s.spawned)
	s.panels = append(s.panels, p)
	s.bindButtons(p)
	events.Scene.Spawn(template, name)
	return p, nil
}

func (s *Scene) uniqueName(base string) string {
	for {
		s.spawned++
		name := fmt.Sprintf("%s#%d", base, s.spawned)
		if _, taken := s.Panel(name); !taken {
			return name
		}
	}
}

func (s *Scene) newPanel(pd PanelDef, name string) (*Panel, error) {
	openKind, err := menu.ParseTransitionKind(pd.Open.Kind)
	if err != nil {
		return nil, err
	}
	closeKind, err := menu.ParseTransitionKind(pd.Close.Kind)
	if err != nil {
		return nil, err
	}
	p := &Panel{Def: pd, View: &View{}, Progress: &anim.Progress{}}
	cfg := menu.Config{
		Name:            name,
		OpenTransition:  openKind,
		CloseTransition: closeKind,
		OpenTrigger:     pd.Open.Trigger,
		CloseTrigger:    pd.Close.Trigger,
		CloseState:      pd.Close.State,
		Renderer:        p.View,
	}
	if openKind == menu.TransitionAnimation || closeKind == menu.TransitionAnimation {
		p.Animator = anim.NewController(s.def.FrameCount(), "", pd.Close.State)
		if pd.Open.Trigger != "" {
			p.Animator.Map(pd.Open.Trigger, anim.StateOpen)
		}
		if pd.Close.Trigger != "" {
			p.Animator.Map(pd.Close.Trigger, p.Animator.CloseState())
		}
		cfg.Animator = p.Animator
	}
	if openKind == menu.TransitionCustom {
		if cfg.OpenRoutine, err = routineFor(pd.Open, p.Progress); err != nil {
			return nil, err
		}
	}
	if closeKind == menu.TransitionCustom {
		if cfg.CloseRoutine, err = routineFor(pd.Close, p.Progress); err != nil {
			return nil, err
		}
	}
	m, err := menu.New(s.registry, cfg)
	if err != nil {
		return nil, err
	}
	p.Menu = m
	return p, nil
}

func routineFor(t TransitionDef, progress *anim.Progress) (menu.Routine, error) {
	d, err := t.duration()
	if err != nil {
		return nil, err
	}
	return anim.Lookup(t.Routine, d, progress)
}

// bindButtons resolves button targets. A goto button transitions from its
// own panel unless the definition names another source.
func (s *Scene) bindButtons(p *Panel) {
	p.Buttons = p.Buttons[:0]
	for _, bd := range p.Def.Buttons {
		var b *Button
		if bd.Goto != "" {
			from := p.Menu
			if bd.From != "" {
				if src, ok := s.Panel(bd.From); ok {
					from = src.Menu
				}
			}
			var to *menu.Menu
			if dst, ok := s.Panel(bd.Goto); ok {
				to = dst.Menu
			}
			b = newButton(bd.Label, binding.NewTransitioner(from, to))
		} else {
			b = s.actionButton(p, bd)
		}
		p.Buttons = append(p.Buttons, b)
	}
}

func (s *Scene) actionButton(p *Panel, bd ButtonDef) *Button {
	action, _ := parseAction(bd.Action)
	b := newButton(bd.Label, nil)
	switch action {
	case ActionBack:
		b.Binding = binding.NewBackButton(p.Menu, b)
	case ActionForward:
		b.Binding = binding.NewForwardButton(p.Menu, b)
	case ActionClose:
		b.Binding = &binding.Action{Name: string(action), Fn: p.Menu.Close}
	case ActionSolo:
		b.Binding = &binding.Action{Name: string(action), Fn: func() { s.registry.SoloOpen(p.Menu) }}
	case ActionQuit:
		b.Binding = &binding.Action{Name: string(action), Fn: func() {
			if s.hooks.Quit != nil {
				s.hooks.Quit()
			}
		}}
	}
	return b
}

var _ menu.Finder = (*Scene)(nil)

package menu

import (
	"slices"

	"github.com/atomicstack/menuz/internal/logging/events"
)

// Finder enumerates the menus that currently exist in a scene.
type Finder interface {
	FindAllMenus() []*Menu
}

// Registry is the directory of live menus and the subset currently open.
// Both collections keep insertion order and never hold duplicates. A
// registry also owns the scheduler its menus suspend on and the bus that
// broadcasts transitions.
type Registry struct {
	menus []*Menu
	open  []*Menu
	sched *Scheduler
	bus   *Bus
}

// NewRegistry builds an empty registry. A nil scheduler gets a fresh one.
func NewRegistry(sched *Scheduler) *Registry {
	if sched == nil {
		sched = NewScheduler()
	}
	return &Registry{sched: sched, bus: NewBus()}
}

// Scheduler returns the scheduler shared by the registry's menus.
func (r *Registry) Scheduler() *Scheduler { return r.sched }

// Bus returns the transition bus.
func (r *Registry) Bus() *Bus { return r.bus }

// Subscribe is shorthand for Bus().Subscribe.
func (r *Registry) Subscribe(fn TransitionFunc) (unsubscribe func()) {
	return r.bus.Subscribe(fn)
}

// Register adds m to the registry if absent.
func (r *Registry) Register(m *Menu) {
	if m == nil || slices.Contains(r.menus, m) {
		return
	}
	r.adopt(m)
	r.menus = append(r.menus, m)
	if m.open {
		r.markOpen(m)
	}
	events.Registry.Register(m.Name(), m.ID(), len(r.menus))
}

// Deregister removes m from both collections.
func (r *Registry) Deregister(m *Menu) {
	if m == nil {
		return
	}
	r.menus = remove(r.menus, m)
	r.open = remove(r.open, m)
	events.Registry.Deregister(m.Name(), m.ID(), len(r.menus))
}

// Menus returns every registered menu in registration order.
func (r *Registry) Menus() []*Menu {
	return slices.Clone(r.menus)
}

// OpenMenus returns the open menus in the order they were opened.
func (r *Registry) OpenMenus() []*Menu {
	return slices.Clone(r.open)
}

// Len returns the number of registered menus.
func (r *Registry) Len() int { return len(r.menus) }

// Find returns the first registered menu with the given name.
func (r *Registry) Find(name string) (*Menu, bool) {
	for _, m := range r.menus {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Contains reports whether m is registered.
func (r *Registry) Contains(m *Menu) bool {
	return slices.Contains(r.menus, m)
}

// ForcePopulate replaces the registry contents with the menus reported by
// finder and recomputes the open set from each menu's open flag. Repeated
// calls with the same scene leave the registry unchanged.
func (r *Registry) ForcePopulate(finder Finder) {
	var found []*Menu
	if finder != nil {
		found = finder.FindAllMenus()
	}
	menus := make([]*Menu, 0, len(found))
	open := make([]*Menu, 0, len(found))
	for _, m := range found {
		if m == nil || slices.Contains(menus, m) {
			continue
		}
		r.adopt(m)
		menus = append(menus, m)
		if m.open {
			open = append(open, m)
		}
	}
	r.menus = menus
	r.open = open
	events.Registry.Populate(len(r.menus), len(r.open))
}

// EnsurePopulated calls ForcePopulate only when the registry is empty.
func (r *Registry) EnsurePopulated(finder Finder) bool {
	if len(r.menus) > 0 {
		return false
	}
	r.ForcePopulate(finder)
	return true
}

// Reset forgets every menu without touching their state.
func (r *Registry) Reset() {
	r.menus = nil
	r.open = nil
	events.Registry.Reset()
}

// CloseAll closes every registered menu without transitions, newest first.
func (r *Registry) CloseAll() {
	menus := slices.Clone(r.menus)
	for i := len(menus) - 1; i >= 0; i-- {
		menus[i].CloseImmediate()
	}
}

// SoloOpen closes every menu and opens m, bypassing transitions and
// history.
func (r *Registry) SoloOpen(m *Menu) {
	if m == nil {
		return
	}
	r.CloseAll()
	m.OpenImmediate()
	events.Registry.Solo(m.Name())
}

// Toggle flips m between open and closed without transitions.
func (r *Registry) Toggle(m *Menu) {
	if m == nil {
		return
	}
	if m.IsOpen() {
		m.CloseImmediate()
	} else {
		m.OpenImmediate()
	}
	events.Registry.Toggle(m.Name(), m.IsOpen())
}

// adopt moves m onto r. A menu belongs to one registry at a time, so the
// registry it leaves forgets it.
func (r *Registry) adopt(m *Menu) {
	if prev := m.registry; prev != nil && prev != r {
		prev.menus = remove(prev.menus, m)
		prev.open = remove(prev.open, m)
	}
	m.registry = r
	if m.runner != nil {
		m.runner.sched = r.sched
	}
}

func (r *Registry) markOpen(m *Menu) {
	if !slices.Contains(r.open, m) {
		r.open = append(r.open, m)
	}
}

func (r *Registry) markClosed(m *Menu) {
	r.open = remove(r.open, m)
}

func remove(list []*Menu, m *Menu) []*Menu {
	idx := slices.Index(list, m)
	if idx < 0 {
		return list
	}
	return slices.Delete(list, idx, idx+1)
}

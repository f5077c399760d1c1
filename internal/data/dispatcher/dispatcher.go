package dispatcher

import (
	"fmt"

	"github.com/atomicstack/menuz/internal/backend"
	"github.com/atomicstack/menuz/internal/logging/events"
	"github.com/atomicstack/menuz/internal/menu"
	"github.com/atomicstack/menuz/internal/scene"
	"github.com/atomicstack/menuz/internal/state"
)

type Result struct {
	SceneReloaded bool
	Panels        int
	Open          int
	Err           error
}

// Dispatcher applies backend events to the registry and scene store.
type Dispatcher struct {
	store    state.SceneStore
	registry *menu.Registry
	hooks    scene.Hooks
}

func New(store state.SceneStore, reg *menu.Registry, hooks scene.Hooks) *Dispatcher {
	return &Dispatcher{store: store, registry: reg, hooks: hooks}
}

// Handle swaps in a reloaded scene. The new scene is built before the old
// one is torn down, so a definition that fails to build leaves the running
// scene untouched. Panels that were open keep their open state by name;
// when none survive the root panel opens instead.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Scene.Error(d.store.Source(), evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindScene:
		def, ok := evt.Data.(*scene.Definition)
		if !ok || def == nil {
			res.Err = fmt.Errorf("unexpected scene payload %T", evt.Data)
			return res
		}
		staging := menu.NewRegistry(d.registry.Scheduler())
		next, err := scene.Build(def, staging, d.hooks)
		if err != nil {
			events.Scene.Error(d.store.Source(), err)
			res.Err = err
			return res
		}

		var openNames []string
		for _, m := range d.registry.OpenMenus() {
			openNames = append(openNames, m.Name())
		}
		if old := d.store.Scene(); old != nil {
			old.Teardown()
		}
		d.registry.Reset()
		next.Attach(d.registry)
		if !next.Restore(openNames) {
			next.OpenRoot()
		}
		d.store.SetScene(next)

		res.SceneReloaded = true
		res.Panels = d.registry.Len()
		res.Open = len(d.registry.OpenMenus())
		events.Scene.Reload(d.store.Source(), res.Panels, res.Open)
	}
	return res
}

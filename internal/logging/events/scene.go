package events

import "github.com/atomicstack/menuz/internal/logging"

type SceneTracer struct{}

type BindingTracer struct{}

var (
	Scene   = SceneTracer{}
	Binding = BindingTracer{}
)

func (SceneTracer) Load(source string, panels int) {
	logging.Trace("scene.load", map[string]interface{}{"source": source, "panels": panels})
}

func (SceneTracer) Reload(source string, panels, open int) {
	logging.Trace("scene.reload", map[string]interface{}{"source": source, "panels": panels, "open": open})
}

func (SceneTracer) Error(source string, err error) {
	if err == nil {
		return
	}
	logging.Trace("scene.error", map[string]interface{}{"source": source, "error": err.Error()})
}

func (SceneTracer) Spawn(template, name string) {
	logging.Trace("scene.spawn", map[string]interface{}{"template": template, "name": name})
}

func (SceneTracer) Teardown(panels int) {
	logging.Trace("scene.teardown", map[string]interface{}{"panels": panels})
}

func (BindingTracer) Activate(kind, from, to string) {
	logging.Trace("binding.activate", map[string]interface{}{"kind": kind, "from": from, "to": to})
}

func (BindingTracer) Skip(kind, reason string) {
	logging.Trace("binding.skip", map[string]interface{}{"kind": kind, "reason": reason})
}

func (BindingTracer) Refresh(menu, kind string, enabled bool) {
	logging.Trace("binding.refresh", map[string]interface{}{"menu": menu, "kind": kind, "enabled": enabled})
}

package events

import "github.com/atomicstack/menuz/internal/logging"

type MenuTracer struct{}

type RegistryTracer struct{}

var (
	Menu     = MenuTracer{}
	Registry = RegistryTracer{}
)

func (MenuTracer) Open(menu, kind string) {
	logging.Trace("menu.open", map[string]interface{}{"menu": menu, "transition": kind})
}

func (MenuTracer) OpenImmediate(menu string) {
	logging.Trace("menu.open.immediate", map[string]interface{}{"menu": menu})
}

func (MenuTracer) Close(menu, kind string) {
	logging.Trace("menu.close", map[string]interface{}{"menu": menu, "transition": kind})
}

func (MenuTracer) CloseImmediate(menu string) {
	logging.Trace("menu.close.immediate", map[string]interface{}{"menu": menu})
}

func (MenuTracer) CloseDeferred(menu, task string) {
	logging.Trace("menu.close.deferred", map[string]interface{}{"menu": menu, "task": task})
}

func (MenuTracer) CloseSkipped(menu string) {
	logging.Trace("menu.close.skip", map[string]interface{}{"menu": menu})
}

func (MenuTracer) CloseCancelled(menu string) {
	logging.Trace("menu.close.cancel", map[string]interface{}{"menu": menu})
}

func (MenuTracer) RoutineError(menu string, err error) {
	if err == nil {
		return
	}
	logging.Trace("menu.routine.error", map[string]interface{}{"menu": menu, "error": err.Error()})
}

func (MenuTracer) Back(from, to string) {
	logging.Trace("menu.back", map[string]interface{}{"from": from, "to": to})
}

func (MenuTracer) Forward(from, to string) {
	logging.Trace("menu.forward", map[string]interface{}{"from": from, "to": to})
}

func (MenuTracer) Transition(from, to string) {
	logging.Trace("menu.transition", map[string]interface{}{"from": from, "to": to})
}

func (MenuTracer) SelfTransition(menu string) {
	logging.Trace("menu.transition.self", map[string]interface{}{"menu": menu})
}

func (MenuTracer) History(menu, from string, depth int) {
	logging.Trace("menu.history", map[string]interface{}{"menu": menu, "from": from, "depth": depth})
}

func (MenuTracer) HistorySuppressed(menu, from string) {
	logging.Trace("menu.history.suppressed", map[string]interface{}{"menu": menu, "from": from})
}

func (RegistryTracer) Register(menu, id string, total int) {
	logging.Trace("registry.register", map[string]interface{}{"menu": menu, "id": id, "total": total})
}

func (RegistryTracer) Deregister(menu, id string, total int) {
	logging.Trace("registry.deregister", map[string]interface{}{"menu": menu, "id": id, "total": total})
}

func (RegistryTracer) Populate(total, open int) {
	logging.Trace("registry.populate", map[string]interface{}{"total": total, "open": open})
}

func (RegistryTracer) Reset() {
	logging.Trace("registry.reset", nil)
}

func (RegistryTracer) Solo(menu string) {
	logging.Trace("registry.solo", map[string]interface{}{"menu": menu})
}

func (RegistryTracer) Toggle(menu string, open bool) {
	logging.Trace("registry.toggle", map[string]interface{}{"menu": menu, "open": open})
}

func (RegistryTracer) Publish(from, to string, subscribers int) {
	logging.Trace("registry.publish", map[string]interface{}{"from": from, "to": to, "subscribers": subscribers})
}

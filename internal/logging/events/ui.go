package events

import "github.com/atomicstack/menuz/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Key(panel, key string) {
	logging.Trace("ui.key", map[string]interface{}{"panel": panel, "key": key})
}

func (UITracer) Press(panel, label string, enabled bool) {
	logging.Trace("ui.press", map[string]interface{}{"panel": panel, "label": label, "enabled": enabled})
}

func (UITracer) Focus(panel string) {
	logging.Trace("ui.focus", map[string]interface{}{"panel": panel})
}

func (UITracer) Inspector(open bool) {
	logging.Trace("ui.inspector", map[string]interface{}{"open": open})
}

func (UITracer) Command(name, target string) {
	logging.Trace("ui.command", map[string]interface{}{"command": name, "target": target})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

// Package command runs inspector commands against the live registry and
// reports their outcome back to the Bubble Tea loop.
package command

import (
	"github.com/atomicstack/menuz/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs a command on target and returns a status line.
type Handler func(target string) (info string, err error)

// Request names a command and the menu it applies to.
type Request struct {
	Name    string
	Target  string
	Handler Handler
}

// Result is delivered to the model once a request has run.
type Result struct {
	Name   string
	Target string
	Info   string
	Err    error
}

// Bus executes inspector requests.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs the handler straight away, on the caller's goroutine, since
// menus and the registry belong to the UI loop. The returned command only
// delivers the Result.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.UI.Command(req.Name, req.Target)
	res := Result{Name: req.Name, Target: req.Target}
	if req.Handler != nil {
		res.Info, res.Err = req.Handler(req.Target)
	}
	return func() tea.Msg {
		return res
	}
}

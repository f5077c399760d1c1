package main

import (
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/menuz/internal/app"
	"github.com/atomicstack/menuz/internal/config"
	"github.com/atomicstack/menuz/internal/logging"
	"github.com/atomicstack/menuz/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records how the run was configured: the resolved
// flags, where the scene comes from, the frame clock and the terminal.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"scene":  sceneDetails(cfg.App),
		"frames": frameDetails(cfg.App),
		"tty":    collectTTYDetails(),
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

func sceneDetails(cfg app.Config) map[string]interface{} {
	if cfg.Scene == "" {
		return map[string]interface{}{"source": "(built-in)", "reload": false}
	}
	details := map[string]interface{}{
		"source": cfg.Scene,
		"reload": cfg.ReloadInterval > 0,
	}
	if cfg.ReloadInterval > 0 {
		details["pollInterval"] = cfg.ReloadInterval.String()
	}
	if cfg.RootMenu != "" {
		details["rootMenu"] = cfg.RootMenu
	}
	return details
}

func frameDetails(cfg app.Config) map[string]interface{} {
	details := map[string]interface{}{"fps": cfg.FPS}
	if cfg.FPS > 0 {
		details["interval"] = (time.Second / time.Duration(cfg.FPS)).String()
	}
	return details
}

type ttyDetails struct {
	Detected *ttyProbe  `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails probes stdin, stdout and stderr. The first terminal
// with a readable size becomes Detected.
func collectTTYDetails() ttyDetails {
	var details ttyDetails
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		probe := probeTTY(f)
		details.Probes = append(details.Probes, probe)
		if details.Detected == nil && probe.IsTerminal && probe.Error == "" {
			detected := probe
			details.Detected = &detected
		}
	}
	return details
}

func probeTTY(f *os.File) ttyProbe {
	probe := ttyProbe{Name: ttyName(f)}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	return probe
}

func ttyName(f *os.File) string {
	switch f {
	case os.Stdin:
		return "stdin"
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	return f.Name()
}

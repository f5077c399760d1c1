package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/menuz/internal/backend"
	"github.com/atomicstack/menuz/internal/scene"
	"github.com/atomicstack/menuz/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const builtinSource = "(built-in)"

// Config describes user-provided application options.
type Config struct {
	Scene          string
	RootMenu       string
	FPS            int
	ReloadInterval time.Duration
	Width          int
	Height         int
	ShowFooter     bool
	Verbose        bool
}

// Run loads the scene, starts the reload watcher and executes the Bubble
// Tea program until the user quits.
func Run(cfg Config) error {
	def, source, err := loadScene(cfg.Scene)
	if err != nil {
		return err
	}
	watcher := backend.NewWatcher(cfg.Scene, cfg.ReloadInterval)
	defer func() {
		watcher.Stop()
		watcher.Wait()
	}()
	model, err := ui.NewModel(def, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		FPS:        cfg.FPS,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		RootMenu:   cfg.RootMenu,
		Source:     source,
		Watcher:    watcher,
	})
	if err != nil {
		return err
	}
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// loadScene reads the scene file, or the built-in scene when path is empty.
func loadScene(path string) (*scene.Definition, string, error) {
	if path == "" {
		def, err := scene.Default()
		return def, builtinSource, err
	}
	def, err := scene.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("load scene: %w", err)
	}
	return def, path, nil
}

// Package scene turns a declarative panel layout into live menus. A scene
// file lists panels, how each one opens and closes, and the buttons that
// navigate between them.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/menuz/internal/anim"
	"github.com/atomicstack/menuz/internal/logging/events"
	"github.com/atomicstack/menuz/internal/menu"
)

//go:embed default.yaml
var defaultScene []byte

var (
	ErrNoPanels       = errors.New("scene has no panels")
	ErrDuplicatePanel = errors.New("duplicate panel name")
	ErrUnknownPanel   = errors.New("unknown panel")
	ErrUnknownAction  = errors.New("unknown button action")
	ErrBadButton      = errors.New("button needs exactly one of goto or action")
	ErrBadDuration    = errors.New("invalid duration")
	ErrUnknownFormat  = errors.New("unknown scene format")
	ErrBadFrames      = errors.New("frames must be >= 0")
	ErrReservedName   = errors.New("panel name must not contain '#'")
)

// Format selects the scene file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Definition is a parsed scene file.
type Definition struct {
	Root   string     `yaml:"root" toml:"root"`
	Frames *int       `yaml:"frames,omitempty" toml:"frames"`
	Panels []PanelDef `yaml:"panels" toml:"panels"`
}

// FrameCount is the animation length in frames. An unset value means
// anim.DefaultFrames; zero switches states on the trigger frame.
func (d *Definition) FrameCount() int {
	if d.Frames == nil {
		return anim.DefaultFrames
	}
	return *d.Frames
}

// PanelDef describes one panel.
type PanelDef struct {
	Name    string        `yaml:"name" toml:"name"`
	Title   string        `yaml:"title,omitempty" toml:"title"`
	Open    TransitionDef `yaml:"open,omitempty" toml:"open"`
	Close   TransitionDef `yaml:"close,omitempty" toml:"close"`
	Buttons []ButtonDef   `yaml:"buttons,omitempty" toml:"buttons"`
}

// TransitionDef describes the open or close transition of a panel.
type TransitionDef struct {
	Kind     string `yaml:"kind,omitempty" toml:"kind"`
	Trigger  string `yaml:"trigger,omitempty" toml:"trigger"`
	State    string `yaml:"state,omitempty" toml:"state"`
	Routine  string `yaml:"routine,omitempty" toml:"routine"`
	Duration string `yaml:"duration,omitempty" toml:"duration"`
}

// ButtonDef is either a goto button or an action button.
type ButtonDef struct {
	Label  string `yaml:"label" toml:"label"`
	Goto   string `yaml:"goto,omitempty" toml:"goto"`
	From   string `yaml:"from,omitempty" toml:"from"`
	Action string `yaml:"action,omitempty" toml:"action"`
}

// DisplayTitle falls back to the panel name.
func (p PanelDef) DisplayTitle() string {
	if strings.TrimSpace(p.Title) != "" {
		return p.Title
	}
	return p.Name
}

// duration parses the transition duration; empty means zero.
func (t TransitionDef) duration() (time.Duration, error) {
	if strings.TrimSpace(t.Duration) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(t.Duration)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w %q", ErrBadDuration, t.Duration)
	}
	return d, nil
}

// Default returns the built-in scene.
func Default() (*Definition, error) {
	return Parse(defaultScene, FormatYAML)
}

// Load reads and validates the scene file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	def, err := Parse(data, FormatFromPath(path))
	if err != nil {
		events.Scene.Error(path, err)
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	events.Scene.Load(path, len(def.Panels))
	return def, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &def); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks names, targets, transitions and actions. All problems are
// reported together.
func (d *Definition) Validate() error {
	if d == nil || len(d.Panels) == 0 {
		return ErrNoPanels
	}
	var errs []error
	names := make(map[string]struct{}, len(d.Panels))
	for _, p := range d.Panels {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			errs = append(errs, menu.ErrMissingName)
			continue
		}
		// "#" separates a spawned copy from its template.
		if strings.Contains(name, "#") {
			errs = append(errs, fmt.Errorf("%w: %q", ErrReservedName, name))
		}
		if _, dup := names[name]; dup {
			errs = append(errs, fmt.Errorf("%w %q", ErrDuplicatePanel, name))
		}
		names[name] = struct{}{}
	}
	if d.Frames != nil && *d.Frames < 0 {
		errs = append(errs, fmt.Errorf("%w (got %d)", ErrBadFrames, *d.Frames))
	}
	if d.Root != "" {
		if _, ok := names[d.Root]; !ok {
			errs = append(errs, fmt.Errorf("root: %w %q", ErrUnknownPanel, d.Root))
		}
	}
	for _, p := range d.Panels {
		errs = append(errs, validateTransition(p.Name, "open", p.Open))
		errs = append(errs, validateTransition(p.Name, "close", p.Close))
		for _, b := range p.Buttons {
			errs = append(errs, validateButton(p.Name, b, names))
		}
	}
	return errors.Join(errs...)
}

func validateTransition(panel, direction string, t TransitionDef) error {
	kind, err := menu.ParseTransitionKind(t.Kind)
	if err != nil {
		return fmt.Errorf("panel %s %s: %w", panel, direction, err)
	}
	d, err := t.duration()
	if err != nil {
		return fmt.Errorf("panel %s %s: %w", panel, direction, err)
	}
	if kind != menu.TransitionCustom {
		return nil
	}
	if strings.TrimSpace(t.Routine) == "" {
		return fmt.Errorf("panel %s %s: %w", panel, direction, menu.ErrMissingRoutine)
	}
	if _, err := anim.Lookup(t.Routine, d, nil); err != nil {
		return fmt.Errorf("panel %s %s: %w", panel, direction, err)
	}
	return nil
}

func validateButton(panel string, b ButtonDef, names map[string]struct{}) error {
	hasGoto := strings.TrimSpace(b.Goto) != ""
	hasAction := strings.TrimSpace(b.Action) != ""
	if hasGoto == hasAction {
		return fmt.Errorf("panel %s button %q: %w", panel, b.Label, ErrBadButton)
	}
	if hasAction {
		if _, ok := parseAction(b.Action); !ok {
			return fmt.Errorf("panel %s button %q: %w %q", panel, b.Label, ErrUnknownAction, b.Action)
		}
		return nil
	}
	if _, ok := names[b.Goto]; !ok {
		return fmt.Errorf("panel %s button %q: %w %q", panel, b.Label, ErrUnknownPanel, b.Goto)
	}
	if b.From != "" {
		if _, ok := names[b.From]; !ok {
			return fmt.Errorf("panel %s button %q from: %w %q", panel, b.Label, ErrUnknownPanel, b.From)
		}
	}
	return nil
}

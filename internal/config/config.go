package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/menuz/internal/app"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig         = "MENUZ_CONFIG"
	envScene          = "MENUZ_SCENE"
	envRootMenu       = "MENUZ_ROOT_MENU"
	envFPS            = "MENUZ_FPS"
	envReloadInterval = "MENUZ_RELOAD_INTERVAL"
	envWidth          = "MENUZ_WIDTH"
	envHeight         = "MENUZ_HEIGHT"
	envShowFooter     = "MENUZ_FOOTER"
	envVerbose        = "MENUZ_VERBOSE"
	envTrace          = "MENUZ_TRACE"
	envLogFile        = "MENUZ_LOG_FILE"
)

const (
	defaultFPS            = 30
	maxFPS                = 240
	defaultReloadInterval = time.Second
)

var (
	ErrInvalidFPS      = errors.New("fps out of range")
	ErrInvalidInterval = errors.New("reload interval must be >= 0")
	ErrSceneNotFound   = errors.New("scene file not found")
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// resolved as flags, then MENUZ_* variables, then the optional config file,
// then built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := envOrDefault(env, envConfig, "")
	if path, ok := scanFlag(args, "config"); ok {
		configPath = path
	}
	file, err := readFile(configPath)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("menuz", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a YAML or TOML config file")
	scene := fs.String("scene", envOrDefault(env, envScene, file.str("scene", "")), "path to a YAML or TOML scene file (built-in scene when empty)")
	rootMenu := fs.String("root-menu", envOrDefault(env, envRootMenu, file.str("root-menu", "")), "panel to open first instead of the scene root")
	fps := fs.Int("fps", envOrInt(env, envFPS, file.integer("fps", defaultFPS)), "frames per second for animations and transitions")
	reload := fs.Duration("reload-interval", envOrDuration(env, envReloadInterval, file.duration("reload-interval", defaultReloadInterval)), "scene file poll interval (0 disables reloading)")
	width := fs.Int("width", envOrInt(env, envWidth, file.integer("width", 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.integer("height", 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, file.boolean("footer", false)), "enable footer hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.boolean("trace", false)), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, file.boolean("verbose", false)), "show status messages for reloads and inspector commands")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.str("log-file", "")), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Scene:          *scene,
			RootMenu:       *rootMenu,
			FPS:            *fps,
			ReloadInterval: *reload,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			Verbose:        *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: configPath,
		Flags: map[string]string{
			"config":         configPath,
			"scene":          *scene,
			"rootMenu":       *rootMenu,
			"fps":            strconv.Itoa(*fps),
			"reloadInterval": reload.String(),
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"footer":         strconv.FormatBool(*footer),
			"trace":          strconv.FormatBool(*trace),
			"verbose":        strconv.FormatBool(*verbose),
			"logFile":        *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// fileLayer exposes config file values. A zero fileLayer has no values.
type fileLayer struct {
	v *viper.Viper
}

func readFile(path string) (fileLayer, error) {
	if strings.TrimSpace(path) == "" {
		return fileLayer{}, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fileLayer{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return fileLayer{v: v}, nil
}

func (f fileLayer) set(key string) bool {
	return f.v != nil && f.v.IsSet(key)
}

func (f fileLayer) str(key, fallback string) string {
	if !f.set(key) {
		return fallback
	}
	return f.v.GetString(key)
}

func (f fileLayer) integer(key string, fallback int) int {
	if !f.set(key) {
		return fallback
	}
	return f.v.GetInt(key)
}

func (f fileLayer) boolean(key string, fallback bool) bool {
	if !f.set(key) {
		return fallback
	}
	return f.v.GetBool(key)
}

func (f fileLayer) duration(key string, fallback time.Duration) time.Duration {
	if !f.set(key) {
		return fallback
	}
	return f.v.GetDuration(key)
}

// scanFlag finds the value of -name/--name ahead of the real parse, since
// the config file supplies defaults for every other flag.
func scanFlag(args []string, name string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg || len(arg)-len(trimmed) > 2 {
			continue
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1], true
		}
		if value, ok := strings.CutPrefix(trimmed, name+"="); ok {
			return value, true
		}
	}
	return "", false
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks ranges that flag parsing cannot express.
func Validate(cfg Config) error {
	if cfg.App.FPS < 1 || cfg.App.FPS > maxFPS {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidFPS, cfg.App.FPS, maxFPS)
	}
	if cfg.App.ReloadInterval < 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidInterval, cfg.App.ReloadInterval)
	}
	if cfg.App.Scene != "" {
		if _, err := os.Stat(cfg.App.Scene); err != nil {
			return fmt.Errorf("%w: %s", ErrSceneNotFound, cfg.App.Scene)
		}
	}
	return nil
}

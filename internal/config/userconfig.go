package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// configRelPath is the config file location relative to the XDG config dirs.
const configRelPath = "floatwm/config.toml"

// ErrInvalidConfig is returned when a config file fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Windows     WindowsConfig     `toml:"windows"`
	Terminal    TerminalConfig    `toml:"terminal"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Logging     LoggingConfig     `toml:"logging"`
	Keybindings KeybindingsConfig `toml:"keybindings"`

	warnings []ValidationIssue
}

// WindowsConfig holds the geometry defaults of the window store
type WindowsConfig struct {
	MinWidth      float64 `toml:"min_width"`      // Minimum window width in pixels (default: 320)
	MinHeight     float64 `toml:"min_height"`     // Minimum window height in pixels (default: 220)
	DefaultWidth  string  `toml:"default_width"`  // Width of auto-sized windows before content is measured: "720", "60%"
	DefaultHeight string  `toml:"default_height"` // Height of auto-sized windows before content is measured
	StartPosition string  `toml:"start_position"` // Anchor for windows without an explicit position (default: center)
}

// TerminalConfig maps terminal cells to store pixels
type TerminalConfig struct {
	CellWidth  float64 `toml:"cell_width"`  // Pixels per cell column (default: 8)
	CellHeight float64 `toml:"cell_height"` // Pixels per cell row (default: 16)
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle       string `toml:"border_style"`        // Border style: rounded, normal, thick, double, hidden, block, ascii
	DockbarPosition   string `toml:"dockbar_position"`    // Dockbar position: bottom, top, hidden
	HideWindowButtons bool   `toml:"hide_window_buttons"` // Hide window control buttons (minimize, maximize, close)
	ASCIIOnly         bool   `toml:"ascii_only"`          // Draw chrome with ASCII characters only
	Theme             string `toml:"theme"`               // bubbletint theme ID; empty uses the terminal palette
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error, fatal (default: warn)
	File  string `toml:"file"`  // Log file path (default: $XDG_STATE_HOME/floatwm/floatwm.log)
}

// KeybindingsConfig maps actions to key chords
type KeybindingsConfig struct {
	Global map[string][]string `toml:"global"` // Always active
	Window map[string][]string `toml:"window"` // Active for the focused window
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Windows: WindowsConfig{
			MinWidth:      wm.DefaultMinWidth,
			MinHeight:     wm.DefaultMinHeight,
			DefaultWidth:  fmt.Sprint(wm.DefaultWindowWidth),
			DefaultHeight: fmt.Sprint(wm.DefaultWindowHeight),
			StartPosition: string(wm.DefaultStartPosition),
		},
		Terminal: TerminalConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
		Appearance: AppearanceConfig{
			BorderStyle:     "rounded",
			DockbarPosition: "bottom",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Keybindings: KeybindingsConfig{
			Global: map[string][]string{
				ActionNewWindow:   {"n"},
				ActionOpenLog:     {"ctrl+l"},
				ActionOpenHelp:    {"?"},
				ActionNextWindow:  {"tab"},
				ActionPrevWindow:  {"shift+tab"},
				ActionRestoreAll:  {"ctrl+r"},
				ActionCloseAll:    {"ctrl+x"},
				ActionQuit:        {"q", "ctrl+c"},
				ActionCancelDrag:  {"esc"},
				ActionToggleDebug: {"ctrl+d"},
				ActionToggleTape:  {"p"},
			},
			Window: map[string][]string{
				ActionCloseWindow:    {"x", "ctrl+w"},
				ActionMinimizeWindow: {"m"},
				ActionToggleMaximize: {"f"},
				ActionMoveLeft:       {"left", "h"},
				ActionMoveRight:      {"right", "l"},
				ActionMoveUp:         {"up", "k"},
				ActionMoveDown:       {"down", "j"},
				ActionGrowWidth:      {"shift+right"},
				ActionShrinkWidth:    {"shift+left"},
				ActionGrowHeight:     {"shift+down"},
				ActionShrinkHeight:   {"shift+up"},
			},
		},
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Config doesn't exist, create default
		path, err := xdg.ConfigFile(configRelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		return WriteDefaultConfig(path)
	}
	return Load(configPath)
}

// Load reads, fills and validates the config file at path. Validation
// warnings are returned alongside the config; errors fail the load.
func Load(path string) (*UserConfig, error) {
	// #nosec G304 - reading a user-supplied config path is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data, fills defaults and validates it.
func Parse(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingWindows(&cfg, defaultCfg)
	fillMissingTerminal(&cfg, defaultCfg)
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingLogging(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		msgs := make([]string, 0, len(validation.Errors))
		for _, e := range validation.Errors {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %d error(s): %s", ErrInvalidConfig, len(validation.Errors), strings.Join(msgs, "; "))
	}
	cfg.warnings = validation.Warnings
	return &cfg, nil
}

// Warnings returns the non-fatal validation issues found while loading.
func (c *UserConfig) Warnings() []ValidationIssue {
	return c.warnings
}

// WriteDefaultConfig writes the default config with a commented header to
// path and returns it.
func WriteDefaultConfig(path string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(cfg, path)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

// Marshal renders cfg as TOML preceded by the documentation header.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# floatwm Configuration File\n")
	if path != "" {
		sb.WriteString("# Configuration location: " + path + "\n")
	}
	sb.WriteString("# For keybindings documentation, run: floatwm keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# WINDOW SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# min_width, min_height: Smallest window size in pixels. Ignored while the\n")
	sb.WriteString("#   desktop itself is smaller.\n")
	sb.WriteString("#\n")
	sb.WriteString("# default_width, default_height: Size of auto-sized windows before their\n")
	sb.WriteString("#   content is measured. A pixel number or a percentage such as \"60%\".\n")
	sb.WriteString("#\n")
	sb.WriteString("# start_position: Anchor for windows opened without a position\n")
	sb.WriteString("#   Options: topLeft, topCenter, topRight, centerLeft, center, centerRight,\n")
	sb.WriteString("#            bottomLeft, bottomCenter, bottomRight\n")
	sb.WriteString("#\n")
	sb.WriteString("# cell_width, cell_height: Pixels per terminal cell. Window geometry is kept\n")
	sb.WriteString("#   in pixels and drawn on the cell grid.\n")
	sb.WriteString("#\n")
	sb.WriteString("# border_style: Options: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("# dockbar_position: Options: bottom, top, hidden\n")
	sb.WriteString("# theme: A bubbletint theme ID, or one from the themes directory next to this\n")
	sb.WriteString("#   file. Empty uses the terminal's own colors.\n")
	sb.WriteString("# level: Options: debug, info, warn, error, fatal\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)
	return []byte(sb.String()), nil
}

func fillMissingWindows(cfg, defaultCfg *UserConfig) {
	if cfg.Windows.MinWidth == 0 {
		cfg.Windows.MinWidth = defaultCfg.Windows.MinWidth
	}
	if cfg.Windows.MinHeight == 0 {
		cfg.Windows.MinHeight = defaultCfg.Windows.MinHeight
	}
	if cfg.Windows.DefaultWidth == "" {
		cfg.Windows.DefaultWidth = defaultCfg.Windows.DefaultWidth
	}
	if cfg.Windows.DefaultHeight == "" {
		cfg.Windows.DefaultHeight = defaultCfg.Windows.DefaultHeight
	}
	if cfg.Windows.StartPosition == "" {
		cfg.Windows.StartPosition = defaultCfg.Windows.StartPosition
	}
}

func fillMissingTerminal(cfg, defaultCfg *UserConfig) {
	if cfg.Terminal.CellWidth == 0 {
		cfg.Terminal.CellWidth = defaultCfg.Terminal.CellWidth
	}
	if cfg.Terminal.CellHeight == 0 {
		cfg.Terminal.CellHeight = defaultCfg.Terminal.CellHeight
	}
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.DockbarPosition == "" {
		cfg.Appearance.DockbarPosition = defaultCfg.Appearance.DockbarPosition
	}
}

func fillMissingLogging(cfg, defaultCfg *UserConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Global == nil {
		cfg.Keybindings.Global = make(map[string][]string)
	}
	if cfg.Keybindings.Window == nil {
		cfg.Keybindings.Window = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings.Global, defaultCfg.Keybindings.Global)
	fillMapDefaults(cfg.Keybindings.Window, defaultCfg.Keybindings.Window)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// WMOptions converts the window settings into store options.
func (c *UserConfig) WMOptions() wm.Options {
	start, err := geom.ParseStartPosition(c.Windows.StartPosition)
	if err != nil {
		start = wm.DefaultStartPosition
	}
	return wm.Options{
		MinSize:       geom.Size{Width: c.Windows.MinWidth, Height: c.Windows.MinHeight},
		DefaultWidth:  geom.ParseMeasure(c.Windows.DefaultWidth),
		DefaultHeight: geom.ParseMeasure(c.Windows.DefaultHeight),
		StartPosition: start,
	}
}

// Package floatwm provides a floating window engine and a terminal desktop
// that can be embedded in other Bubble Tea applications or used headless.
//
// # Headless Store
//
// The window store keeps window geometry in pixels and can be driven
// without a terminal:
//
//	store := floatwm.NewStore(floatwm.StoreOptions{})
//	store.SetContainerSize(floatwm.Size{Width: 1280, Height: 800})
//	id := store.OpenWindow(floatwm.CreateParams{Title: "Inspector"})
//	store.SetWindowMaximized(id, true)
//
// # Desktop
//
// Create a desktop model with default options:
//
//	model := floatwm.New()
//	p := tea.NewProgram(model, floatwm.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model := floatwm.New(
//		floatwm.WithASCIIOnly(true),
//		floatwm.WithDockbarPosition("top"),
//		floatwm.WithSize(120, 40),
//	)
package floatwm

import (
	"context"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/input"
	"github.com/Gaurav-Gosain/floatwm/internal/registry"
	"github.com/Gaurav-Gosain/floatwm/internal/tape"
	"github.com/Gaurav-Gosain/floatwm/internal/theme"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// Model is the desktop model that implements tea.Model.
type Model = app.Desktop

// Window store types.
type (
	Store         = wm.Store
	StoreOptions  = wm.Options
	Window        = wm.Window
	Status        = wm.Status
	Permissions   = wm.Permissions
	InitialStatus = wm.InitialStatus
	CreateParams  = wm.CreateParams
	Patch         = wm.Patch
	Delta         = wm.Delta
	ContentSize   = wm.ContentSize
)

// Geometry types.
type (
	Size          = geom.Size
	Rect          = geom.Rect
	Measure       = geom.Measure
	StartPosition = geom.StartPosition
)

// Definition describes a window kind that can be opened by name.
type Definition = registry.Definition

// Measure constructors.
var (
	Px            = geom.Px
	Percent       = geom.Percent
	ParseMeasure  = geom.ParseMeasure
	ParseStart    = geom.ParseStartPosition
	NewStore      = wm.New
	NewTapeRunner = tape.NewCommandExecutor
)

// Options configures a desktop.
type Options struct {
	// ASCIIOnly draws window chrome with ASCII characters.
	ASCIIOnly bool

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// DockbarPosition sets where the dock appears.
	// Valid values: "bottom", "top", "hidden"
	DockbarPosition string

	// HideWindowButtons hides the minimize/maximize/close buttons.
	HideWindowButtons bool

	// Theme is a bubbletint theme ID. Empty keeps the terminal palette.
	Theme string

	// Width is the initial width in cells (set by the first resize if 0).
	Width int

	// Height is the initial height in cells (set by the first resize if 0).
	Height int

	// LogOutput receives desktop log lines in addition to the log window.
	LogOutput io.Writer

	// LogLevel is the desktop log level.
	LogLevel log.Level

	// UserConfig is a custom user configuration. If nil, defaults are used.
	UserConfig *config.UserConfig

	// Definitions are registered alongside the built-in windows.
	Definitions map[string]Definition
}

// Option is a functional option for configuring a desktop.
type Option func(*Options)

// WithASCIIOnly enables ASCII-only window chrome.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithDockbarPosition sets the dock position.
func WithDockbarPosition(position string) Option {
	return func(o *Options) {
		o.DockbarPosition = position
	}
}

// WithHideWindowButtons hides window control buttons.
func WithHideWindowButtons(hide bool) Option {
	return func(o *Options) {
		o.HideWindowButtons = hide
	}
}

// WithTheme selects a color theme by ID.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithSize sets the initial terminal size in cells.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithLogOutput sends desktop logs to w at level.
func WithLogOutput(w io.Writer, level log.Level) Option {
	return func(o *Options) {
		o.LogOutput = w
		o.LogLevel = level
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithDefinition registers an extra window kind under name.
func WithDefinition(name string, def Definition) Option {
	return func(o *Options) {
		if o.Definitions == nil {
			o.Definitions = make(map[string]Definition)
		}
		o.Definitions[name] = def
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{LogLevel: log.WarnLevel}
}

// New creates a desktop model with the given options. This is the main entry
// point for using floatwm as a library.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY reports a terminal size.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a desktop sized to pty.
func NewForPTY(pty PTY, opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	if options.ASCIIOnly {
		config.UseASCIIOnly = true
	}
	if options.BorderStyle != "" {
		config.BorderStyle = options.BorderStyle
	}
	if options.DockbarPosition != "" {
		config.DockbarPosition = options.DockbarPosition
	}
	if options.HideWindowButtons {
		config.HideWindowButtons = true
	}

	userConfig := options.UserConfig
	if userConfig == nil {
		userConfig = config.DefaultConfig()
	}

	d := app.New(app.Options{
		Config:    userConfig,
		LogOutput: options.LogOutput,
		LogLevel:  options.LogLevel,
	})
	if options.Theme != "" {
		if err := theme.Initialize(options.Theme, ""); err != nil {
			d.Log().Warn("theme", "err", err)
		}
	}
	for name, def := range options.Definitions {
		if err := d.Registry.Register(name, def); err != nil {
			d.Log().Error("register definition", "name", name, "err", err)
		}
	}
	input.RegisterShortcuts(d)

	if options.Width > 0 && options.Height > 0 {
		d.Resize(options.Width, options.Height)
	}
	return d
}

// RunTape parses and runs a tape against store. It stops at the first failed
// command or expectation.
func RunTape(ctx context.Context, store *Store, r io.Reader, logger *log.Logger) error {
	return tape.NewCommandExecutor(store, logger).RunReader(ctx, r)
}

// ProgramOptions returns recommended tea.ProgramOption values for running a
// desktop:
//
//	model := floatwm.New()
//	p := tea.NewProgram(model, floatwm.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer motion
// unless a window is being moved or resized.
//
// Usage:
//
//	p := tea.NewProgram(model, tea.WithFilter(floatwm.FilterMouseMotion))
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*Model)
	if !ok || d.Store.Interacting() {
		return msg
	}
	return nil
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// Load loads a configuration file from path.
	Load func(path string) (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	Load:           config.Load,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}

// Package app implements the floatwm desktop: a bubbletea model that draws
// the window store on the terminal grid and feeds pointer and keyboard input
// back into it.
package app

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/registry"
	"github.com/Gaurav-Gosain/floatwm/internal/shortcuts"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// DoubleClickInterval is the longest gap between two title bar clicks that
// still toggles maximize.
const DoubleClickInterval = 400 * time.Millisecond

// Desktop is the bubbletea model hosting one window store.
type Desktop struct {
	Store     *wm.Store
	Config    *config.UserConfig
	Shortcuts *shortcuts.Manager
	Registry  *registry.Registry
	Opener    *registry.Opener
	Logs      *LogRing
	log       *log.Logger

	// Terminal size in cells.
	Width  int
	Height int

	// Pointer position of the last press or motion, in cells.
	PointerX int
	PointerY int

	// Last title bar click, for double-click detection.
	lastClickID   string
	lastClickTime time.Time

	ShowDebug bool
	Quitting  bool

	// Tape is the tape being played, if any.
	Tape *TapePlayer

	noteCount int

	// OnOpen runs after a window is opened through the desktop.
	OnOpen func(id string)

	// pending is returned from the current Update.
	pending tea.Cmd
}

// Options configure New.
type Options struct {
	Config *config.UserConfig
	// LogOutput receives log lines in addition to the log ring.
	LogOutput io.Writer
	LogLevel  log.Level
}

// New creates a desktop with the built-in window definitions registered.
func New(opts Options) *Desktop {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ring := NewLogRing(config.LogRingSize)
	var out io.Writer = ring
	if opts.LogOutput != nil {
		out = io.MultiWriter(ring, opts.LogOutput)
	}
	logger := config.NewWriterLogger(out, opts.LogLevel)

	wmOpts := cfg.WMOptions()
	wmOpts.Logger = logger

	d := &Desktop{
		Store:    wm.New(wmOpts),
		Config:   cfg,
		Registry: registry.New(),
		Logs:     ring,
		log:      logger.WithPrefix("desktop"),
	}
	d.Shortcuts = shortcuts.NewManager(d.Store, logger)
	d.Opener = registry.NewOpener(d.Registry, d.Store, logger)
	registerDefinitions(d)
	return d
}

// Log returns the desktop logger.
func (d *Desktop) Log() *log.Logger { return d.log }

// CellSize returns the pixel size of one terminal cell.
func (d *Desktop) CellSize() (w, h float64) {
	return d.Config.Terminal.CellWidth, d.Config.Terminal.CellHeight
}

// DockVisible reports whether a dock row is reserved.
func (d *Desktop) DockVisible() bool {
	return config.DockbarPosition != "hidden"
}

// GetTopMargin returns the first row available to windows.
func (d *Desktop) GetTopMargin() int {
	if config.DockbarPosition == "top" {
		return 1
	}
	return 0
}

// GetUsableHeight returns the rows available to windows.
func (d *Desktop) GetUsableHeight() int {
	if d.DockVisible() {
		return max(d.Height-1, 0)
	}
	return max(d.Height, 0)
}

// GetDockRow returns the row the dock is drawn on.
func (d *Desktop) GetDockRow() int {
	if config.DockbarPosition == "top" {
		return 0
	}
	return max(d.Height-1, 0)
}

// Resize records a new terminal size and passes the usable area to the store.
func (d *Desktop) Resize(width, height int) {
	d.Width, d.Height = width, height
	cw, ch := d.CellSize()
	d.Store.SetContainerSize(geom.Size{
		Width:  float64(width) * cw,
		Height: float64(d.GetUsableHeight()) * ch,
	})
}

// CellRect is a window rectangle on the terminal grid.
type CellRect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CellRectOf converts a window's pixel geometry to cells, clipped to the
// window area of the screen.
func (d *Desktop) CellRectOf(w wm.Window) CellRect {
	cw, ch := d.CellSize()
	r := CellRect{
		X: int(math.Round(w.Status.Left / cw)),
		Y: int(math.Round(w.Status.Top/ch)) + d.GetTopMargin(),
		W: int(math.Round(w.Status.Width / cw)),
		H: int(math.Round(w.Status.Height / ch)),
	}
	r.W = max(min(r.W, d.Width-r.X), 0)
	r.H = max(min(r.H, d.GetTopMargin()+d.GetUsableHeight()-r.Y), 0)
	return r
}

// DrawOrder returns the visible windows from bottom to top: collection
// order, then the focused window, then overlays.
func (d *Desktop) DrawOrder() []wm.Window {
	var base, focused, overlays []wm.Window
	for _, w := range d.Store.Windows() {
		switch {
		case !w.Visible():
		case w.Permissions.Overlay:
			overlays = append(overlays, w)
		case w.Status.IsFocused:
			focused = append(focused, w)
		default:
			base = append(base, w)
		}
	}
	return slices.Concat(base, focused, overlays)
}

// WindowAt returns the topmost visible window under the cell (x, y).
func (d *Desktop) WindowAt(x, y int) (wm.Window, CellRect, bool) {
	order := d.DrawOrder()
	for i := len(order) - 1; i >= 0; i-- {
		r := d.CellRectOf(order[i])
		if r.Contains(x, y) {
			return order[i], r, true
		}
	}
	return wm.Window{}, CellRect{}, false
}

// Open opens a registered component and runs OnOpen for it.
func (d *Desktop) Open(component string, props map[string]any) (string, bool) {
	id, ok := d.Opener.Open(component, props)
	if ok && d.OnOpen != nil {
		d.OnOpen(id)
	}
	return id, ok
}

// NewNote opens a numbered note window.
func (d *Desktop) NewNote() string {
	d.noteCount++
	id, ok := d.Open(ComponentNote, map[string]any{"n": d.noteCount})
	if ok {
		d.Store.UpdateWindow(id, wm.Patch{Title: wm.Ptr(fmt.Sprintf("Note %d", d.noteCount))})
	}
	return id
}

// Close closes a window and drops its shortcuts.
func (d *Desktop) Close(id string) {
	d.Store.CloseWindow(id)
	d.Shortcuts.ClearOwner(id)
}

// CloseAll closes every window.
func (d *Desktop) CloseAll() {
	for _, w := range d.Store.Windows() {
		d.Shortcuts.ClearOwner(w.ID)
	}
	d.Store.ClearWindows()
}

// ToggleMaximize maximizes or restores a window.
func (d *Desktop) ToggleMaximize(id string) {
	w, ok := d.Store.Window(id)
	if !ok {
		return
	}
	d.Store.SetWindowMaximized(id, !w.Status.IsMaximized)
}

// RestoreAll un-minimizes every minimized window.
func (d *Desktop) RestoreAll() {
	for _, w := range d.Store.Windows() {
		if w.Status.IsMinimized {
			d.Store.SetWindowMinimized(w.ID, false)
		}
	}
}

// CycleFocus focuses the next (or previous) visible window in collection
// order.
func (d *Desktop) CycleFocus(forward bool) {
	var visible []string
	for _, w := range d.Store.Windows() {
		if w.Visible() {
			visible = append(visible, w.ID)
		}
	}
	if len(visible) == 0 {
		return
	}
	i := slices.Index(visible, d.Store.FocusedID())
	switch {
	case i < 0:
		i = len(visible) - 1
	case forward:
		i = (i + 1) % len(visible)
	default:
		i = (i - 1 + len(visible)) % len(visible)
	}
	d.Store.FocusWindow(visible[i])
}

// Nudge moves (or, with resize, grows) a window by whole cells through the
// same drag commands the pointer uses.
func (d *Desktop) Nudge(id string, dx, dy int, resize bool) {
	cw, ch := d.CellSize()
	if resize {
		d.Store.SetWindowResizing(id, true)
	} else {
		d.Store.SetWindowMoving(id, true)
	}
	d.Store.MouseCapture(wm.Delta{MovementX: float64(dx) * cw, MovementY: float64(dy) * ch})
	d.Store.RemoveMovingResizing()
}

// registerClick records a title bar click and reports whether it completes a
// double click.
func (d *Desktop) registerClick(id string, now time.Time) bool {
	double := d.lastClickID == id && now.Sub(d.lastClickTime) <= DoubleClickInterval
	if double {
		d.lastClickID = ""
		return true
	}
	d.lastClickID, d.lastClickTime = id, now
	return false
}

// RegisterClick is registerClick at the current time.
func (d *Desktop) RegisterClick(id string) bool {
	return d.registerClick(id, time.Now())
}

// Defer queues cmd to be returned from the current Update. Shortcut
// handlers use it.
func (d *Desktop) Defer(cmd tea.Cmd) {
	d.pending = tea.Batch(d.pending, cmd)
}

func (d *Desktop) takePending() tea.Cmd {
	cmd := d.pending
	d.pending = nil
	return cmd
}

// Quit marks the desktop as quitting and returns the quit command.
func (d *Desktop) Quit() tea.Cmd {
	d.Quitting = true
	return tea.Quit
}

// LogRing keeps the last lines written to it. It is safe for concurrent
// writers.
type LogRing struct {
	mu    sync.Mutex
	lines []string
	size  int
}

// NewLogRing returns a ring holding up to size lines.
func NewLogRing(size int) *LogRing {
	return &LogRing{size: max(size, 1)}
}

func (r *LogRing) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for line := range strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n") {
		r.lines = append(r.lines, line)
	}
	if over := len(r.lines) - r.size; over > 0 {
		r.lines = slices.Delete(r.lines, 0, over)
	}
	return len(p), nil
}

// Lines returns a copy of the buffered lines, oldest first.
func (r *LogRing) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.lines)
}

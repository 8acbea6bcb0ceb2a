// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"charm.land/lipgloss/v2"
)

// =============================================================================
// Terminal Geometry
// =============================================================================

const (
	// DefaultCellWidth is the number of store pixels per terminal column
	DefaultCellWidth = 8

	// DefaultCellHeight is the number of store pixels per terminal row
	DefaultCellHeight = 16

	// LogRingSize is the number of recent log lines kept for the log window
	LogRingSize = 200
)

// =============================================================================
// Actions
// =============================================================================

// Global actions are always bound.
const (
	ActionNewWindow   = "new_window"
	ActionOpenLog     = "open_log"
	ActionOpenHelp    = "open_help"
	ActionNextWindow  = "next_window"
	ActionPrevWindow  = "prev_window"
	ActionRestoreAll  = "restore_all"
	ActionCloseAll    = "close_all"
	ActionQuit        = "quit"
	ActionCancelDrag  = "cancel_drag"
	ActionToggleDebug = "toggle_debug"
	ActionToggleTape  = "toggle_tape"
)

// Window actions apply to the focused window.
const (
	ActionCloseWindow    = "close_window"
	ActionMinimizeWindow = "minimize_window"
	ActionToggleMaximize = "toggle_maximize"
	ActionMoveLeft       = "move_left"
	ActionMoveRight      = "move_right"
	ActionMoveUp         = "move_up"
	ActionMoveDown       = "move_down"
	ActionGrowWidth      = "grow_width"
	ActionShrinkWidth    = "shrink_width"
	ActionGrowHeight     = "grow_height"
	ActionShrinkHeight   = "shrink_height"
)

// ActionDescriptions are shown in help listings.
var ActionDescriptions = map[string]string{
	ActionNewWindow:      "Open a new note window",
	ActionOpenLog:        "Open the log window",
	ActionOpenHelp:       "Open the help window",
	ActionNextWindow:     "Focus next window",
	ActionPrevWindow:     "Focus previous window",
	ActionRestoreAll:     "Restore all minimized windows",
	ActionCloseAll:       "Close all windows",
	ActionQuit:           "Quit",
	ActionCancelDrag:     "Cancel move or resize",
	ActionToggleDebug:    "Toggle geometry overlay",
	ActionToggleTape:     "Pause or resume tape playback",
	ActionCloseWindow:    "Close window",
	ActionMinimizeWindow: "Minimize window",
	ActionToggleMaximize: "Maximize or restore window",
	ActionMoveLeft:       "Move window left",
	ActionMoveRight:      "Move window right",
	ActionMoveUp:         "Move window up",
	ActionMoveDown:       "Move window down",
	ActionGrowWidth:      "Grow window width",
	ActionShrinkWidth:    "Shrink window width",
	ActionGrowHeight:     "Grow window height",
	ActionShrinkHeight:   "Shrink window height",
}

// GlobalActions lists the global actions in display order.
func GlobalActions() []string {
	return []string{
		ActionNewWindow, ActionOpenLog, ActionOpenHelp, ActionNextWindow,
		ActionPrevWindow, ActionRestoreAll, ActionCloseAll, ActionCancelDrag,
		ActionToggleDebug, ActionToggleTape, ActionQuit,
	}
}

// WindowActions lists the window actions in display order.
func WindowActions() []string {
	return []string{
		ActionCloseWindow, ActionMinimizeWindow, ActionToggleMaximize,
		ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionGrowWidth, ActionShrinkWidth, ActionGrowHeight, ActionShrinkHeight,
	}
}

// =============================================================================
// Runtime Settings (set by ApplyOverrides)
// =============================================================================

// UseASCIIOnly draws chrome without box-drawing characters
var UseASCIIOnly = false

// BorderStyle is the window border style name
var BorderStyle = "rounded"

// DockbarPosition is where minimized windows are listed: bottom, top, hidden
var DockbarPosition = "bottom"

// HideWindowButtons hides the title bar buttons
var HideWindowButtons = false

// =============================================================================
// Window Decoration Characters
// =============================================================================

const (
	WindowButtonClose    = "✕"
	WindowButtonMaximize = "□"
	WindowButtonRestore  = "❐"
	WindowButtonMinimize = "_"
	WindowResizeGrip     = "◢"

	WindowButtonCloseASCII    = "x"
	WindowButtonMaximizeASCII = "+"
	WindowButtonRestoreASCII  = "="
	WindowButtonMinimizeASCII = "_"
	WindowResizeGripASCII     = "/"
)

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func pick(unicode, ascii string) string {
	if UseASCIIOnly {
		return ascii
	}
	return unicode
}

// GetWindowButtonClose returns the close button glyph
func GetWindowButtonClose() string { return pick(WindowButtonClose, WindowButtonCloseASCII) }

// GetWindowButtonMaximize returns the maximize button glyph, or the restore
// glyph for a maximized window
func GetWindowButtonMaximize(maximized bool) string {
	if maximized {
		return pick(WindowButtonRestore, WindowButtonRestoreASCII)
	}
	return pick(WindowButtonMaximize, WindowButtonMaximizeASCII)
}

// GetWindowButtonMinimize returns the minimize button glyph
func GetWindowButtonMinimize() string { return pick(WindowButtonMinimize, WindowButtonMinimizeASCII) }

// GetWindowResizeGrip returns the bottom-right resize handle glyph
func GetWindowResizeGrip() string { return pick(WindowResizeGrip, WindowResizeGripASCII) }

// Package input routes terminal key presses and mouse events to the floatwm
// desktop.
//
// Keys go through the desktop's shortcut manager. The pointer drives window
// focus, title bar buttons, the dock, and drag and resize gestures.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
)

// HandleInput is the main input coordinator that routes messages to the
// keyboard and mouse handlers.
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	default:
		return d, nil
	}
}

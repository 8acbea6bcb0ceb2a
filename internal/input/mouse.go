package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	X, Y := mouse.X, mouse.Y
	d.PointerX, d.PointerY = X, Y

	if mouse.Button != tea.MouseLeft {
		return d, nil
	}

	if d.DockVisible() && Y == d.GetDockRow() {
		handleDockClick(d, X)
		return d, nil
	}

	w, r, ok := d.WindowAt(X, Y)
	if !ok {
		return d, nil
	}
	d.Store.FocusWindow(w.ID)

	switch {
	case Y == r.Y:
		handleTitleBarClick(d, w, r, X)
	case app.OnResizeGrip(w, r, X, Y):
		d.Store.SetWindowResizing(w.ID, true)
	}
	return d, nil
}

// handleDockClick restores the minimized window under column x.
func handleDockClick(d *app.Desktop, x int) {
	for _, item := range app.DockItems(d.Store.Windows(), d.Width) {
		if x >= item.X0 && x < item.X1 {
			d.Store.SetWindowMinimized(item.ID, false)
			return
		}
	}
}

// handleTitleBarClick presses a title bar button, toggles maximize on a
// double click, or starts a drag.
func handleTitleBarClick(d *app.Desktop, w wm.Window, r app.CellRect, x int) {
	rel := x - r.X
	for _, b := range app.TitleButtons(w, r.W) {
		if rel < b.X0 || rel >= b.X1 {
			continue
		}
		switch b.Kind {
		case app.ButtonMinimize:
			d.Store.SetWindowMinimized(w.ID, true)
		case app.ButtonMaximize:
			d.ToggleMaximize(w.ID)
		case app.ButtonClose:
			d.Close(w.ID)
		}
		return
	}

	if d.RegisterClick(w.ID) {
		d.ToggleMaximize(w.ID)
		return
	}
	d.Store.SetWindowMoving(w.ID, true)
}

// handleMouseMotion feeds the pointer delta to the active drag or resize.
func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	if d.Store.Interacting() {
		cw, ch := d.CellSize()
		d.Store.MouseCapture(wm.Delta{
			MovementX: float64(mouse.X-d.PointerX) * cw,
			MovementY: float64(mouse.Y-d.PointerY) * ch,
		})
	}
	d.PointerX, d.PointerY = mouse.X, mouse.Y
	return d, nil
}

func handleMouseRelease(msg tea.MouseReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	d.PointerX, d.PointerY = mouse.X, mouse.Y
	d.Store.RemoveMovingResizing()
	return d, nil
}

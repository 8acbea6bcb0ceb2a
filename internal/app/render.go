package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// GetCanvas composes the desktop: windows in draw order, the dock, and the
// geometry overlay when enabled.
func (d *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(d.Width, d.Height)

	order := d.DrawOrder()
	for z, w := range order {
		r := d.CellRectOf(w)
		content := renderWindow(w, r)
		if content == "" {
			continue
		}
		canvas.Compose(lipgloss.NewLayer(content).X(r.X).Y(r.Y).Z(z + 1).ID(w.ID))
	}

	if d.DockVisible() && d.Height > 0 {
		dock := renderDock(d.Store.Windows(), d.Width, d.tapeStatus())
		canvas.Compose(lipgloss.NewLayer(dock).X(0).Y(d.GetDockRow()).Z(len(order) + 1).ID("dock"))
	}

	if d.ShowDebug {
		if w, ok := d.Store.Window(d.Store.FocusedID()); ok {
			line := debugLine(w)
			x := max(d.Width-ansi.StringWidth(line), 0)
			canvas.Compose(lipgloss.NewLayer(lipgloss.NewStyle().Reverse(true).Render(line)).
				X(x).Y(d.GetTopMargin()).Z(len(order) + 2).ID("debug"))
		}
	}
	return canvas
}

// View renders the desktop.
func (d *Desktop) View() tea.View {
	var view tea.View
	if d.Quitting {
		return view
	}
	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

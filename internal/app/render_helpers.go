package app

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/theme"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

func getBorder() lipgloss.Border {
	return config.GetBorderForStyle()
}

// ButtonKind identifies a title bar button.
type ButtonKind int

const (
	ButtonMinimize ButtonKind = iota
	ButtonMaximize
	ButtonClose
)

// buttonWidth is the cell width of one title bar button, glyph plus padding.
const buttonWidth = 3

// TitleButton is a button's column span relative to the window's left edge,
// X0 inclusive and X1 exclusive.
type TitleButton struct {
	Kind   ButtonKind
	X0, X1 int
}

// TitleButtons lays out the buttons a window shows on a title bar of the
// given width. Buttons are packed against the right corner in the order
// minimize, maximize, close; windows without a title bar, or too narrow to
// fit the buttons and a corner on each side, show none.
func TitleButtons(w wm.Window, width int) []TitleButton {
	if config.HideWindowButtons || !w.Permissions.TitleBar {
		return nil
	}
	var kinds []ButtonKind
	if w.Permissions.Minimizable {
		kinds = append(kinds, ButtonMinimize)
	}
	if w.Permissions.Maximizable {
		kinds = append(kinds, ButtonMaximize)
	}
	if w.Permissions.Closeable {
		kinds = append(kinds, ButtonClose)
	}
	if len(kinds) == 0 || len(kinds)*buttonWidth > width-2 {
		return nil
	}
	x := width - 1 - len(kinds)*buttonWidth
	buttons := make([]TitleButton, len(kinds))
	for i, k := range kinds {
		buttons[i] = TitleButton{Kind: k, X0: x, X1: x + buttonWidth}
		x += buttonWidth
	}
	return buttons
}

func buttonGlyph(k ButtonKind, maximized bool) string {
	switch k {
	case ButtonMinimize:
		return config.GetWindowButtonMinimize()
	case ButtonMaximize:
		return config.GetWindowButtonMaximize(maximized)
	default:
		return config.GetWindowButtonClose()
	}
}

// OnResizeGrip reports whether the window-relative cell (x, y) is the
// bottom-right resize handle of a resizable window.
func OnResizeGrip(w wm.Window, r CellRect, x, y int) bool {
	return w.Permissions.Resizable && !w.Status.IsMaximized &&
		x == r.X+r.W-1 && y == r.Y+r.H-1
}

// fitWidth truncates s to width cells and pads it with fill.
func fitWidth(s string, width int, fill string) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 && fill != "" {
		s += strings.Repeat(fill, pad/max(ansi.StringWidth(fill), 1))
	}
	return s
}

func windowColor(w wm.Window) color.Color {
	switch {
	case w.Status.IsMoving || w.Status.IsResizing:
		return theme.BorderInteracting()
	case w.Permissions.Overlay:
		return theme.BorderOverlay()
	case w.Status.IsFocused:
		return theme.BorderFocused()
	default:
		return theme.BorderUnfocused()
	}
}

// renderTitleBar draws the top border: corner, title, filler, buttons,
// corner.
func renderTitleBar(w wm.Window, width int, c color.Color) string {
	border := getBorder()
	borderStyle := lipgloss.NewStyle().Foreground(c)
	inner := width - 2
	if !w.Permissions.TitleBar {
		return borderStyle.Render(border.TopLeft + fitWidth("", inner, border.Top) + border.TopRight)
	}

	buttons := TitleButtons(w, width)
	var buttonStr string
	buttonStyle := lipgloss.NewStyle().Foreground(theme.ButtonFg()).Background(c)
	for _, b := range buttons {
		buttonStr += buttonStyle.Render(fitWidth(" "+buttonGlyph(b.Kind, w.Status.IsMaximized), buttonWidth, " "))
	}

	titleSpace := inner - len(buttons)*buttonWidth
	title := ""
	if w.Title != "" && titleSpace > 2 {
		title = fitWidth(" "+w.Title+" ", min(ansi.StringWidth(w.Title)+2, titleSpace), "")
	}
	titleStyle := lipgloss.NewStyle().Foreground(c)
	if w.Status.IsFocused {
		titleStyle = titleStyle.Bold(true)
	}

	filler := fitWidth("", titleSpace-ansi.StringWidth(title), border.Top)
	return borderStyle.Render(border.TopLeft) +
		titleStyle.Render(title) +
		borderStyle.Render(filler) +
		buttonStr +
		borderStyle.Render(border.TopRight)
}

// renderWindow draws a window frame of r's size around its content.
func renderWindow(w wm.Window, r CellRect) string {
	if r.W < 2 || r.H < 2 {
		return ""
	}
	c := windowColor(w)
	border := getBorder()
	borderStyle := lipgloss.NewStyle().Foreground(c)

	inner := r.W - 2
	body := make([]string, 0, r.H)
	body = append(body, renderTitleBar(w, r.W, c))

	var content []string
	if cnt, ok := w.Content.(Content); ok && r.H > 2 {
		content = strings.Split(cnt.View(inner, r.H-2), "\n")
	}
	for i := range r.H - 2 {
		line := ""
		if i < len(content) {
			line = content[i]
		}
		body = append(body, borderStyle.Render(border.Left)+fitWidth(line, inner, " ")+borderStyle.Render(border.Right))
	}

	corner := border.BottomRight
	if w.Permissions.Resizable && !w.Status.IsMaximized {
		corner = config.GetWindowResizeGrip()
	}
	body = append(body, borderStyle.Render(border.BottomLeft+fitWidth("", inner, border.Bottom)+corner))
	return strings.Join(body, "\n")
}

// DockItem is one minimized window in the dock, spanning columns [X0, X1).
type DockItem struct {
	ID     string
	Label  string
	X0, X1 int
}

// DockItems lays out minimized windows left to right, dropping those that do
// not fit in width.
func DockItems(windows []wm.Window, width int) []DockItem {
	var items []DockItem
	x := 1
	for _, w := range windows {
		if !w.Status.IsMinimized {
			continue
		}
		title := w.Title
		if title == "" {
			title = w.ID
		}
		label := "[" + fitWidth(title, 16, "") + "]"
		lw := ansi.StringWidth(label)
		if x+lw > width {
			break
		}
		items = append(items, DockItem{ID: w.ID, Label: label, X0: x, X1: x + lw})
		x += lw + 1
	}
	return items
}

// renderDock draws the dock row, with status on the right.
func renderDock(windows []wm.Window, width int, status string) string {
	items := DockItems(windows, width)
	var sb strings.Builder
	x := 0
	for _, it := range items {
		sb.WriteString(strings.Repeat(" ", it.X0-x))
		sb.WriteString(it.Label)
		x = it.X1
	}
	hint := fmt.Sprintf("%s%d windows  ? help ", status, len(windows))
	if pad := width - x - ansi.StringWidth(hint); pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(hint)
	}
	return lipgloss.NewStyle().Foreground(theme.Dock()).Render(fitWidth(sb.String(), width, " "))
}

// debugLine describes a window's geometry in pixels.
func debugLine(w wm.Window) string {
	st := w.Status
	flags := ""
	if w.ManualPosition {
		flags += " manual-pos"
	}
	if w.ManualSize {
		flags += " manual-size"
	}
	if w.AutoSize.Width || w.AutoSize.Height {
		flags += " auto"
	}
	return fmt.Sprintf(" %s %.0f,%.0f %.0fx%.0f%s ", w.ID, st.Left, st.Top, st.Width, st.Height, flags)
}

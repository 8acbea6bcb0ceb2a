package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/registry"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// Component names of the built-in window definitions.
const (
	ComponentWelcome = "welcome"
	ComponentNote    = "note"
	ComponentHelp    = "help"
	ComponentLog     = "log"
)

// Content is what a window draws inside its frame.
type Content interface {
	// Measure returns the natural content size in cells.
	Measure() (cols, rows int)
	// View renders exactly rows lines of at most cols cells.
	View(cols, rows int) string
}

// TextContent is static text.
type TextContent struct {
	Lines []string
}

// NewTextContent splits s into lines.
func NewTextContent(s string) *TextContent {
	return &TextContent{Lines: strings.Split(strings.TrimRight(s, "\n"), "\n")}
}

// Measure returns the widest line and the line count.
func (c *TextContent) Measure() (int, int) {
	return measureLines(c.Lines)
}

// View clips the text to the box.
func (c *TextContent) View(cols, rows int) string {
	return fitLines(c.Lines, cols, rows)
}

// LogContent shows the tail of a log ring.
type LogContent struct {
	Ring *LogRing
	// MaxRows caps the measured height so a busy log does not grow the
	// window to the whole desktop.
	MaxRows int
	MaxCols int
}

// Measure reports the visible tail, capped.
func (c *LogContent) Measure() (int, int) {
	lines := c.Ring.Lines()
	cols, rows := measureLines(lines)
	return min(max(cols, 20), c.MaxCols), min(max(rows, 1), c.MaxRows)
}

// View renders the newest lines that fit.
func (c *LogContent) View(cols, rows int) string {
	lines := c.Ring.Lines()
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	return fitLines(lines, cols, rows)
}

func measureLines(lines []string) (cols, rows int) {
	for _, l := range lines {
		cols = max(cols, ansi.StringWidth(l))
	}
	return cols, len(lines)
}

// fitLines pads or truncates lines to a cols x rows block.
func fitLines(lines []string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	out := make([]string, rows)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if ansi.StringWidth(line) > cols {
			line = ansi.Truncate(line, cols, "…")
		}
		out[i] = line + strings.Repeat(" ", max(cols-ansi.StringWidth(line), 0))
	}
	return strings.Join(out, "\n")
}

// helpText renders the keybinding sections as plain text.
func helpText(cfg *config.UserConfig) string {
	var sb strings.Builder
	for i, section := range config.GetKeybindings(cfg) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(section.Title + "\n")
		keyWidth := 0
		for _, b := range section.Bindings {
			keyWidth = max(keyWidth, ansi.StringWidth(b.Key))
		}
		for _, b := range section.Bindings {
			pad := strings.Repeat(" ", keyWidth-ansi.StringWidth(b.Key))
			fmt.Fprintf(&sb, "  %s%s  %s\n", b.Key, pad, b.Description)
		}
	}
	return sb.String()
}

const welcomeText = `Welcome to floatwm.

Drag a title bar to move a window and the
corner grip to resize it. Double-click a
title to maximize.

Press n for a note, ? for help, q to quit.`

func registerDefinitions(d *Desktop) {
	defs := map[string]registry.Definition{
		ComponentWelcome: {
			Title:   registry.Literal("Welcome"),
			Options: registry.WindowOptions{Unique: true, Resizable: wm.Ptr(false)},
			Content: func(string, map[string]any) any { return NewTextContent(welcomeText) },
		},
		ComponentNote: {
			Title: registry.Literal("Note"),
			InitialStatus: registry.Resolver(func(viewport geom.Size) wm.InitialStatus {
				// Small desktops get a fixed share instead of the default size.
				if viewport.Known() && viewport.Width < wm.DefaultWindowWidth {
					return wm.InitialStatus{Width: geom.Text("80%"), Height: geom.Text("60%")}
				}
				return wm.InitialStatus{}
			}),
			Content: func(id string, props map[string]any) any {
				n, _ := props["n"].(int)
				return NewTextContent(fmt.Sprintf("Note %d\n\nid: %s", n, id))
			},
		},
		ComponentHelp: {
			Title: registry.Literal("Keybindings"),
			Options: registry.WindowOptions{
				Unique:      true,
				Maximizable: wm.Ptr(false),
			},
			InitialStatus: registry.Literal(wm.InitialStatus{
				StartPosition: geom.TopRight,
				AnchorLocked:  true,
			}),
			Content: func(string, map[string]any) any { return NewTextContent(helpText(d.Config)) },
		},
		ComponentLog: {
			Title:   registry.Literal("Log"),
			Options: registry.WindowOptions{Unique: true},
			InitialStatus: registry.Literal(wm.InitialStatus{
				Width:         geom.Text("60%"),
				StartPosition: geom.BottomLeft,
				AnchorLocked:  true,
			}),
			Content: func(string, map[string]any) any {
				return &LogContent{Ring: d.Logs, MaxRows: 12, MaxCols: 120}
			},
		},
	}
	for _, name := range []string{ComponentWelcome, ComponentNote, ComponentHelp, ComponentLog} {
		if err := d.Registry.Register(name, defs[name]); err != nil {
			d.log.Error("register definition", "name", name, "err", err)
		}
	}
}

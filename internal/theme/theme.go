// Package theme colors the desktop chrome from bubbletint themes.
//
// Theming is off until Initialize is called with a theme name; until then
// every color falls back to the terminal's own 16-color palette.
package theme

import (
	"errors"
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

// ErrUnknownTheme is returned by Initialize when no built-in or custom theme
// has the requested ID.
var ErrUnknownTheme = errors.New("unknown theme")

var enabled bool

// Initialize selects the theme with the given ID. Custom themes from
// themesDir are registered first; an empty themesDir skips them. An empty
// name disables theming. An unknown name selects the default theme and
// returns ErrUnknownTheme; broken custom theme files are reported the same
// way, joined, without stopping the others from loading.
func Initialize(themeName, themesDir string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	var errs []error
	if themesDir != "" {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			errs = append(errs, err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownTheme, themeName))
	}
	return errors.Join(errs...)
}

// Disable turns theming off.
func Disable() {
	enabled = false
}

// IsEnabled reports whether a theme is active.
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil when theming is off.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Available resets the registry, loads the custom themes in themesDir and
// returns every theme ID along with the custom ones. It clears the active
// theme, so call it before Initialize, not after.
func Available(themesDir string) (all, custom []string, err error) {
	enabled = false
	tint.NewDefaultRegistry()
	if themesDir != "" {
		custom, err = LoadCustomThemes(themesDir)
	}
	return tint.TintIDs(), custom, err
}

func pick(fallback string, f func(t *tint.Tint) *tint.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	if c := f(t); c != nil {
		return c
	}
	return lipgloss.Color(fallback)
}

// BorderFocused is the border of the focused window.
func BorderFocused() color.Color {
	return pick("12", func(t *tint.Tint) *tint.Color { return t.BrightBlue })
}

// BorderUnfocused is the border of every other window.
func BorderUnfocused() color.Color {
	return pick("8", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// BorderOverlay is the border of overlay windows such as help.
func BorderOverlay() color.Color {
	return pick("13", func(t *tint.Tint) *tint.Color { return t.BrightPurple })
}

// BorderInteracting is the border of a window being dragged or resized.
func BorderInteracting() color.Color {
	return pick("11", func(t *tint.Tint) *tint.Color { return t.BrightYellow })
}

// Dock is the foreground of the dock row.
func Dock() color.Color {
	return pick("7", func(t *tint.Tint) *tint.Color { return t.White })
}

// ButtonFg is the glyph color of title bar buttons.
func ButtonFg() color.Color {
	return pick("#000000", func(t *tint.Tint) *tint.Color { return t.Black })
}

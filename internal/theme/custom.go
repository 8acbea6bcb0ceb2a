package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
)

// ErrNoChromeColors is returned for a theme file that sets none of the
// colors the desktop draws with.
var ErrNoChromeColors = errors.New("theme sets no chrome colors")

// chromeSlot is one palette entry the desktop reads. A missing bright
// entry borrows its normal counterpart, then the xterm value.
type chromeSlot struct {
	bright   func(t *tint.Tint) **tint.Color
	normal   func(t *tint.Tint) **tint.Color
	fallback string
}

var chromeSlots = []chromeSlot{
	// focused border
	{func(t *tint.Tint) **tint.Color { return &t.BrightBlue }, func(t *tint.Tint) **tint.Color { return &t.Blue }, "#5c5cff"},
	// unfocused border
	{func(t *tint.Tint) **tint.Color { return &t.BrightBlack }, func(t *tint.Tint) **tint.Color { return &t.Black }, "#7f7f7f"},
	// overlay border
	{func(t *tint.Tint) **tint.Color { return &t.BrightPurple }, func(t *tint.Tint) **tint.Color { return &t.Purple }, "#ff00ff"},
	// drag and resize border
	{func(t *tint.Tint) **tint.Color { return &t.BrightYellow }, func(t *tint.Tint) **tint.Color { return &t.Yellow }, "#ffff00"},
	// dock
	{func(t *tint.Tint) **tint.Color { return &t.White }, func(t *tint.Tint) **tint.Color { return &t.Fg }, "#e5e5e5"},
	// button glyphs
	{func(t *tint.Tint) **tint.Color { return &t.Black }, func(t *tint.Tint) **tint.Color { return &t.Bg }, "#000000"},
}

// GetThemesDir returns the custom themes directory
// ($XDG_CONFIG_HOME/floatwm/themes), creating it if needed.
func GetThemesDir() (string, error) {
	keep, err := xdg.ConfigFile("floatwm/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keep), nil
}

// LoadCustomThemes registers every *.json theme in themesDir, in name
// order, and returns the IDs it loaded. Broken files are skipped and their
// errors joined into the returned error.
func LoadCustomThemes(themesDir string) ([]string, error) {
	if _, err := os.Stat(themesDir); err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(themesDir, "*.json"))
	if err != nil {
		return nil, err
	}

	var loaded []string
	var errs []error
	for _, path := range paths {
		t, err := LoadCustomThemeFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("skipping %s: %w", filepath.Base(path), err))
			continue
		}
		tint.Register(t)
		loaded = append(loaded, t.ID)
	}
	return loaded, errors.Join(errs...)
}

// LoadCustomThemeFile reads a bubbletint JSON theme. Only the chrome colors
// matter here: the file must set at least one of them (or its normal
// counterpart) and the rest are completed by completeChrome. The ID
// defaults to the lowercased file name.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	t := new(tint.Tint)
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}
	if t.ID == "" {
		t.ID = strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}
	if completeChrome(t) == len(chromeSlots) {
		return nil, fmt.Errorf("%w: %s", ErrNoChromeColors, t.ID)
	}
	return t, nil
}

// completeChrome fills the chrome slots t leaves empty and reports how many
// fell back to the xterm palette.
func completeChrome(t *tint.Tint) (defaulted int) {
	for _, slot := range chromeSlots {
		bright := slot.bright(t)
		if *bright != nil {
			continue
		}
		if normal := *slot.normal(t); normal != nil {
			dup := *normal
			*bright = &dup
			continue
		}
		*bright = tint.FromHex(slot.fallback)
		defaulted++
	}
	return defaulted
}

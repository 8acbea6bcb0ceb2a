package config

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/shortcuts"
)

// ValidationIssue is one problem found in a config file.
type ValidationIssue struct {
	Field   string // config section, e.g. "windows"
	Key     string
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Field, i.Key, i.Message)
}

// ValidationResult collects errors, which make a config unusable, and
// warnings, which are reported and then ignored.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any error was found.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any warning was found.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) errorf(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) warnf(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

var (
	borderStyles     = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}
	dockbarPositions = []string{"bottom", "top", "hidden"}
)

// ValidateConfig checks cfg after defaults have been filled in.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	w := cfg.Windows
	if w.MinWidth < 0 || math.IsNaN(w.MinWidth) {
		v.errorf("windows", "min_width", "must not be negative, got %v", w.MinWidth)
	}
	if w.MinHeight < 0 || math.IsNaN(w.MinHeight) {
		v.errorf("windows", "min_height", "must not be negative, got %v", w.MinHeight)
	}
	for key, value := range map[string]string{"default_width": w.DefaultWidth, "default_height": w.DefaultHeight} {
		if m := geom.ParseMeasure(value); math.IsNaN(m.Resolve(100, math.NaN())) {
			v.warnf("windows", key, "%q is neither a number nor a percentage; the built-in default is used", value)
		}
	}
	if _, err := geom.ParseStartPosition(w.StartPosition); err != nil {
		v.errorf("windows", "start_position", "%v", err)
	}

	if !(cfg.Terminal.CellWidth > 0) {
		v.errorf("terminal", "cell_width", "must be positive, got %v", cfg.Terminal.CellWidth)
	}
	if !(cfg.Terminal.CellHeight > 0) {
		v.errorf("terminal", "cell_height", "must be positive, got %v", cfg.Terminal.CellHeight)
	}

	if !slices.Contains(borderStyles, cfg.Appearance.BorderStyle) {
		v.warnf("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
	}
	if !slices.Contains(dockbarPositions, cfg.Appearance.DockbarPosition) {
		v.warnf("appearance", "dockbar_position", "unknown position %q, using bottom", cfg.Appearance.DockbarPosition)
	}

	if _, err := log.ParseLevel(cfg.Logging.Level); err != nil {
		v.errorf("logging", "level", "%v", err)
	}

	validateKeymap(v, "keybindings.global", cfg.Keybindings.Global, GlobalActions())
	validateKeymap(v, "keybindings.window", cfg.Keybindings.Window, WindowActions())
	return v
}

func validateKeymap(v *ValidationResult, field string, keymap map[string][]string, known []string) {
	actions := make([]string, 0, len(keymap))
	for action := range keymap {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	seen := make(map[string]string)
	for _, action := range actions {
		if !slices.Contains(known, action) {
			v.warnf(field, action, "unknown action")
			continue
		}
		for _, chord := range keymap[action] {
			ev, err := shortcuts.ParseChord(chord)
			if err != nil {
				v.errorf(field, action, "%v", err)
				continue
			}
			if other, dup := seen[ev.String()]; dup {
				v.warnf(field, action, "key %q is also bound to %s", chord, other)
				continue
			}
			seen[ev.String()] = action
		}
	}
}

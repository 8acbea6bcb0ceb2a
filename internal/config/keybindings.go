package config

import "strings"

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title     string
	Condition string // Empty for always shown, "focused" when a window must have focus
	Bindings  []Keybinding
}

// GetKeybindings returns all keybinding sections for the help window and
// `floatwm keybinds list`. A nil config lists the defaults.
func GetKeybindings(cfg *UserConfig) []KeybindingSection {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	global := KeybindingSection{Title: "Desktop"}
	for _, action := range GlobalActions() {
		addBinding(&global, cfg.Keybindings.Global, action)
	}

	window := KeybindingSection{Title: "Focused Window", Condition: "focused"}
	for _, action := range WindowActions() {
		addBinding(&window, cfg.Keybindings.Window, action)
	}

	return []KeybindingSection{global, window, getMouseSection()}
}

func addBinding(section *KeybindingSection, keymap map[string][]string, action string) {
	keys := keymap[action]
	if len(keys) == 0 {
		return
	}
	section.Bindings = append(section.Bindings, Keybinding{
		Key:         strings.Join(keys, ", "),
		Description: ActionDescriptions[action],
	})
}

func getMouseSection() KeybindingSection {
	return KeybindingSection{
		Title: "Mouse",
		Bindings: []Keybinding{
			{"Click", "Focus window"},
			{"Drag title bar", "Move window"},
			{"Drag " + GetWindowResizeGrip(), "Resize window"},
			{"Double-click title", "Maximize or restore"},
			{"Click dock item", "Restore minimized window"},
		},
	}
}

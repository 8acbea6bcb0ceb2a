package config

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters for window chrome
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// DockbarPosition overrides the dockbar position
	DockbarPosition string

	// HideWindowButtons overrides hiding window control buttons
	HideWindowButtons bool

	// LogLevel overrides [logging] level
	LogLevel string

	// LogFile overrides [logging] file
	LogFile string

	// StartPosition overrides [windows] start_position
	StartPosition string

	// Theme overrides [appearance] theme
	Theme string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied. Settings
// that live in userConfig itself are overwritten there.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// ASCII Only - OR of CLI flag and user config
	UseASCIIOnly = overrides.ASCIIOnly || (userConfig != nil && userConfig.Appearance.ASCIIOnly)

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Dockbar Position - CLI flag takes precedence, otherwise use user config
	if overrides.DockbarPosition != "" {
		DockbarPosition = overrides.DockbarPosition
	} else if userConfig != nil && userConfig.Appearance.DockbarPosition != "" {
		DockbarPosition = userConfig.Appearance.DockbarPosition
	}

	// Hide Window Buttons - OR of CLI flag and user config
	HideWindowButtons = overrides.HideWindowButtons || (userConfig != nil && userConfig.Appearance.HideWindowButtons)

	if userConfig == nil {
		return
	}
	if overrides.LogLevel != "" {
		userConfig.Logging.Level = overrides.LogLevel
	}
	if overrides.LogFile != "" {
		userConfig.Logging.File = overrides.LogFile
	}
	if overrides.Theme != "" {
		userConfig.Appearance.Theme = overrides.Theme
	}
	if overrides.StartPosition != "" {
		userConfig.Windows.StartPosition = overrides.StartPosition
	}
}

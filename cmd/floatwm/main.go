// Package main implements floatwm, a floating window manager for the
// terminal. Windows keep their geometry in pixels, open at anchored start
// positions, grow to fit their content, and can be dragged, resized,
// minimized to a dock and maximized with the mouse or the keyboard.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	configFile        string
	asciiOnly         bool
	borderStyle       string
	dockbarPosition   string
	hideWindowButtons bool
	logLevel          string
	logFile           string
	startPosition     string
	themeName         string
)

func main() {
	var tapeFile string
	var tapeStep time.Duration

	rootCmd := &cobra.Command{
		Use:   "floatwm",
		Short: "Floating window manager for the terminal",
		Long: `floatwm - floating windows in your terminal

Open, drag, resize, minimize and maximize windows on a terminal desktop.
Windows open at anchored start positions, grow to fit their content and
follow the terminal when it is resized.`,
		Example: `  # Run floatwm
  floatwm

  # Run with ASCII-only window chrome
  floatwm --ascii-only

  # Open new windows in the top right corner
  floatwm --start-position topRight

  # Play a tape on the desktop
  floatwm --tape demo.tape

  # Replay a tape without a terminal and print the result
  floatwm tape run demo.tape --width 1280 --height 800

  # List all keybindings
  floatwm keybinds list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal(tapeFile, tapeStep)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (default: XDG config dir)")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters for window chrome")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&dockbarPosition, "dockbar-position", "", "Dockbar position: bottom, top, hidden (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideWindowButtons, "hide-window-buttons", false, "Hide window control buttons (minimize, maximize, close)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config or warn)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: XDG state dir)")
	rootCmd.PersistentFlags().StringVar(&startPosition, "start-position", "", "Anchor for new windows, e.g. center or topLeft (default: from config or center)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme ID (default: from config or terminal colors)")
	rootCmd.Flags().StringVarP(&tapeFile, "tape", "t", "", "Play a tape file or saved tape name on startup")
	rootCmd.Flags().DurationVar(&tapeStep, "tape-step", app.DefaultTapeStep, "Delay between tape commands")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage floatwm configuration",
		Long:  `Manage the floatwm configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the floatwm configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	var force bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Write the default configuration file

An existing file is left untouched unless --force is given.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfigFile(force)
		},
	}
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults are filled in`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig()
		},
	}

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors",
		Long:  `Load the configuration and report errors and warnings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return validateConfig()
		},
	}

	configCmd.AddCommand(configPathCmd, configInitCmd, configShowCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect floatwm keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Long:  `List the built-in themes and the custom themes in the themes directory`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listThemes()
		},
	}

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Manage and run .tape scripts",
		Long: `Manage and execute .tape scripts for floatwm

Tape files drive the window store with one command per line: open,
close, focus, minimize, maximize, drag and resize windows, sync content
sizes, and assert the resulting geometry with expect.`,
		Example: `  # Watch a tape on the desktop
  floatwm tape play demo.tape

  # Run a tape headless and print the final windows as JSON
  floatwm tape run demo.tape --json

  # Validate tape file syntax
  floatwm tape validate demo.tape`,
	}

	tapePlayCmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Play a tape on the desktop",
		Long: `Execute a tape while displaying the floatwm desktop

Press p to pause and resume playback.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLocal(args[0], tapeStep)
		},
	}
	tapePlayCmd.Flags().DurationVar(&tapeStep, "step", app.DefaultTapeStep, "Delay between tape commands")

	var replay replayOptions
	tapeRunCmd := &cobra.Command{
		Use:     "run <file.tape>",
		Aliases: []string{"replay"},
		Short:   "Run a tape without a terminal",
		Long: `Execute a tape against a headless window store and print the
resulting windows. The command fails when an expect line fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTapeHeadless(cmd.Context(), args[0], replay)
		},
	}
	tapeRunCmd.Flags().Float64Var(&replay.Width, "width", 0, "Container width in pixels before the tape runs")
	tapeRunCmd.Flags().Float64Var(&replay.Height, "height", 0, "Container height in pixels before the tape runs")
	tapeRunCmd.Flags().BoolVar(&replay.JSON, "json", false, "Print the final windows as JSON")

	tapeValidateCmd := &cobra.Command{
		Use:   "validate <file.tape>",
		Short: "Validate a tape file without running it",
		Long:  `Check if a tape file is syntactically correct`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validateTapeFile(args[0])
		},
	}

	tapeListCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved tapes",
		Long:  `Display all tape files in the floatwm data directory`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listTapeFiles()
		},
	}

	tapeDirCmd := &cobra.Command{
		Use:   "dir",
		Short: "Show the tape directory path",
		Long:  `Print the path where saved tapes are looked up`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showTapeDirectory()
		},
	}

	tapeShowCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Display the contents of a tape file",
		Long:  `Print a tape with its commands normalized, one per line`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return showTapeFile(args[0])
		},
	}

	tapeCmd.AddCommand(tapePlayCmd, tapeRunCmd, tapeValidateCmd, tapeListCmd, tapeDirCmd, tapeShowCmd)

	rootCmd.AddCommand(configCmd, keybindsCmd, themesCmd, tapeCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

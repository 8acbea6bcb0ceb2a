package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/input"
	"github.com/Gaurav-Gosain/floatwm/internal/theme"
	"github.com/Gaurav-Gosain/floatwm/pkg/floatwm"
)

// loadConfig reads the configuration named by --config, or the XDG one, and
// applies the flag overrides. A broken XDG config falls back to defaults.
func loadConfig() (*config.UserConfig, error) {
	var userConfig *config.UserConfig
	var err error
	if configFile != "" {
		userConfig, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         asciiOnly,
		BorderStyle:       borderStyle,
		DockbarPosition:   dockbarPosition,
		HideWindowButtons: hideWindowButtons,
		LogLevel:          logLevel,
		LogFile:           logFile,
		StartPosition:     startPosition,
		Theme:             themeName,
	}, userConfig)
	return userConfig, nil
}

// initTheme selects the configured theme, loading custom themes from the
// XDG themes directory when it can be created.
func initTheme(name string) error {
	if name == "" {
		return theme.Initialize("", "")
	}
	dir, err := theme.GetThemesDir()
	if err != nil {
		dir = ""
	}
	return theme.Initialize(name, dir)
}

func runLocal(tapeFile string, tapeStep time.Duration) error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := userConfig.Logging.LogLevel()
	if err != nil {
		return err
	}
	logOutput, err := userConfig.Logging.OpenLogFile()
	if err != nil {
		return err
	}
	defer func() { _ = logOutput.Close() }()

	app.SetInputHandler(input.HandleInput)

	desktop := app.New(app.Options{
		Config:    userConfig,
		LogOutput: logOutput,
		LogLevel:  level,
	})
	input.RegisterShortcuts(desktop)

	for _, issue := range userConfig.Warnings() {
		desktop.Log().Warn("config", "issue", issue.String())
	}
	if err := initTheme(userConfig.Appearance.Theme); err != nil {
		desktop.Log().Warn("theme", "err", err)
	}

	if tapeFile != "" {
		dir, err := app.GetTapeDirectory()
		if err != nil {
			return err
		}
		path, err := app.ResolveTape(dir, tapeFile)
		if err != nil {
			return err
		}
		play, err := desktop.PlayTapeFile(path, tapeStep)
		if err != nil {
			return fmt.Errorf("failed to load tape: %w", err)
		}
		desktop.Defer(play)
	}

	p := tea.NewProgram(
		desktop,
		tea.WithoutSignalHandler(),
		tea.WithFilter(floatwm.FilterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

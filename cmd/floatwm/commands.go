package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/tape"
	"github.com/Gaurav-Gosain/floatwm/internal/theme"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// printTable renders rows as a bordered table on a terminal and as
// tab-separated lines otherwise.
func printTable(headers []string, rows [][]string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, _ = lipgloss.Println(t)
}

func printConfigPath() error {
	if configFile != "" {
		fmt.Println(configFile)
		return nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func initConfigFile(force bool) error {
	path := configFile
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if _, err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func showConfig() error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	path, _ := config.GetConfigPath()
	if configFile != "" {
		path = configFile
	}
	data, err := config.Marshal(userConfig, path)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func validateConfig() error {
	path := configFile
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return err
		}
	}
	userConfig, err := config.Load(path)
	if err != nil {
		return err
	}
	for _, issue := range userConfig.Warnings() {
		fmt.Printf("warning: %s\n", issue)
	}
	fmt.Printf("%s is valid\n", path)
	return nil
}

func listKeybindings() error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	for i, section := range config.GetKeybindings(userConfig) {
		if i > 0 {
			fmt.Println()
		}
		title := section.Title
		if section.Condition != "" {
			title += " (" + section.Condition + ")"
		}
		_, _ = lipgloss.Println(titleStyle.Render(title))
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		printTable([]string{"Key", "Action"}, rows)
	}
	return nil
}

func listThemes() error {
	dir, err := theme.GetThemesDir()
	if err != nil {
		return err
	}
	ids, custom, loadErr := theme.Available(dir)
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", loadErr)
	}

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		source := "built-in"
		if slices.Contains(custom, id) {
			source = "custom"
		}
		rows = append(rows, []string{id, source})
	}
	printTable([]string{"Theme", "Source"}, rows)
	fmt.Printf("Custom themes: %s\n", dir)
	return nil
}

type replayOptions struct {
	Width  float64
	Height float64
	JSON   bool
}

// runTapeHeadless runs a tape against a fresh store and prints the windows
// it leaves behind.
func runTapeHeadless(ctx context.Context, path string, opts replayOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	level, err := userConfig.Logging.LogLevel()
	if err != nil {
		return err
	}

	wmOpts := userConfig.WMOptions()
	wmOpts.Logger = config.NewWriterLogger(os.Stderr, level)
	store := wm.New(wmOpts)
	if opts.Width > 0 || opts.Height > 0 {
		store.SetContainerSize(geom.Size{Width: opts.Width, Height: opts.Height})
	}

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to open tape: %w", err)
	}
	defer func() { _ = f.Close() }()

	executor := tape.NewCommandExecutor(store, wmOpts.Logger)
	runErr := executor.RunReader(ctx, f)

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(store.Windows()); err != nil {
			return err
		}
	} else {
		printWindows(store)
	}

	if errors.Is(runErr, tape.ErrExpectation) {
		return fmt.Errorf("tape failed: %w", runErr)
	}
	return runErr
}

func printWindows(store *wm.Store) {
	c := store.ContainerSize()
	fmt.Printf("container %s x %s, %d windows\n", formatPx(c.Width), formatPx(c.Height), store.Len())

	rows := make([][]string, 0, store.Len())
	for _, w := range store.Windows() {
		rows = append(rows, []string{
			w.ID,
			w.Title,
			formatPx(w.Status.Left),
			formatPx(w.Status.Top),
			formatPx(w.Status.Width),
			formatPx(w.Status.Height),
			windowState(w),
		})
	}
	printTable([]string{"ID", "Title", "Left", "Top", "Width", "Height", "State"}, rows)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func windowState(w wm.Window) string {
	var states []string
	st := w.Status
	if st.IsFocused {
		states = append(states, "focused")
	}
	if st.IsMinimized {
		states = append(states, "minimized")
	}
	if st.IsMaximized {
		states = append(states, "maximized")
	}
	if w.PendingInitialPosition {
		states = append(states, "pending")
	}
	return strings.Join(states, ",")
}

func validateTapeFile(path string) error {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to open tape: %w", err)
	}
	defer func() { _ = f.Close() }()

	cmds, err := tape.Parse(f)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d commands\n", path, len(cmds))
	return nil
}

func listTapeFiles() error {
	dir, err := app.GetTapeDirectory()
	if err != nil {
		return err
	}
	files, err := app.LoadTapeFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No tapes in %s\n", dir)
		return nil
	}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.Name, formatFileSize(f.Size), f.Modified.Format("2006-01-02 15:04")})
	}
	printTable([]string{"Name", "Size", "Modified"}, rows)
	return nil
}

func formatFileSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

func showTapeDirectory() error {
	dir, err := app.GetTapeDirectory()
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}

func showTapeFile(name string) error {
	dir, err := app.GetTapeDirectory()
	if err != nil {
		return err
	}
	path, err := app.ResolveTape(dir, name)
	if err != nil {
		return err
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	cmds, err := tape.Parse(f)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		fmt.Println(cmd.String())
	}
	return nil
}

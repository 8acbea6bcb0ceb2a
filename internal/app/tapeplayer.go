package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"

	"github.com/Gaurav-Gosain/floatwm/internal/tape"
)

// DefaultTapeStep is the delay between two tape commands during playback.
const DefaultTapeStep = 150 * time.Millisecond

// TapeFile is a tape in the tape directory.
type TapeFile struct {
	Name     string
	Path     string
	Size     int64
	Modified time.Time
}

// GetTapeDirectory returns the XDG data directory for tape files, creating
// it when missing.
func GetTapeDirectory() (string, error) {
	tapeFile, err := xdg.DataFile("floatwm/tapes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get tape directory: %w", err)
	}
	dir := filepath.Dir(tapeFile)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create tape directory: %w", err)
	}
	return dir, nil
}

// LoadTapeFiles lists the *.tape files of dir, newest first.
func LoadTapeFiles(dir string) ([]TapeFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape directory: %w", err)
	}

	var files []TapeFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".tape") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, TapeFile{
			Name:     strings.TrimSuffix(name, ".tape"),
			Path:     filepath.Join(dir, name),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// ResolveTape finds a tape by path, or by name in dir.
func ResolveTape(dir, name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	candidate := filepath.Join(dir, strings.TrimSuffix(name, ".tape")+".tape")
	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("tape %q not found", name)
	}
	return candidate, nil
}

// TapePlayer steps through tape commands inside the running desktop.
type TapePlayer struct {
	Name     string
	commands []tape.Command
	index    int
	executor *tape.CommandExecutor
	step     time.Duration
	Paused   bool
	Err      error
}

// Done reports whether every command ran or playback stopped on an error.
func (p *TapePlayer) Done() bool {
	return p.Err != nil || p.index >= len(p.commands)
}

// Progress returns the number of executed and total commands.
func (p *TapePlayer) Progress() (int, int) {
	return p.index, len(p.commands)
}

type tapeStepMsg struct {
	player *TapePlayer
}

func (p *TapePlayer) tick() tea.Cmd {
	return tea.Tick(p.step, func(time.Time) tea.Msg {
		return tapeStepMsg{player: p}
	})
}

// PlayTape starts playing cmds against the store, one command per step.
// Any running playback is replaced.
func (d *Desktop) PlayTape(name string, cmds []tape.Command, step time.Duration) tea.Cmd {
	if step <= 0 {
		step = DefaultTapeStep
	}
	d.Tape = &TapePlayer{
		Name:     name,
		commands: cmds,
		executor: tape.NewCommandExecutor(d.Store, d.log),
		step:     step,
	}
	d.log.Info("playing tape", "name", name, "commands", len(cmds))
	return d.Tape.tick()
}

// PlayTapeFile parses the tape at path and plays it.
func (d *Desktop) PlayTapeFile(path string, step time.Duration) (tea.Cmd, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cmds, err := tape.Parse(f)
	if err != nil {
		return nil, err
	}
	return d.PlayTape(filepath.Base(path), cmds, step), nil
}

// ToggleTapePause pauses or resumes playback.
func (d *Desktop) ToggleTapePause() tea.Cmd {
	if d.Tape == nil || d.Tape.Done() {
		return nil
	}
	d.Tape.Paused = !d.Tape.Paused
	if d.Tape.Paused {
		return nil
	}
	return d.Tape.tick()
}

// StepTape executes the next command of the current tape.
func (d *Desktop) StepTape() {
	p := d.Tape
	if p == nil || p.Done() {
		return
	}
	cmd := p.commands[p.index]
	p.index++
	if err := p.executor.Execute(cmd); err != nil {
		p.Err = fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
		d.log.Error("tape stopped", "name", p.Name, "err", p.Err)
		return
	}
	if p.Done() {
		d.log.Info("tape finished", "name", p.Name)
	}
}

func (d *Desktop) handleTapeStep(msg tapeStepMsg) tea.Cmd {
	// Ticks of a replaced or paused player are dropped.
	if msg.player != d.Tape || d.Tape.Paused {
		return nil
	}
	d.StepTape()
	if d.Tape.Done() {
		return nil
	}
	return d.Tape.tick()
}

// tapeStatus describes playback for the dock.
func (d *Desktop) tapeStatus() string {
	p := d.Tape
	if p == nil {
		return ""
	}
	done, total := p.Progress()
	switch {
	case p.Err != nil:
		return fmt.Sprintf("tape %s failed ", p.Name)
	case p.Done():
		return fmt.Sprintf("tape %s done ", p.Name)
	case p.Paused:
		return fmt.Sprintf("tape %s paused %d/%d ", p.Name, done, total)
	default:
		return fmt.Sprintf("tape %s %d/%d ", p.Name, done, total)
	}
}

// Package tape reads and replays scripts of window store commands.
//
// A tape is line oriented. Each line holds one command followed by
// shell-quoted arguments; blank lines and lines starting with # are skipped:
//
//	container 800 600
//	open id=settings unique title="Settings" width=50% at=topRight
//	move settings
//	capture -40 25
//	release
//	expect settings left=360 top=25
package tape

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

// Sentinel errors returned while parsing and executing tapes.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("bad arguments")
	ErrExpectation    = errors.New("expectation failed")
)

// CommandType names a tape command.
type CommandType string

// Tape commands.
const (
	CommandContainer  CommandType = "container"
	CommandOpen       CommandType = "open"
	CommandClose      CommandType = "close"
	CommandFocus      CommandType = "focus"
	CommandMinimize   CommandType = "minimize"
	CommandUnminimize CommandType = "unminimize"
	CommandMaximize   CommandType = "maximize"
	CommandRestore    CommandType = "restore"
	CommandMove       CommandType = "move"
	CommandResize     CommandType = "resize"
	CommandCapture    CommandType = "capture"
	CommandRelease    CommandType = "release"
	CommandSync       CommandType = "sync"
	CommandUpdate     CommandType = "update"
	CommandClear      CommandType = "clear"
	CommandExpect     CommandType = "expect"
)

// arity is the minimum and maximum argument count of each command; -1 means
// unbounded.
var arity = map[CommandType][2]int{
	CommandContainer:  {2, 2},
	CommandOpen:       {0, -1},
	CommandClose:      {1, 1},
	CommandFocus:      {1, 1},
	CommandMinimize:   {1, 1},
	CommandUnminimize: {1, 1},
	CommandMaximize:   {1, 1},
	CommandRestore:    {1, 1},
	CommandMove:       {1, 2},
	CommandResize:     {1, 2},
	CommandCapture:    {2, 2},
	CommandRelease:    {0, 0},
	CommandSync:       {3, 5},
	CommandUpdate:     {2, -1},
	CommandClear:      {0, 0},
	CommandExpect:     {2, -1},
}

// Commands lists every command name.
func Commands() []CommandType {
	return []CommandType{
		CommandContainer, CommandOpen, CommandClose, CommandFocus,
		CommandMinimize, CommandUnminimize, CommandMaximize, CommandRestore,
		CommandMove, CommandResize, CommandCapture, CommandRelease,
		CommandSync, CommandUpdate, CommandClear, CommandExpect,
	}
}

// Command is one parsed tape line.
type Command struct {
	Type CommandType
	Args []string
	Line int
}

func (c Command) String() string {
	return strings.TrimSpace(string(c.Type) + " " + strings.Join(c.Args, " "))
}

// ParseLine parses a single line. ok is false for blank and comment lines.
func ParseLine(line string, n int) (cmd Command, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, false, nil
	}

	fields, err := shlex.Split(trimmed, true)
	if err != nil {
		return Command{}, false, fmt.Errorf("line %d: %w: %v", n, ErrBadArgs, err)
	}
	if len(fields) == 0 {
		return Command{}, false, nil
	}

	typ := CommandType(strings.ToLower(fields[0]))
	bounds, known := arity[typ]
	if !known {
		return Command{}, false, fmt.Errorf("line %d: %w %q", n, ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	if len(args) < bounds[0] || (bounds[1] >= 0 && len(args) > bounds[1]) {
		return Command{}, false, fmt.Errorf("line %d: %w: %s takes %s, got %d",
			n, ErrBadArgs, typ, describeArity(bounds), len(args))
	}
	return Command{Type: typ, Args: args, Line: n}, true, nil
}

func describeArity(b [2]int) string {
	switch {
	case b[1] < 0:
		return fmt.Sprintf("at least %d argument(s)", b[0])
	case b[0] == b[1]:
		return fmt.Sprintf("%d argument(s)", b[0])
	default:
		return fmt.Sprintf("%d to %d arguments", b[0], b[1])
	}
}

// Parse reads a whole tape.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		cmd, ok, err := ParseLine(scanner.Text(), n)
		if err != nil {
			return nil, err
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tape: %w", err)
	}
	return cmds, nil
}

// ParseString parses a tape held in memory.
func ParseString(s string) ([]Command, error) {
	return Parse(strings.NewReader(s))
}

// splitOption splits key=value arguments. Bare words are returned with an
// empty value and hasValue false.
func splitOption(arg string) (key, value string, hasValue bool) {
	key, value, hasValue = strings.Cut(arg, "=")
	return strings.ToLower(key), value, hasValue
}

package tape

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// LastID may stand in for a window id; it names the most recently opened
// window.
const LastID = "$"

// StoreID addresses store-level expectations: "expect - count=2 focused=a".
const StoreID = "-"

// Executor is the window store surface a tape drives. *wm.Store satisfies it.
type Executor interface {
	SetContainerSize(size geom.Size)
	OpenWindow(p wm.CreateParams) string
	CloseWindow(id string)
	FocusWindow(id string)
	SetWindowMinimized(id string, minimized bool)
	SetWindowMaximized(id string, maximized bool)
	SetWindowMoving(id string, moving bool)
	SetWindowResizing(id string, resizing bool)
	MouseCapture(d wm.Delta)
	RemoveMovingResizing()
	SyncWindowContentSize(id string, content wm.ContentSize)
	UpdateWindow(id string, p wm.Patch)
	ClearWindows()

	Window(id string) (wm.Window, bool)
	FocusedID() string
	Len() int
}

// CommandExecutor executes tape commands against an Executor.
type CommandExecutor struct {
	executor Executor
	log      *log.Logger
	last     string

	// AfterEach, when set, runs after every successfully executed command.
	AfterEach func(cmd Command)
}

// NewCommandExecutor creates a new command executor. A nil logger discards.
func NewCommandExecutor(executor Executor, logger *log.Logger) *CommandExecutor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CommandExecutor{executor: executor, log: logger.WithPrefix("tape")}
}

// LastOpened returns the id returned by the latest open command.
func (ce *CommandExecutor) LastOpened() string {
	return ce.last
}

// Run executes cmds in order, stopping at the first error or when ctx is done.
func (ce *CommandExecutor) Run(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ce.Execute(cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
		}
		if ce.AfterEach != nil {
			ce.AfterEach(cmd)
		}
	}
	return nil
}

// RunReader parses and runs a tape.
func (ce *CommandExecutor) RunReader(ctx context.Context, r io.Reader) error {
	cmds, err := Parse(r)
	if err != nil {
		return err
	}
	return ce.Run(ctx, cmds)
}

// Execute runs a single command.
func (ce *CommandExecutor) Execute(cmd Command) error {
	ce.log.Debug("execute", "line", cmd.Line, "command", cmd.String())

	switch cmd.Type {
	case CommandContainer:
		w, err := parseFloat(cmd.Args[0])
		if err != nil {
			return err
		}
		h, err := parseFloat(cmd.Args[1])
		if err != nil {
			return err
		}
		ce.executor.SetContainerSize(geom.Size{Width: w, Height: h})

	case CommandOpen:
		p, err := parseOpen(cmd.Args)
		if err != nil {
			return err
		}
		ce.last = ce.executor.OpenWindow(p)

	case CommandClose:
		ce.executor.CloseWindow(ce.resolveID(cmd.Args[0]))

	case CommandFocus:
		ce.executor.FocusWindow(ce.resolveID(cmd.Args[0]))

	case CommandMinimize, CommandUnminimize:
		ce.executor.SetWindowMinimized(ce.resolveID(cmd.Args[0]), cmd.Type == CommandMinimize)

	case CommandMaximize, CommandRestore:
		ce.executor.SetWindowMaximized(ce.resolveID(cmd.Args[0]), cmd.Type == CommandMaximize)

	case CommandMove, CommandResize:
		on := true
		if len(cmd.Args) > 1 {
			v, err := parseSwitch(cmd.Args[1])
			if err != nil {
				return err
			}
			on = v
		}
		id := ce.resolveID(cmd.Args[0])
		if cmd.Type == CommandMove {
			ce.executor.SetWindowMoving(id, on)
		} else {
			ce.executor.SetWindowResizing(id, on)
		}

	case CommandCapture:
		dx, err := parseFloat(cmd.Args[0])
		if err != nil {
			return err
		}
		dy, err := parseFloat(cmd.Args[1])
		if err != nil {
			return err
		}
		ce.executor.MouseCapture(wm.Delta{MovementX: dx, MovementY: dy})

	case CommandRelease:
		ce.executor.RemoveMovingResizing()

	case CommandSync:
		vals := make([]float64, 4)
		for i, arg := range cmd.Args[1:] {
			v, err := parseFloat(arg)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		ce.executor.SyncWindowContentSize(ce.resolveID(cmd.Args[0]), wm.ContentSize{
			Width:       vals[0],
			Height:      vals[1],
			FrameWidth:  vals[2],
			FrameHeight: vals[3],
		})

	case CommandUpdate:
		p, err := parsePatch(cmd.Args[1:])
		if err != nil {
			return err
		}
		ce.executor.UpdateWindow(ce.resolveID(cmd.Args[0]), p)

	case CommandClear:
		ce.executor.ClearWindows()

	case CommandExpect:
		if cmd.Args[0] == StoreID {
			return ce.expectStore(cmd.Args[1:])
		}
		return ce.expectWindow(ce.resolveID(cmd.Args[0]), cmd.Args[1:])

	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Type)
	}

	return nil
}

func (ce *CommandExecutor) resolveID(id string) string {
	if id == LastID {
		return ce.last
	}
	return id
}

func parseOpen(args []string) (wm.CreateParams, error) {
	var p wm.CreateParams
	for _, arg := range args {
		key, value, hasValue := splitOption(arg)
		var err error
		switch key {
		case "id":
			p.ID = value
		case "title":
			p.Title = value
		case "width":
			p.InitialStatus.Width = geom.ParseMeasure(value)
		case "height":
			p.InitialStatus.Height = geom.ParseMeasure(value)
		case "left":
			p.InitialStatus.Left = geom.ParseMeasure(value)
		case "top":
			p.InitialStatus.Top = geom.ParseMeasure(value)
		case "at", "start":
			p.InitialStatus.StartPosition, err = geom.ParseStartPosition(value)
		case "unique":
			p.Unique, err = flag(value, hasValue)
		case "locked", "anchor-locked":
			p.InitialStatus.AnchorLocked, err = flag(value, hasValue)
		case "maximized":
			p.InitialStatus.IsMaximized, err = flag(value, hasValue)
		case "minimized":
			p.InitialStatus.IsMinimized, err = flag(value, hasValue)
		default:
			var target **bool
			target, err = permissionField(&p.Closeable, &p.Maximizable, &p.Minimizable,
				&p.Resizable, &p.Movable, &p.TitleBar, &p.Overlay, key)
			if err == nil {
				var v bool
				v, err = flag(value, hasValue)
				*target = wm.Ptr(v)
			}
		}
		if err != nil {
			return wm.CreateParams{}, fmt.Errorf("%s: %w", arg, err)
		}
	}
	return p, nil
}

func parsePatch(args []string) (wm.Patch, error) {
	var p wm.Patch
	for _, arg := range args {
		key, value, hasValue := splitOption(arg)
		if key == "title" {
			p.Title = wm.Ptr(value)
			continue
		}
		target, err := permissionField(&p.Closeable, &p.Maximizable, &p.Minimizable,
			&p.Resizable, &p.Movable, &p.TitleBar, &p.Overlay, key)
		if err != nil {
			return wm.Patch{}, fmt.Errorf("%s: %w", arg, err)
		}
		v, err := flag(value, hasValue)
		if err != nil {
			return wm.Patch{}, fmt.Errorf("%s: %w", arg, err)
		}
		*target = wm.Ptr(v)
	}
	return p, nil
}

func permissionField(closeable, maximizable, minimizable, resizable, movable, titleBar, overlay **bool, key string) (**bool, error) {
	switch key {
	case "closeable":
		return closeable, nil
	case "maximizable":
		return maximizable, nil
	case "minimizable":
		return minimizable, nil
	case "resizable":
		return resizable, nil
	case "movable":
		return movable, nil
	case "titlebar", "title-bar":
		return titleBar, nil
	case "overlay":
		return overlay, nil
	}
	return nil, fmt.Errorf("%w: unknown option %q", ErrBadArgs, key)
}

func (ce *CommandExecutor) expectWindow(id string, args []string) error {
	w, ok := ce.executor.Window(id)
	for _, arg := range args {
		key, value, hasValue := splitOption(arg)
		if key == "missing" {
			if ok {
				return fmt.Errorf("%w: window %q exists", ErrExpectation, id)
			}
			continue
		}
		if !ok {
			return fmt.Errorf("%w: no window %q", ErrExpectation, id)
		}

		var err error
		switch key {
		case "left":
			err = expectFloat(key, w.Status.Left, value)
		case "top":
			err = expectFloat(key, w.Status.Top, value)
		case "width":
			err = expectFloat(key, w.Status.Width, value)
		case "height":
			err = expectFloat(key, w.Status.Height, value)
		case "title":
			if w.Title != value {
				err = fmt.Errorf("%w: title = %q, want %q", ErrExpectation, w.Title, value)
			}
		case "focused":
			err = expectBool(key, w.Status.IsFocused, value, hasValue)
		case "minimized":
			err = expectBool(key, w.Status.IsMinimized, value, hasValue)
		case "maximized":
			err = expectBool(key, w.Status.IsMaximized, value, hasValue)
		case "moving":
			err = expectBool(key, w.Status.IsMoving, value, hasValue)
		case "resizing":
			err = expectBool(key, w.Status.IsResizing, value, hasValue)
		case "manual-position":
			err = expectBool(key, w.ManualPosition, value, hasValue)
		case "manual-size":
			err = expectBool(key, w.ManualSize, value, hasValue)
		case "pending":
			err = expectBool(key, w.PendingInitialPosition, value, hasValue)
		default:
			err = fmt.Errorf("%w: unknown expectation %q", ErrBadArgs, key)
		}
		if err != nil {
			return fmt.Errorf("window %q: %w", id, err)
		}
	}
	return nil
}

func (ce *CommandExecutor) expectStore(args []string) error {
	for _, arg := range args {
		key, value, _ := splitOption(arg)
		switch key {
		case "count":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: count %q", ErrBadArgs, value)
			}
			if got := ce.executor.Len(); got != n {
				return fmt.Errorf("%w: count = %d, want %d", ErrExpectation, got, n)
			}
		case "focused":
			want := ce.resolveID(value)
			if got := ce.executor.FocusedID(); got != want {
				return fmt.Errorf("%w: focused = %q, want %q", ErrExpectation, got, want)
			}
		default:
			return fmt.Errorf("%w: unknown expectation %q", ErrBadArgs, key)
		}
	}
	return nil
}

const epsilon = 1e-6

func expectFloat(key string, got float64, value string) error {
	want, err := parseFloat(value)
	if err != nil {
		return err
	}
	if math.Abs(got-want) > epsilon {
		return fmt.Errorf("%w: %s = %v, want %v", ErrExpectation, key, got, want)
	}
	return nil
}

func expectBool(key string, got bool, value string, hasValue bool) error {
	want, err := flag(value, hasValue)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: %s = %v, want %v", ErrExpectation, key, got, want)
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadArgs, s)
	}
	return v, nil
}

// flag reads a boolean option; a bare word means true.
func flag(value string, hasValue bool) (bool, error) {
	if !hasValue {
		return true, nil
	}
	return parseSwitch(value)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrBadArgs, s)
	}
	return v, nil
}

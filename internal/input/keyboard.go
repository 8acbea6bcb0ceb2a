package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/shortcuts"
)

// Keyboard nudge steps, in cells.
const (
	NudgeColumns = 2
	NudgeRows    = 1
)

// desktopOwner owns the global shortcuts.
const desktopOwner = "desktop"

// eventFromKey converts a key press to a shortcut event. Keys the chord
// parser rejects are dispatched by their raw name.
func eventFromKey(msg tea.KeyPressMsg) shortcuts.Event {
	key := msg.String()
	ev, err := shortcuts.ParseChord(key)
	if err != nil {
		return shortcuts.Event{Key: key}
	}
	return ev
}

// HandleKeyPress dispatches a key press. Windows opened outside the desktop,
// by a tape for instance, get their shortcuts on first use.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	if id := d.Shortcuts.ActiveOwner(); id != "" && !d.Shortcuts.Registered(id) {
		RegisterWindowShortcuts(d, id)
	}

	ev := eventFromKey(msg)
	if res := d.Shortcuts.Dispatch(ev); !res.Matched {
		d.Log().Debug("unbound key", "key", ev.String())
	}
	return d, nil
}

// RegisterShortcuts binds the configured global actions and arranges for
// every window opened through the desktop to get the window actions.
func RegisterShortcuts(d *app.Desktop) {
	handlers := map[string]func(){
		config.ActionNewWindow:   func() { d.NewNote() },
		config.ActionOpenLog:     func() { d.Open(app.ComponentLog, nil) },
		config.ActionOpenHelp:    func() { d.Open(app.ComponentHelp, nil) },
		config.ActionNextWindow:  func() { d.CycleFocus(true) },
		config.ActionPrevWindow:  func() { d.CycleFocus(false) },
		config.ActionRestoreAll:  d.RestoreAll,
		config.ActionCloseAll:    d.CloseAll,
		config.ActionQuit:        func() { d.Defer(d.Quit()) },
		config.ActionCancelDrag:  d.Store.RemoveMovingResizing,
		config.ActionToggleDebug: func() { d.ShowDebug = !d.ShowDebug },
		config.ActionToggleTape:  func() { d.Defer(d.ToggleTapePause()) },
	}
	d.Shortcuts.Register(desktopOwner, true,
		bindActions(d, d.Config.Keybindings.Global, config.GlobalActions(), handlers)...)

	d.OnOpen = func(id string) {
		RegisterWindowShortcuts(d, id)
	}
}

// RegisterWindowShortcuts binds the configured window actions to id. They
// fire while id is focused and visible.
func RegisterWindowShortcuts(d *app.Desktop, id string) {
	handlers := map[string]func(){
		config.ActionCloseWindow:    func() { d.Close(id) },
		config.ActionMinimizeWindow: func() { d.Store.SetWindowMinimized(id, true) },
		config.ActionToggleMaximize: func() { d.ToggleMaximize(id) },
		config.ActionMoveLeft:       func() { d.Nudge(id, -NudgeColumns, 0, false) },
		config.ActionMoveRight:      func() { d.Nudge(id, NudgeColumns, 0, false) },
		config.ActionMoveUp:         func() { d.Nudge(id, 0, -NudgeRows, false) },
		config.ActionMoveDown:       func() { d.Nudge(id, 0, NudgeRows, false) },
		config.ActionGrowWidth:      func() { d.Nudge(id, NudgeColumns, 0, true) },
		config.ActionShrinkWidth:    func() { d.Nudge(id, -NudgeColumns, 0, true) },
		config.ActionGrowHeight:     func() { d.Nudge(id, 0, NudgeRows, true) },
		config.ActionShrinkHeight:   func() { d.Nudge(id, 0, -NudgeRows, true) },
	}
	d.Shortcuts.Register(id, false,
		bindActions(d, d.Config.Keybindings.Window, config.WindowActions(), handlers)...)
}

// bindActions builds shortcuts for actions in order. Chords that do not
// parse are logged and skipped.
func bindActions(d *app.Desktop, keymap map[string][]string, actions []string, handlers map[string]func()) []shortcuts.Shortcut {
	var out []shortcuts.Shortcut
	for _, action := range actions {
		fn, ok := handlers[action]
		if !ok {
			continue
		}
		for _, chord := range keymap[action] {
			s, err := shortcuts.Bind(chord, config.ActionDescriptions[action], func(shortcuts.Event) bool {
				fn()
				return true
			})
			if err != nil {
				d.Log().Warn("skipping key binding", "action", action, "key", chord, "err", err)
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/floatwm/internal/app"
	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/shortcuts"
)

func press(d *app.Desktop, key tea.KeyPressMsg) {
	HandleInput(key, d)
}

func TestEventFromKey(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want shortcuts.Event
	}{
		{
			name: "plain letter",
			key:  tea.KeyPressMsg{Code: 'n', Text: "n"},
			want: shortcuts.Event{Key: "n"},
		},
		{
			name: "ctrl chord",
			key:  tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl},
			want: shortcuts.Event{Key: "c", Mods: shortcuts.Modifiers{Ctrl: true}},
		},
		{
			name: "shifted arrow",
			key:  tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift},
			want: shortcuts.Event{Key: "right", Mods: shortcuts.Modifiers{Shift: true}},
		},
		{
			name: "question mark",
			key:  tea.KeyPressMsg{Code: '?', Text: "?"},
			want: shortcuts.Event{Key: "?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eventFromKey(tt.key); got != tt.want {
				t.Errorf("eventFromKey(%q) = %+v, want %+v", tt.key.String(), got, tt.want)
			}
		})
	}
}

func TestNewWindowKeyOpensNote(t *testing.T) {
	d := newDesktop(t)
	before := d.Store.Len()

	press(d, tea.KeyPressMsg{Code: 'n', Text: "n"})
	if got := d.Store.Len(); got != before+1 {
		t.Fatalf("windows = %d, want %d", got, before+1)
	}
	id := d.Store.FocusedID()
	w := window(t, d, id)
	if w.Title != "Note 1" {
		t.Errorf("title = %q, want Note 1", w.Title)
	}
	if !d.Shortcuts.Registered(id) {
		t.Error("window opened from a key has no shortcuts")
	}
}

func TestHelpWindowIsUnique(t *testing.T) {
	d := newDesktop(t)
	press(d, tea.KeyPressMsg{Code: '?', Text: "?"})
	press(d, tea.KeyPressMsg{Code: '?', Text: "?"})

	count := 0
	for _, w := range d.Store.Windows() {
		if w.ID == app.ComponentHelp {
			count++
		}
	}
	if count != 1 {
		t.Errorf("help windows = %d, want 1", count)
	}
}

func TestWindowKeysActOnFocusedWindow(t *testing.T) {
	d := newDesktop(t)

	// "a" was opened on the store directly, so its keys register lazily.
	press(d, tea.KeyPressMsg{Code: 'l', Text: "l"})
	w := window(t, d, "a")
	if w.Status.Left != 80+NudgeColumns*config.DefaultCellWidth {
		t.Errorf("left after move_right = %v", w.Status.Left)
	}
	if w.Status.IsMoving {
		t.Error("keyboard move left the window moving")
	}

	press(d, tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModShift})
	w = window(t, d, "a")
	if w.Status.Height != 320+NudgeRows*config.DefaultCellHeight {
		t.Errorf("height after grow_height = %v", w.Status.Height)
	}
	if !w.ManualSize {
		t.Error("keyboard resize should mark the size manual")
	}

	press(d, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if w := window(t, d, "a"); !w.Status.IsMaximized {
		t.Error("f did not maximize")
	}
	press(d, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if w := window(t, d, "a"); w.Status.IsMaximized {
		t.Error("f did not restore")
	}

	press(d, tea.KeyPressMsg{Code: 'm', Text: "m"})
	if w := window(t, d, "a"); !w.Status.IsMinimized {
		t.Error("m did not minimize")
	}

	// With nothing focused, window keys do nothing.
	press(d, tea.KeyPressMsg{Code: 'x', Text: "x"})
	if _, ok := d.Store.Window("a"); !ok {
		t.Error("x closed a minimized window")
	}

	press(d, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if w := window(t, d, "a"); w.Status.IsMinimized {
		t.Error("ctrl+r did not restore")
	}
	press(d, tea.KeyPressMsg{Code: 'x', Text: "x"})
	if _, ok := d.Store.Window("a"); ok {
		t.Error("x did not close the focused window")
	}
}

func TestCycleFocusKeys(t *testing.T) {
	d := newDesktop(t)
	b := d.NewNote()
	if d.Store.FocusedID() != b {
		t.Fatalf("focused = %q, want %q", d.Store.FocusedID(), b)
	}

	press(d, tea.KeyPressMsg{Code: tea.KeyTab})
	if got := d.Store.FocusedID(); got != "a" {
		t.Errorf("after tab focused = %q, want a", got)
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if got := d.Store.FocusedID(); got != b {
		t.Errorf("after shift+tab focused = %q, want %q", got, b)
	}
}

func TestQuitKeyReturnsQuit(t *testing.T) {
	d := newDesktop(t)
	app.SetInputHandler(HandleInput)

	_, cmd := d.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
	if !d.Quitting {
		t.Error("desktop not marked as quitting")
	}
}

func TestToggleDebugKey(t *testing.T) {
	d := newDesktop(t)
	press(d, tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	if !d.ShowDebug {
		t.Error("ctrl+d did not enable the overlay")
	}
}

func TestBadChordsAreSkipped(t *testing.T) {
	d := app.New(app.Options{})
	d.Config.Keybindings.Global = map[string][]string{
		config.ActionNewWindow: {"hyper+n", "n"},
	}
	RegisterShortcuts(d)

	var n int
	for _, b := range d.Shortcuts.Bindings() {
		if b.Global {
			n++
		}
	}
	if n != 1 {
		t.Errorf("global bindings = %d, want 1", n)
	}
}

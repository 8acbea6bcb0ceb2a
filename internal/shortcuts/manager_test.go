package shortcuts

import (
	"errors"
	"testing"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want Event
	}{
		{"q", Event{Key: "q"}},
		{"Q", Event{Key: "q"}},
		{"ctrl+m", Event{Key: "m", Mods: Modifiers{Ctrl: true}}},
		{"alt+shift+tab", Event{Key: "tab", Mods: Modifiers{Alt: true, Shift: true}}},
		{"opt+1", Event{Key: "1", Mods: Modifiers{Alt: true}}},
		{"cmd+W", Event{Key: "w", Mods: Modifiers{Meta: true}}},
		{"+", Event{Key: "+"}},
		{"ctrl++", Event{Key: "+", Mods: Modifiers{Ctrl: true}}},
		{"Escape", Event{Key: "Escape"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChord(tt.in)
			if err != nil {
				t.Fatalf("ParseChord(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseChord(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "hyper+x", "ctrl+"} {
		if _, err := ParseChord(bad); !errors.Is(err, ErrBadChord) {
			t.Errorf("ParseChord(%q) error = %v, want ErrBadChord", bad, err)
		}
	}
}

func TestEventString(t *testing.T) {
	ev := Event{Key: "n", Mods: Modifiers{Ctrl: true, Shift: true}}
	if got := ev.String(); got != "ctrl+shift+n" {
		t.Errorf("String() = %q", got)
	}
}

func mustBind(t *testing.T, chord string, handler func(Event) bool) Shortcut {
	t.Helper()
	s, err := Bind(chord, "", handler)
	if err != nil {
		t.Fatalf("Bind(%q): %v", chord, err)
	}
	return s
}

func newFocusStore(t *testing.T) *wm.Store {
	t.Helper()
	s := wm.New(wm.Options{})
	s.SetContainerSize(geom.Size{Width: 800, Height: 600})
	s.OpenWindow(wm.CreateParams{ID: "editor"})
	s.OpenWindow(wm.CreateParams{ID: "terminal"})
	return s
}

func TestDispatchPrefersScopedAndLaterRegistrations(t *testing.T) {
	store := newFocusStore(t)
	m := NewManager(store, nil)

	var calls []string
	record := func(name string) func(Event) bool {
		return func(Event) bool {
			calls = append(calls, name)
			return false
		}
	}

	m.Register("desktop", true, mustBind(t, "ctrl+s", record("global-first")))
	m.Register("launcher", true, mustBind(t, "ctrl+s", record("global-second")))
	m.Register("terminal", false, mustBind(t, "ctrl+s", record("terminal")))
	m.Register("editor", false, mustBind(t, "ctrl+s", record("editor")))

	res := m.Dispatch(Event{Key: "s", Mods: Modifiers{Ctrl: true}})
	if !res.Matched || res.Owner != "terminal" {
		t.Fatalf("result = %+v, want terminal match", res)
	}

	store.FocusWindow("editor")
	m.Dispatch(Event{Key: "S", Mods: Modifiers{Ctrl: true}})

	store.SetWindowMinimized("editor", true)
	store.SetWindowMinimized("terminal", true)
	m.Dispatch(Event{Key: "s", Mods: Modifiers{Ctrl: true}})

	want := []string{"terminal", "editor", "global-second"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestDispatchModifiersMustMatchExactly(t *testing.T) {
	m := NewManager(nil, nil)
	hit := 0
	m.Register("desktop", true, mustBind(t, "ctrl+n", func(Event) bool { hit++; return true }))

	if res := m.Dispatch(Event{Key: "n"}); res.Matched {
		t.Error("plain n should not match ctrl+n")
	}
	if res := m.Dispatch(Event{Key: "n", Mods: Modifiers{Ctrl: true, Shift: true}}); res.Matched {
		t.Error("ctrl+shift+n should not match ctrl+n")
	}
	res := m.Dispatch(Event{Key: "N", Mods: Modifiers{Ctrl: true}})
	if !res.Matched || !res.Handled || hit != 1 {
		t.Errorf("result = %+v, hits = %d", res, hit)
	}
}

func TestDisabledShortcutsAreSkipped(t *testing.T) {
	m := NewManager(nil, nil)
	fallback := false
	m.Register("a", true, mustBind(t, "x", func(Event) bool { fallback = true; return false }))
	disabled := mustBind(t, "x", func(Event) bool { t.Error("disabled shortcut ran"); return true })
	disabled.Disabled = true
	m.Register("b", true, disabled)

	m.Dispatch(Event{Key: "x"})
	if !fallback {
		t.Error("expected the earlier enabled shortcut to run")
	}
}

func TestPreventDefaultMarksHandled(t *testing.T) {
	m := NewManager(nil, nil)
	s := mustBind(t, "q", func(Event) bool { return false })
	s.PreventDefault = true
	m.Register("desktop", true, s)

	if res := m.Dispatch(Event{Key: "q"}); !res.Handled {
		t.Error("PreventDefault should mark the event handled")
	}
}

func TestDisposerAndClearOwner(t *testing.T) {
	m := NewManager(nil, nil)
	m.SetActiveOwner("panel")

	dispose := m.Register("panel", false, mustBind(t, "a", func(Event) bool { return true }))
	dispose()
	if res := m.Dispatch(Event{Key: "a"}); res.Matched {
		t.Error("disposed shortcut still matched")
	}

	stale := m.Register("panel", false, mustBind(t, "a", func(Event) bool { return true }))
	m.Register("panel", false, mustBind(t, "b", func(Event) bool { return true }))
	stale()
	if res := m.Dispatch(Event{Key: "b"}); !res.Matched {
		t.Error("a stale disposer removed a newer registration")
	}

	if !m.Registered("panel") {
		t.Error("Registered(panel) = false after Register")
	}

	m.Register("panel", true, mustBind(t, "g", func(Event) bool { return true }))
	m.ClearOwner("panel")
	if m.Registered("panel") {
		t.Error("Registered(panel) = true after ClearOwner")
	}
	if len(m.Bindings()) != 0 {
		t.Errorf("bindings after ClearOwner = %v", m.Bindings())
	}
}

func TestActiveOwner(t *testing.T) {
	store := newFocusStore(t)
	m := NewManager(store, nil)

	if got := m.ActiveOwner(); got != "terminal" {
		t.Errorf("ActiveOwner = %q, want terminal", got)
	}

	m.SetActiveOwner("palette")
	if got := m.ActiveOwner(); got != "palette" {
		t.Errorf("manual owner = %q", got)
	}

	m.SetActiveOwner("")
	store.SetWindowMinimized("terminal", true)
	if got := m.ActiveOwner(); got != "editor" {
		t.Errorf("ActiveOwner after minimize = %q, want editor", got)
	}
}

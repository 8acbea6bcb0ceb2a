// Package shortcuts routes key presses to handlers registered by owners.
//
// Owners register either global shortcuts, which are always live, or scoped
// shortcuts, which only fire while the owner is active. The active owner is
// set explicitly or follows the focused, visible window of a focus source.
package shortcuts

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// ErrBadChord is returned when a key chord cannot be parsed.
var ErrBadChord = errors.New("bad key chord")

// Modifiers is a set of modifier keys.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// Event is a key press to dispatch.
type Event struct {
	Key  string
	Mods Modifiers
}

// Shortcut binds a key chord to a handler. A handler returning true marks
// the event handled, as does PreventDefault.
type Shortcut struct {
	Key  string
	Mods Modifiers
	// Description is shown in key binding listings.
	Description    string
	PreventDefault bool
	Disabled       bool
	Handler        func(Event) bool
}

// Chord renders the shortcut the way ParseChord reads it.
func (s Shortcut) Chord() string {
	return Event{Key: s.Key, Mods: s.Mods}.String()
}

func (s Shortcut) matches(ev Event) bool {
	if s.Disabled || s.Handler == nil {
		return false
	}
	if s.Key != "" && normalizeKey(s.Key) != normalizeKey(ev.Key) {
		return false
	}
	return s.Mods == ev.Mods
}

// String renders the event as a chord such as "ctrl+shift+n".
func (ev Event) String() string {
	var parts []string
	if ev.Mods.Ctrl {
		parts = append(parts, "ctrl")
	}
	if ev.Mods.Alt {
		parts = append(parts, "alt")
	}
	if ev.Mods.Shift {
		parts = append(parts, "shift")
	}
	if ev.Mods.Meta {
		parts = append(parts, "meta")
	}
	return strings.Join(append(parts, ev.Key), "+")
}

// ParseChord reads chords like "ctrl+m", "alt+shift+tab" or "?". Modifier
// aliases opt, option, cmd and super are accepted.
func ParseChord(s string) (Event, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Event{}, fmt.Errorf("%w: empty", ErrBadChord)
	}

	var ev Event
	key := s
	if strings.HasSuffix(s, "++") {
		key = "+"
		s = strings.TrimSuffix(s, "++")
	} else if i := strings.LastIndex(s, "+"); i > 0 {
		key = s[i+1:]
		s = s[:i]
	} else {
		s = ""
	}

	if s != "" {
		for _, mod := range strings.Split(s, "+") {
			switch strings.ToLower(mod) {
			case "ctrl", "control":
				ev.Mods.Ctrl = true
			case "alt", "opt", "option":
				ev.Mods.Alt = true
			case "shift":
				ev.Mods.Shift = true
			case "meta", "cmd", "super":
				ev.Mods.Meta = true
			default:
				return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrBadChord, mod, s)
			}
		}
	}
	if key == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrBadChord)
	}
	ev.Key = normalizeKey(key)
	return ev, nil
}

// Bind builds a shortcut from a chord string.
func Bind(chord, description string, handler func(Event) bool) (Shortcut, error) {
	ev, err := ParseChord(chord)
	if err != nil {
		return Shortcut{}, err
	}
	return Shortcut{Key: ev.Key, Mods: ev.Mods, Description: description, Handler: handler}, nil
}

func normalizeKey(k string) string {
	if len([]rune(k)) == 1 {
		return strings.ToLower(k)
	}
	return k
}

// FocusSource reports the focus owner. *wm.Store satisfies it.
type FocusSource interface {
	FocusedID() string
	Window(id string) (wm.Window, bool)
}

// Result describes what Dispatch did.
type Result struct {
	Matched bool
	Owner   string
	Handled bool
}

type registration struct {
	owner     string
	gen       uint64
	shortcuts []Shortcut
}

type table struct {
	entries []registration
}

func (t *table) set(r registration) {
	if i := t.index(r.owner); i >= 0 {
		t.entries[i] = r
		return
	}
	t.entries = append(t.entries, r)
}

func (t *table) get(owner string) []Shortcut {
	if i := t.index(owner); i >= 0 {
		return t.entries[i].shortcuts
	}
	return nil
}

func (t *table) remove(owner string, gen uint64) {
	t.entries = slices.DeleteFunc(t.entries, func(r registration) bool {
		return r.owner == owner && (gen == 0 || r.gen == gen)
	})
}

func (t *table) index(owner string) int {
	return slices.IndexFunc(t.entries, func(r registration) bool { return r.owner == owner })
}

// Manager owns every shortcut registration of one desktop.
type Manager struct {
	focus  FocusSource
	log    *log.Logger
	global table
	scoped table
	gen    uint64
	manual string
}

// NewManager creates a manager that follows focus. A nil logger discards.
func NewManager(focus FocusSource, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{focus: focus, log: logger.WithPrefix("shortcuts")}
}

// Register sets the shortcuts of owner, replacing any earlier set in the
// same table. The returned function removes this registration; it does
// nothing once the owner has registered again.
func (m *Manager) Register(owner string, global bool, shortcuts ...Shortcut) (dispose func()) {
	m.gen++
	gen := m.gen
	t := &m.scoped
	if global {
		t = &m.global
	}
	t.set(registration{owner: owner, gen: gen, shortcuts: slices.Clone(shortcuts)})
	m.log.Debug("register", "owner", owner, "global", global, "count", len(shortcuts))
	return func() { t.remove(owner, gen) }
}

// ClearOwner drops every shortcut of owner, scoped and global.
func (m *Manager) ClearOwner(owner string) {
	m.scoped.remove(owner, 0)
	m.global.remove(owner, 0)
}

// Registered reports whether owner has scoped shortcuts.
func (m *Manager) Registered(owner string) bool {
	return m.scoped.index(owner) >= 0
}

// SetActiveOwner overrides the focus-derived owner. An empty owner returns
// control to focus.
func (m *Manager) SetActiveOwner(owner string) {
	m.manual = owner
}

// ActiveOwner returns the manual owner if set, else the focused window when
// it is not minimized, else "".
func (m *Manager) ActiveOwner() string {
	if m.manual != "" {
		return m.manual
	}
	if m.focus == nil {
		return ""
	}
	id := m.focus.FocusedID()
	if id == "" {
		return ""
	}
	if w, ok := m.focus.Window(id); !ok || !w.Visible() {
		return ""
	}
	return id
}

// Dispatch runs the first matching shortcut, searching scoped shortcuts of
// the active owner before global ones and later registrations before
// earlier ones.
func (m *Manager) Dispatch(ev Event) Result {
	type candidate struct {
		owner    string
		shortcut Shortcut
	}
	var listeners []candidate
	for _, r := range m.global.entries {
		for _, s := range r.shortcuts {
			listeners = append(listeners, candidate{r.owner, s})
		}
	}
	if owner := m.ActiveOwner(); owner != "" {
		for _, s := range m.scoped.get(owner) {
			listeners = append(listeners, candidate{owner, s})
		}
	}

	for i := len(listeners) - 1; i >= 0; i-- {
		c := listeners[i]
		if !c.shortcut.matches(ev) {
			continue
		}
		handled := c.shortcut.Handler(ev)
		m.log.Debug("dispatch", "key", ev.String(), "owner", c.owner, "handled", handled)
		return Result{Matched: true, Owner: c.owner, Handled: handled || c.shortcut.PreventDefault}
	}
	return Result{}
}

// Bindings lists every registered shortcut, global first, for display.
func (m *Manager) Bindings() []Binding {
	var out []Binding
	for _, t := range []struct {
		global bool
		tbl    *table
	}{{true, &m.global}, {false, &m.scoped}} {
		for _, r := range t.tbl.entries {
			for _, s := range r.shortcuts {
				out = append(out, Binding{Owner: r.owner, Global: t.global, Chord: s.Chord(), Description: s.Description})
			}
		}
	}
	return out
}

// Binding is a display row of Bindings.
type Binding struct {
	Owner       string
	Global      bool
	Chord       string
	Description string
}

package wm

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
)

// Store is the authoritative window state: the container size and the
// ordered window collection. Collection order is the base z-order.
//
// Commands never fail. Unknown ids and permission-gated requests are
// ignored and logged at debug level.
type Store struct {
	opts      Options
	log       *log.Logger
	container geom.Size
	windows   []*Window

	counter      int
	version      uint64
	observers    []observer
	nextObserver int
}

type observer struct {
	id int
	fn func()
}

// New creates an empty store. Zero fields of opts take their defaults.
func New(opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{
		opts: opts,
		log:  opts.Logger.WithPrefix("wm"),
	}
}

// Options returns the effective store options.
func (s *Store) Options() Options { return s.opts }

// Version increments after every command that changed state.
func (s *Store) Version() uint64 { return s.version }

// ContainerSize returns the normalized container size, (0,0) until measured.
func (s *Store) ContainerSize() geom.Size { return s.container }

// Len returns the number of open windows.
func (s *Store) Len() int { return len(s.windows) }

// Windows returns a copy of the collection in order.
func (s *Store) Windows() []Window {
	out := make([]Window, len(s.windows))
	for i, w := range s.windows {
		out[i] = w.clone()
	}
	return out
}

// Window returns a copy of the record with the given id.
func (s *Store) Window(id string) (Window, bool) {
	if w := s.find(id); w != nil {
		return w.clone(), true
	}
	return Window{}, false
}

// FocusedID returns the focus owner, or "" when no window is focused.
func (s *Store) FocusedID() string {
	for _, w := range s.windows {
		if w.Status.IsFocused {
			return w.ID
		}
	}
	return ""
}

// Subscribe registers fn to run after every state change and returns a
// function that removes it.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.nextObserver++
	id := s.nextObserver
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(o observer) bool { return o.id == id })
	}
}

func (s *Store) commit(msg string, keyvals ...any) {
	s.version++
	s.log.Debug(msg, keyvals...)
	for _, o := range slices.Clone(s.observers) {
		o.fn()
	}
}

func (s *Store) ignore(msg, reason string, keyvals ...any) {
	s.log.Debug(msg, append([]any{"ignored", reason}, keyvals...)...)
}

func (s *Store) find(id string) *Window {
	if i := s.index(id); i >= 0 {
		return s.windows[i]
	}
	return nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.windows, func(w *Window) bool { return w.ID == id })
}

func (s *Store) bounds() geom.SizeBounds {
	return geom.SizeBoundsFor(s.container, s.opts.MinSize)
}

// focusOnly focuses id and blurs every other window.
func (s *Store) focusOnly(id string) bool {
	changed := false
	for _, w := range s.windows {
		focused := w.ID == id
		if w.Status.IsFocused != focused {
			w.Status.IsFocused = focused
			changed = true
		}
	}
	return changed
}

func (s *Store) lastVisible() *Window {
	for i := len(s.windows) - 1; i >= 0; i-- {
		if s.windows[i].Visible() {
			return s.windows[i]
		}
	}
	return nil
}

// clearInteraction drops moving and resizing flags on every window.
func (s *Store) clearInteraction() bool {
	changed := false
	for _, w := range s.windows {
		if w.Status.IsMoving || w.Status.IsResizing {
			w.Status.IsMoving, w.Status.IsResizing = false, false
			changed = true
		}
	}
	return changed
}

func (s *Store) startPosition(initial InitialStatus) geom.StartPosition {
	if initial.StartPosition.Valid() {
		return initial.StartPosition
	}
	return s.opts.StartPosition
}

func (s *Store) widthMeasure(initial InitialStatus) geom.Measure {
	if initial.Width.IsSet() {
		return initial.Width
	}
	return s.opts.DefaultWidth
}

func (s *Store) heightMeasure(initial InitialStatus) geom.Measure {
	if initial.Height.IsSet() {
		return initial.Height
	}
	return s.opts.DefaultHeight
}

// resolveInitial computes open-time geometry against the current container.
func (s *Store) resolveInitial(initial InitialStatus, fallback geom.Size) geom.Rect {
	c := s.container
	size := s.bounds().ClampSize(geom.Size{
		Width:  s.widthMeasure(initial).Resolve(c.Width, fallback.Width),
		Height: s.heightMeasure(initial).Resolve(c.Height, fallback.Height),
	})
	left, top := s.initialPosition(initial, size)
	return geom.Rect{Left: left, Top: top, Width: size.Width, Height: size.Height}
}

// initialPosition resolves explicit left/top measures, falling back to the
// start-position anchor, and clamps the result.
func (s *Store) initialPosition(initial InitialStatus, size geom.Size) (float64, float64) {
	c := s.container
	ax, ay := geom.Anchor(s.startPosition(initial), size, c)
	left := initial.Left.Resolve(c.Width, ax)
	top := initial.Top.Resolve(c.Height, ay)
	return geom.ClampPosition(left, top, size, c)
}

func (s *Store) pending(initial InitialStatus) bool {
	return (!initial.Left.IsSet() || !initial.Top.IsSet()) && !s.container.Known()
}

func (s *Store) markResolved(w *Window) {
	if s.container.Known() {
		c := s.container
		w.OriginalContainerSize = &c
	}
}

// OpenWindow creates a window and focuses it. When a window with the same id
// exists and p.Unique is set, that record is updated in place instead. A
// clashing id on a non-unique open is replaced by a derived one. The id of
// the opened window is returned.
func (s *Store) OpenWindow(p CreateParams) string {
	s.counter++
	id := p.ID
	if id == "" {
		id = fmt.Sprintf("window-%d", s.counter)
	}

	if existing := s.find(id); existing != nil {
		if p.Unique {
			s.mergeWindow(existing, p)
			s.commit("open window", "id", id, "merged", true)
			return id
		}
		id = s.freshID(id)
	}

	w := s.newWindow(id, p)
	for _, other := range s.windows {
		other.Status.IsFocused = false
	}
	s.windows = append(s.windows, w)
	s.commit("open window", "id", id, "rect", w.Status.Rect(), "pending", w.PendingInitialPosition)
	return id
}

func (s *Store) freshID(base string) string {
	for n := s.counter; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if s.find(id) == nil {
			return id
		}
	}
}

func (s *Store) newWindow(id string, p CreateParams) *Window {
	initial := p.InitialStatus
	perms := DefaultPermissions()
	applyPermissions(&perms, p.patch())
	perms.Unique = p.Unique

	rect := s.resolveInitial(initial, geom.Size{Width: DefaultWindowWidth, Height: DefaultWindowHeight})
	w := &Window{
		ID:          id,
		Title:       p.Title,
		Content:     p.Content,
		Permissions: perms,
		AutoSize: AutoSize{
			Width:  !initial.Width.IsSet(),
			Height: !initial.Height.IsSet(),
		},
		PreferredSize:          rect.Size(),
		PendingInitialPosition: s.pending(initial),
		InitialStatus:          initial,
	}
	w.Status.setRect(rect)
	w.Status.IsFocused = true
	w.Status.IsMinimized = initial.IsMinimized
	if initial.IsMaximized && perms.Maximizable {
		s.maximize(w)
	}
	s.markResolved(w)
	return w
}

func (s *Store) mergeWindow(w *Window, p CreateParams) {
	initial := p.InitialStatus
	rect := s.resolveInitial(initial, w.Status.Size())

	if p.Title != "" {
		w.Title = p.Title
	}
	w.Content = p.Content
	w.ContentSize = nil
	applyPermissions(&w.Permissions, p.patch())

	w.AutoSize = AutoSize{Width: !initial.Width.IsSet(), Height: !initial.Height.IsSet()}
	w.PreferredSize = rect.Size()
	w.PendingInitialPosition = s.pending(initial)
	w.ManualPosition, w.ManualSize = false, false
	w.InitialStatus = initial

	w.Status.setRect(rect)
	w.Status.IsMaximized = false
	w.Status.IsMinimized = false
	w.Status.IsMoving, w.Status.IsResizing = false, false
	if initial.IsMaximized && w.Permissions.Maximizable {
		s.maximize(w)
	}
	s.markResolved(w)
	s.focusOnly(w.ID)
}

// maximize snapshots the current rectangle (unless already maximized) and
// fills the container. An unknown container dimension keeps the current one.
func (s *Store) maximize(w *Window) {
	if !w.Status.IsMaximized {
		r := w.Status.Rect()
		w.RestoreStatus = &r
	}
	size := w.Status.Size()
	if s.container.Width > 0 {
		size.Width = s.container.Width
	}
	if s.container.Height > 0 {
		size.Height = s.container.Height
	}
	w.Status.setRect(geom.Rect{Width: size.Width, Height: size.Height})
	w.Status.IsMaximized = true
	w.Status.IsMoving, w.Status.IsResizing = false, false
	s.markResolved(w)
}

// CloseWindow removes a window. When it held focus the last remaining
// window in collection order receives it.
func (s *Store) CloseWindow(id string) {
	i := s.index(id)
	if i < 0 {
		s.ignore("close window", "unknown id", "id", id)
		return
	}
	wasFocused := s.windows[i].Status.IsFocused
	s.windows = slices.Delete(s.windows, i, i+1)
	if wasFocused && len(s.windows) > 0 {
		s.focusOnly(s.windows[len(s.windows)-1].ID)
	}
	s.commit("close window", "id", id, "focus", s.FocusedID())
}

// FocusWindow focuses id and blurs all others.
func (s *Store) FocusWindow(id string) {
	if s.find(id) == nil {
		s.ignore("focus window", "unknown id", "id", id)
		return
	}
	if s.focusOnly(id) {
		s.commit("focus window", "id", id)
	}
}

// SetWindowMinimized minimizes or restores a window. Minimizing hands focus
// to the last visible window; restoring focuses the window.
func (s *Store) SetWindowMinimized(id string, minimized bool) {
	w := s.find(id)
	if w == nil {
		s.ignore("set minimized", "unknown id", "id", id)
		return
	}
	before := w.Status
	w.Status.IsMinimized = minimized
	w.Status.IsMoving, w.Status.IsResizing = false, false
	changed := w.Status != before

	if minimized {
		if w.Status.IsFocused {
			w.Status.IsFocused = false
			changed = true
			if next := s.lastVisible(); next != nil {
				next.Status.IsFocused = true
			}
		}
	} else if s.focusOnly(id) {
		changed = true
	}

	if changed {
		s.commit("set minimized", "id", id, "minimized", minimized, "focus", s.FocusedID())
	}
}

// SetWindowMaximized maximizes a window or restores its pre-maximize
// geometry. Windows that are not maximizable ignore it.
func (s *Store) SetWindowMaximized(id string, maximized bool) {
	w := s.find(id)
	switch {
	case w == nil:
		s.ignore("set maximized", "unknown id", "id", id)
		return
	case !w.Permissions.Maximizable:
		s.ignore("set maximized", "not maximizable", "id", id)
		return
	case !maximized && !w.Status.IsMaximized:
		s.ignore("set maximized", "not maximized", "id", id)
		return
	}

	before := w.Status
	if maximized {
		s.maximize(w)
	} else {
		s.unmaximize(w)
	}
	if w.Status != before {
		s.commit("set maximized", "id", id, "maximized", maximized, "rect", w.Status.Rect())
	}
}

func (s *Store) unmaximize(w *Window) {
	w.Status.IsMaximized = false
	w.Status.IsMoving, w.Status.IsResizing = false, false
	if w.RestoreStatus == nil {
		return
	}
	r := *w.RestoreStatus
	if s.container.Known() {
		size := s.bounds().ClampSize(r.Size())
		r.Width, r.Height = size.Width, size.Height
		r.Left, r.Top = geom.ClampPosition(r.Left, r.Top, size, s.container)
	}
	w.Status.setRect(r)
}

// UpdateWindow applies the non-nil fields of p. Geometry is not patchable.
func (s *Store) UpdateWindow(id string, p Patch) {
	w := s.find(id)
	if w == nil {
		s.ignore("update window", "unknown id", "id", id)
		return
	}
	changed := false
	if p.Title != nil && *p.Title != w.Title {
		w.Title = *p.Title
		changed = true
	}
	if p.Content != nil {
		w.Content = p.Content
		changed = true
	}
	if applyPermissions(&w.Permissions, p) {
		changed = true
	}
	if !w.Permissions.Movable && w.Status.IsMoving {
		w.Status.IsMoving = false
	}
	if !w.Permissions.Resizable && w.Status.IsResizing {
		w.Status.IsResizing = false
	}
	if changed {
		s.commit("update window", "id", id)
	}
}

// ClearWindows removes every window.
func (s *Store) ClearWindows() {
	if len(s.windows) == 0 {
		return
	}
	s.windows = nil
	s.commit("clear windows")
}

func (p CreateParams) patch() Patch {
	return Patch{
		Closeable:   p.Closeable,
		Maximizable: p.Maximizable,
		Minimizable: p.Minimizable,
		Resizable:   p.Resizable,
		Movable:     p.Movable,
		TitleBar:    p.TitleBar,
		Overlay:     p.Overlay,
	}
}

func applyPermissions(dst *Permissions, p Patch) bool {
	changed := applyBool(&dst.Closeable, p.Closeable)
	changed = applyBool(&dst.Maximizable, p.Maximizable) || changed
	changed = applyBool(&dst.Minimizable, p.Minimizable) || changed
	changed = applyBool(&dst.Resizable, p.Resizable) || changed
	changed = applyBool(&dst.Movable, p.Movable) || changed
	changed = applyBool(&dst.TitleBar, p.TitleBar) || changed
	changed = applyBool(&dst.Overlay, p.Overlay) || changed
	return changed
}

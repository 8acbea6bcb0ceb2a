package wm

import (
	"math"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
)

// SetContainerSize stores a new container size and reflows every window
// against it. The size is sanitized and rounded first; an unchanged size is
// a no-op and a size with a zero dimension is stored without reflowing.
func (s *Store) SetContainerSize(size geom.Size) {
	next := size.Normalize()
	if next == s.container {
		s.ignore("set container size", "unchanged", "width", next.Width, "height", next.Height)
		return
	}
	s.container = next
	if !next.Known() {
		s.commit("set container size", "width", next.Width, "height", next.Height, "reflow", false)
		return
	}
	for _, w := range s.windows {
		s.reflow(w)
	}
	s.commit("set container size", "width", next.Width, "height", next.Height, "windows", len(s.windows))
}

func (s *Store) reflow(w *Window) {
	c := s.container
	switch {
	case w.Status.IsMaximized:
		if w.PendingInitialPosition {
			r := s.resolvePending(w)
			w.RestoreStatus = &r
			w.PendingInitialPosition = false
		}
		w.Status.setRect(geom.Rect{Width: c.Width, Height: c.Height})
	case w.PendingInitialPosition:
		w.Status.setRect(s.resolvePending(w))
		w.PendingInitialPosition = false
		growPreferred(w)
	default:
		w.Status.setRect(s.reflowPlaced(w))
		growPreferred(w)
	}
	w.OriginalContainerSize = &c
}

// measuredDesire is the size content last asked for, or the preferred size
// when nothing was measured yet.
func (s *Store) measuredDesire(w *Window) geom.Size {
	if w.ContentSize == nil {
		return w.PreferredSize
	}
	return geom.Size{
		Width:  math.Max(s.opts.MinSize.Width, w.ContentSize.Width+w.ContentSize.FrameWidth),
		Height: math.Max(s.opts.MinSize.Height, w.ContentSize.Height+w.ContentSize.FrameHeight),
	}
}

// resolvePending computes the first real geometry of a window opened before
// the container was measured.
func (s *Store) resolvePending(w *Window) geom.Rect {
	c := s.container
	desired := s.measuredDesire(w)
	target := geom.Size{
		Width:  w.InitialStatus.Width.Resolve(c.Width, w.Status.Width),
		Height: w.InitialStatus.Height.Resolve(c.Height, w.Status.Height),
	}
	if w.AutoSize.Width {
		def := s.opts.DefaultWidth.Resolve(c.Width, DefaultWindowWidth)
		target.Width = max(def, desired.Width, w.PreferredSize.Width)
	}
	if w.AutoSize.Height {
		def := s.opts.DefaultHeight.Resolve(c.Height, DefaultWindowHeight)
		target.Height = max(def, desired.Height, w.PreferredSize.Height)
	}
	size := s.bounds().ClampSize(target)
	left, top := s.initialPosition(w.InitialStatus, size)
	return geom.Rect{Left: left, Top: top, Width: size.Width, Height: size.Height}
}

func reflowExtent(auto, manual bool, m geom.Measure, desired, preferred, current, container float64) float64 {
	switch {
	case auto:
		return math.Max(desired, preferred)
	case manual:
		return current
	default:
		return m.Resolve(container, current)
	}
}

// reflowPlaced recomputes a resolved window. Windows that still fit keep
// their position apart from anchor locking and centered growth; windows
// pushed out of bounds are re-anchored or rescaled with the container.
func (s *Store) reflowPlaced(w *Window) geom.Rect {
	c := s.container
	old := w.Status.Rect()
	desired := s.measuredDesire(w)
	size := s.bounds().ClampSize(geom.Size{
		Width: reflowExtent(w.AutoSize.Width, w.ManualSize, w.InitialStatus.Width,
			desired.Width, w.PreferredSize.Width, old.Width, c.Width),
		Height: reflowExtent(w.AutoSize.Height, w.ManualSize, w.InitialStatus.Height,
			desired.Height, w.PreferredSize.Height, old.Height, c.Height),
	})

	initial := w.InitialStatus
	ax, ay := geom.Anchor(s.startPosition(initial), size, c)
	anchored := !w.ManualPosition && initial.AnchorLocked
	left, top := old.Left, old.Top

	fits := geom.Rect{Left: old.Left, Top: old.Top, Width: size.Width, Height: size.Height}.Inside(c)
	switch {
	case fits:
		if anchored && !initial.Left.IsSet() {
			left = ax
		} else if s.centersX(w) {
			left -= (size.Width - old.Width) / 2
		}
		if anchored && !initial.Top.IsSet() {
			top = ay
		} else if s.centersY(w) {
			top -= (size.Height - old.Height) / 2
		}
	case anchored:
		if !initial.Left.IsSet() {
			left = ax
		}
		if !initial.Top.IsSet() {
			top = ay
		}
	case w.OriginalContainerSize != nil && w.OriginalContainerSize.Known():
		prev := w.OriginalContainerSize
		left = old.Left * c.Width / prev.Width
		top = old.Top * c.Height / prev.Height
	default:
		left = initial.Left.Resolve(c.Width, ax)
		top = initial.Top.Resolve(c.Height, ay)
	}

	left, top = geom.ClampPosition(left, top, size, c)
	return geom.Rect{Left: left, Top: top, Width: size.Width, Height: size.Height}
}

// centersX reports whether horizontal growth should keep the window's
// center in place.
func (s *Store) centersX(w *Window) bool {
	return w.AutoSize.Width && !w.ManualPosition && !w.InitialStatus.Left.IsSet() &&
		s.startPosition(w.InitialStatus).HorizontallyCentered()
}

func (s *Store) centersY(w *Window) bool {
	return w.AutoSize.Height && !w.ManualPosition && !w.InitialStatus.Top.IsSet() &&
		s.startPosition(w.InitialStatus).VerticallyCentered()
}

func growPreferred(w *Window) {
	if w.AutoSize.Width {
		w.PreferredSize.Width = math.Max(w.PreferredSize.Width, w.Status.Width)
	}
	if w.AutoSize.Height {
		w.PreferredSize.Height = math.Max(w.PreferredSize.Height, w.Status.Height)
	}
}

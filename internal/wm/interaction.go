package wm

import (
	"math"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
)

// SetWindowMoving starts or stops a drag. Starting a drag cancels any other
// drag or resize in progress and marks the window as manually positioned.
// Maximized, minimized and immovable windows never start moving.
func (s *Store) SetWindowMoving(id string, moving bool) {
	const msg = "set moving"

	w := s.find(id)
	switch {
	case w == nil:
		s.ignore(msg, "unknown id", "id", id)
		return
	case !w.Permissions.Movable:
		s.ignore(msg, "not movable", "id", id)
		return
	case w.Status.IsMaximized:
		s.ignore(msg, "maximized", "id", id)
		return
	case moving && w.Status.IsMinimized:
		s.ignore(msg, "minimized", "id", id)
		return
	}

	changed := false
	if moving {
		changed = s.clearInteraction()
		if !w.ManualPosition {
			w.ManualPosition = true
			changed = true
		}
	}
	if w.Status.IsMoving != moving {
		w.Status.IsMoving = moving
		changed = true
	}
	if changed {
		s.commit(msg, "id", id, "moving", moving)
	}
}

// SetWindowResizing starts or stops a resize, with the same exclusivity as
// SetWindowMoving. The window is marked as manually sized.
func (s *Store) SetWindowResizing(id string, resizing bool) {
	const msg = "set resizing"

	w := s.find(id)
	switch {
	case w == nil:
		s.ignore(msg, "unknown id", "id", id)
		return
	case !w.Permissions.Resizable:
		s.ignore(msg, "not resizable", "id", id)
		return
	case w.Status.IsMaximized:
		s.ignore(msg, "maximized", "id", id)
		return
	case resizing && w.Status.IsMinimized:
		s.ignore(msg, "minimized", "id", id)
		return
	}

	changed := false
	if resizing {
		changed = s.clearInteraction()
		if !w.ManualSize {
			w.ManualSize = true
			changed = true
		}
	}
	if w.Status.IsResizing != resizing {
		w.Status.IsResizing = resizing
		changed = true
	}
	if changed {
		s.commit(msg, "id", id, "resizing", resizing)
	}
}

// MouseCapture applies a pointer delta to the window being moved or resized.
// Moves keep the window inside the container; resizes keep the size between
// the minimum and the space left of the window's position.
func (s *Store) MouseCapture(d Delta) {
	dx, dy := geom.Finite(d.MovementX), geom.Finite(d.MovementY)
	if dx == 0 && dy == 0 {
		return
	}

	w := s.active()
	if w == nil {
		return
	}

	c := s.container
	st := w.Status
	if st.IsMoving {
		left, top := geom.ClampPosition(st.Left+dx, st.Top+dy, st.Size(), c)
		w.Status.Left, w.Status.Top = left, top
	} else {
		b := s.bounds()
		w.Status.Width = geom.Clamp(st.Width+dx, b.MinWidth, math.Max(b.MinWidth, c.Width-st.Left))
		w.Status.Height = geom.Clamp(st.Height+dy, b.MinHeight, math.Max(b.MinHeight, c.Height-st.Top))
	}
	if w.Status != st {
		s.commit("mouse capture", "id", w.ID, "rect", w.Status.Rect())
	}
}

// RemoveMovingResizing ends every drag and resize.
func (s *Store) RemoveMovingResizing() {
	if s.clearInteraction() {
		s.commit("remove moving resizing")
	}
}

// active returns the window being moved, else the one being resized.
func (s *Store) active() *Window {
	var resizing *Window
	for _, w := range s.windows {
		if w.Status.IsMoving {
			return w
		}
		if w.Status.IsResizing && resizing == nil {
			resizing = w
		}
	}
	return resizing
}

// Interacting reports whether a drag or resize is in progress.
func (s *Store) Interacting() bool {
	return s.active() != nil
}

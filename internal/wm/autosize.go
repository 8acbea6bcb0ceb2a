package wm

import (
	"math"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
)

// SyncWindowContentSize records a content measurement and grows the auto
// axes of the window to fit it. Preferred size never shrinks, so transient
// smaller measurements do not make the window jitter. Auto axes follow the
// content even after a manual resize. Windows that are moving, resizing,
// maximized or minimized ignore measurements.
func (s *Store) SyncWindowContentSize(id string, content ContentSize) {
	const msg = "sync content size"

	w := s.find(id)
	if w == nil {
		s.ignore(msg, "unknown id", "id", id)
		return
	}
	st := w.Status
	if st.IsMaximized || st.IsMinimized || st.IsMoving || st.IsResizing {
		s.ignore(msg, "window busy", "id", id)
		return
	}
	if !w.AutoSize.Width && !w.AutoSize.Height {
		s.ignore(msg, "fixed size", "id", id)
		return
	}

	cs := content.sanitized()
	sameContent := w.ContentSize != nil && *w.ContentSize == cs

	autoW, autoH := w.AutoSize.Width, w.AutoSize.Height

	preferred := w.PreferredSize
	next := st.Size()
	if autoW {
		desired := math.Max(s.opts.MinSize.Width, cs.Width+cs.FrameWidth)
		preferred.Width = math.Max(preferred.Width, desired)
		next.Width = preferred.Width
	}
	if autoH {
		desired := math.Max(s.opts.MinSize.Height, cs.Height+cs.FrameHeight)
		preferred.Height = math.Max(preferred.Height, desired)
		next.Height = preferred.Height
	}
	next = s.bounds().ClampSize(next)

	if math.Abs(next.Width-st.Width) < 1 && math.Abs(next.Height-st.Height) < 1 {
		if sameContent && preferred == w.PreferredSize {
			return
		}
		w.ContentSize = &cs
		w.PreferredSize = preferred
		s.commit(msg, "id", id, "resized", false)
		return
	}

	left, top := st.Left, st.Top
	if autoW && s.centersX(w) {
		left -= (next.Width - st.Width) / 2
	}
	if autoH && s.centersY(w) {
		top -= (next.Height - st.Height) / 2
	}
	left, top = geom.ClampPosition(left, top, next, s.container)

	w.ContentSize = &cs
	w.PreferredSize = preferred
	w.Status.setRect(geom.Rect{Left: left, Top: top, Width: next.Width, Height: next.Height})
	s.commit(msg, "id", id, "width", next.Width, "height", next.Height)
}

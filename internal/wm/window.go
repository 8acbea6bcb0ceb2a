// Package wm holds the floating window store: the ordered window collection,
// the container size and every command that mutates them.
//
// The store is single-threaded. Callers serialize commands; each command is a
// complete read-modify-write over the collection, after which observers are
// notified and the version counter advances.
package wm

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
)

// Default geometry constants.
const (
	DefaultMinWidth      = 320
	DefaultMinHeight     = 220
	DefaultWindowWidth   = 720
	DefaultWindowHeight  = 480
	DefaultStartPosition = geom.Center
)

// Permissions gate the commands a window accepts.
type Permissions struct {
	Closeable   bool `json:"closeable"`
	Maximizable bool `json:"maximizable"`
	Minimizable bool `json:"minimizable"`
	Resizable   bool `json:"resizable"`
	Movable     bool `json:"movable"`
	TitleBar    bool `json:"titleBar"`
	Unique      bool `json:"unique"`
	Overlay     bool `json:"overlay"`
}

// DefaultPermissions returns the permissions a window gets when the opener
// leaves them unspecified.
func DefaultPermissions() Permissions {
	return Permissions{
		Closeable:   true,
		Maximizable: true,
		Minimizable: true,
		Resizable:   true,
		Movable:     true,
		TitleBar:    true,
	}
}

// Status is the concrete geometry of a window plus its interaction flags.
type Status struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	IsMoving    bool `json:"isMoving"`
	IsResizing  bool `json:"isResizing"`
	IsMaximized bool `json:"isMaximized"`
	IsMinimized bool `json:"isMinimized"`
	IsFocused   bool `json:"isFocused"`
}

// Rect returns the window rectangle.
func (s Status) Rect() geom.Rect {
	return geom.Rect{Left: s.Left, Top: s.Top, Width: s.Width, Height: s.Height}
}

// Size returns the window dimensions.
func (s Status) Size() geom.Size {
	return geom.Size{Width: s.Width, Height: s.Height}
}

func (s *Status) setRect(r geom.Rect) {
	s.Left, s.Top, s.Width, s.Height = r.Left, r.Top, r.Width, r.Height
}

// AutoSize marks the axes that follow measured content.
type AutoSize struct {
	Width  bool `json:"width"`
	Height bool `json:"height"`
}

// ContentSize is a content measurement: the natural content box plus the
// size of the chrome around it.
type ContentSize struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	FrameWidth  float64 `json:"frameWidth"`
	FrameHeight float64 `json:"frameHeight"`
}

func (c ContentSize) sanitized() ContentSize {
	return ContentSize{
		Width:       geom.Sanitize(c.Width),
		Height:      geom.Sanitize(c.Height),
		FrameWidth:  geom.Sanitize(c.FrameWidth),
		FrameHeight: geom.Sanitize(c.FrameHeight),
	}
}

// InitialStatus is the open-time configuration of a window. Unset width or
// height measures make that axis auto-sized.
type InitialStatus struct {
	Width         geom.Measure       `json:"width"`
	Height        geom.Measure       `json:"height"`
	Left          geom.Measure       `json:"left"`
	Top           geom.Measure       `json:"top"`
	StartPosition geom.StartPosition `json:"startPosition,omitempty"`
	// AnchorLocked keeps the window on its start position across container
	// resizes until the user moves it.
	AnchorLocked bool `json:"anchorLocked,omitempty"`
	IsMaximized  bool `json:"isMaximized,omitempty"`
	IsMinimized  bool `json:"isMinimized,omitempty"`
}

// Window is one record of the collection.
type Window struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     any         `json:"-"`
	Permissions Permissions `json:"permissions"`
	Status      Status      `json:"status"`

	AutoSize      AutoSize     `json:"autoSize"`
	PreferredSize geom.Size    `json:"preferredSize"`
	ContentSize   *ContentSize `json:"contentSize,omitempty"`

	ManualPosition         bool `json:"manualPosition"`
	ManualSize             bool `json:"manualSize"`
	PendingInitialPosition bool `json:"pendingInitialPosition"`

	InitialStatus         InitialStatus `json:"initialStatus"`
	RestoreStatus         *geom.Rect    `json:"restoreStatus,omitempty"`
	OriginalContainerSize *geom.Size    `json:"originalContainerSize,omitempty"`
}

// Visible reports whether the window is drawn on the desktop.
func (w Window) Visible() bool {
	return !w.Status.IsMinimized
}

func (w *Window) clone() Window {
	c := *w
	if w.ContentSize != nil {
		cs := *w.ContentSize
		c.ContentSize = &cs
	}
	if w.RestoreStatus != nil {
		r := *w.RestoreStatus
		c.RestoreStatus = &r
	}
	if w.OriginalContainerSize != nil {
		s := *w.OriginalContainerSize
		c.OriginalContainerSize = &s
	}
	return c
}

// CreateParams describe a window to open. Nil permission fields take the
// defaults on creation and keep the current value on a unique merge.
type CreateParams struct {
	ID      string
	Title   string
	Content any
	Unique  bool

	Closeable   *bool
	Maximizable *bool
	Minimizable *bool
	Resizable   *bool
	Movable     *bool
	TitleBar    *bool
	Overlay     *bool

	InitialStatus InitialStatus
}

// Patch is a partial update of a window's content and permissions. Only
// non-nil fields are applied.
type Patch struct {
	Title   *string
	Content any

	Closeable   *bool
	Maximizable *bool
	Minimizable *bool
	Resizable   *bool
	Movable     *bool
	TitleBar    *bool
	Overlay     *bool
}

// Ptr returns a pointer to v, for filling optional params.
func Ptr[T any](v T) *T { return &v }

func applyBool(dst *bool, v *bool) bool {
	if v == nil || *dst == *v {
		return false
	}
	*dst = *v
	return true
}

// Delta is a pointer movement in pixels.
type Delta struct {
	MovementX float64
	MovementY float64
}

// Options configure a Store.
type Options struct {
	// MinSize is the smallest window size allowed while the container is
	// at least that large.
	MinSize geom.Size
	// DefaultWidth and DefaultHeight size auto axes before content is measured.
	DefaultWidth  geom.Measure
	DefaultHeight geom.Measure
	// StartPosition anchors windows whose initial status names none.
	StartPosition geom.StartPosition
	Logger        *log.Logger
}

// DefaultOptions returns the stock window geometry.
func DefaultOptions() Options {
	return Options{
		MinSize:       geom.Size{Width: DefaultMinWidth, Height: DefaultMinHeight},
		DefaultWidth:  geom.Px(DefaultWindowWidth),
		DefaultHeight: geom.Px(DefaultWindowHeight),
		StartPosition: DefaultStartPosition,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if !o.MinSize.Known() {
		o.MinSize = d.MinSize
	}
	if !o.DefaultWidth.IsSet() {
		o.DefaultWidth = d.DefaultWidth
	}
	if !o.DefaultHeight.IsSet() {
		o.DefaultHeight = d.DefaultHeight
	}
	o.StartPosition = o.StartPosition.OrDefault()
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

package geom

import "math"

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Known reports whether both dimensions are positive.
func (s Size) Known() bool {
	return s.Width > 0 && s.Height > 0
}

// Normalize sanitizes both dimensions and rounds them to whole pixels.
func (s Size) Normalize() Size {
	return Size{
		Width:  math.Round(Sanitize(s.Width)),
		Height: math.Round(Sanitize(s.Height)),
	}
}

// Rect is a window rectangle in container coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains reports whether a point lies within the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Inside reports whether r lies entirely within a container of the given size.
func (r Rect) Inside(container Size) bool {
	return r.Left >= 0 && r.Top >= 0 &&
		r.Right() <= container.Width && r.Bottom() <= container.Height
}

// SizeBounds are the allowed width and height ranges for a container.
type SizeBounds struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
}

// SizeBoundsFor computes size bounds for a container. An unknown dimension
// (zero) caps at the minimum; a container narrower than the minimum lowers the
// minimum to the container extent.
func SizeBoundsFor(container, minimum Size) SizeBounds {
	maxW := minimum.Width
	if container.Width > 0 {
		maxW = container.Width
	}
	maxH := minimum.Height
	if container.Height > 0 {
		maxH = container.Height
	}
	return SizeBounds{
		MinWidth:  math.Min(minimum.Width, maxW),
		MinHeight: math.Min(minimum.Height, maxH),
		MaxWidth:  maxW,
		MaxHeight: maxH,
	}
}

// ClampSize clamps a size into the bounds.
func (b SizeBounds) ClampSize(s Size) Size {
	return Size{
		Width:  Clamp(s.Width, b.MinWidth, b.MaxWidth),
		Height: Clamp(s.Height, b.MinHeight, b.MaxHeight),
	}
}

// Clamp limits v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// ClampPosition keeps a window of the given size inside the container:
// left in [0, max(0, cw-w)] and top in [0, max(0, ch-h)].
func ClampPosition(left, top float64, size, container Size) (float64, float64) {
	return Clamp(left, 0, math.Max(0, container.Width-size.Width)),
		Clamp(top, 0, math.Max(0, container.Height-size.Height))
}

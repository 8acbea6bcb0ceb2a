package geom

import (
	"errors"
	"fmt"
	"strings"
)

// StartPosition names one of the nine anchors a window can open at.
type StartPosition string

// The nine anchors, named by vertical then horizontal placement.
const (
	TopLeft      StartPosition = "topLeft"
	TopCenter    StartPosition = "topCenter"
	TopRight     StartPosition = "topRight"
	CenterLeft   StartPosition = "centerLeft"
	Center       StartPosition = "center"
	CenterRight  StartPosition = "centerRight"
	BottomLeft   StartPosition = "bottomLeft"
	BottomCenter StartPosition = "bottomCenter"
	BottomRight  StartPosition = "bottomRight"
)

// StartPositions lists every anchor in reading order.
var StartPositions = []StartPosition{
	TopLeft, TopCenter, TopRight,
	CenterLeft, Center, CenterRight,
	BottomLeft, BottomCenter, BottomRight,
}

// ErrUnknownStartPosition is returned when an anchor name is not recognised.
var ErrUnknownStartPosition = errors.New("unknown start position")

// ParseStartPosition accepts the camelCase names as well as kebab and snake
// case spellings ("top-left", "bottom_right").
func ParseStartPosition(s string) (StartPosition, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s)))
	for _, p := range StartPositions {
		if strings.ToLower(string(p)) == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStartPosition, s)
}

// Valid reports whether p is one of the nine anchors.
func (p StartPosition) Valid() bool {
	for _, sp := range StartPositions {
		if sp == p {
			return true
		}
	}
	return false
}

// OrDefault returns p, or Center when p is empty or unknown.
func (p StartPosition) OrDefault() StartPosition {
	if p.Valid() {
		return p
	}
	return Center
}

// HorizontallyCentered reports whether the anchor centers on the x axis.
func (p StartPosition) HorizontallyCentered() bool {
	return p == TopCenter || p == Center || p == BottomCenter
}

// VerticallyCentered reports whether the anchor centers on the y axis.
func (p StartPosition) VerticallyCentered() bool {
	return p == CenterLeft || p == Center || p == CenterRight
}

// Anchor returns the left/top that places a window of the given size at p
// inside container. Results are not clamped.
func Anchor(p StartPosition, size, container Size) (left, top float64) {
	midX := (container.Width - size.Width) / 2
	midY := (container.Height - size.Height) / 2
	endX := container.Width - size.Width
	endY := container.Height - size.Height

	switch p.OrDefault() {
	case TopLeft:
		return 0, 0
	case TopCenter:
		return midX, 0
	case TopRight:
		return endX, 0
	case CenterLeft:
		return 0, midY
	case CenterRight:
		return endX, midY
	case BottomLeft:
		return 0, endY
	case BottomCenter:
		return midX, endY
	case BottomRight:
		return endX, endY
	default:
		return midX, midY
	}
}

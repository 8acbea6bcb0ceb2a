// Package geom provides the pixel geometry helpers used by the window store:
// measure resolution, start-position anchors and bounds clamping.
package geom

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MeasureKind identifies which variant a Measure holds.
type MeasureKind int

const (
	// MeasureUnset means no value was supplied.
	MeasureUnset MeasureKind = iota
	// MeasureNumber is an absolute pixel value.
	MeasureNumber
	// MeasureString is a textual value such as "50%" or "120".
	MeasureString
)

// Measure is a size or position value: an absolute number, a string
// (percentage or numeric text) or unset. The zero value is unset.
type Measure struct {
	kind MeasureKind
	num  float64
	text string
}

// Px returns an absolute pixel measure.
func Px(v float64) Measure {
	return Measure{kind: MeasureNumber, num: v}
}

// Percent returns a measure relative to the container extent.
func Percent(p float64) Measure {
	return Measure{kind: MeasureString, text: strconv.FormatFloat(p, 'f', -1, 64) + "%"}
}

// Text returns a string measure without interpreting it.
func Text(s string) Measure {
	return Measure{kind: MeasureString, text: s}
}

// ParseMeasure builds a measure from config or script text. Empty input is
// unset, a plain number becomes a pixel measure, anything else is kept as text
// and interpreted at resolve time.
func ParseMeasure(s string) Measure {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Measure{}
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && isFinite(v) {
		return Px(v)
	}
	return Text(trimmed)
}

// Kind reports the variant held by m.
func (m Measure) Kind() MeasureKind { return m.kind }

// IsSet reports whether a value was supplied.
func (m Measure) IsSet() bool { return m.kind != MeasureUnset }

// Resolve converts the measure to pixels against a container extent.
// Finite numbers are returned as-is, "N%" yields container*N/100, other text
// yields its leading numeric value, and everything else yields fallback.
func (m Measure) Resolve(container, fallback float64) float64 {
	switch m.kind {
	case MeasureNumber:
		if isFinite(m.num) {
			return m.num
		}
	case MeasureString:
		trimmed := strings.TrimSpace(m.text)
		if pct, ok := strings.CutSuffix(trimmed, "%"); ok {
			if p, ok := parseLeadingFloat(pct); ok {
				return container * p / 100
			}
		}
		if v, ok := parseLeadingFloat(trimmed); ok {
			return v
		}
	}
	return fallback
}

// String renders the measure the way it would be written in config.
func (m Measure) String() string {
	switch m.kind {
	case MeasureNumber:
		return strconv.FormatFloat(m.num, 'f', -1, 64)
	case MeasureString:
		return m.text
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and unset as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case MeasureNumber:
		if !isFinite(m.num) {
			return []byte("null"), nil
		}
		return json.Marshal(m.num)
	case MeasureString:
		return json.Marshal(m.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, a string or null.
func (m *Measure) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*m = Measure{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Text(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Px(v)
	return nil
}

// parseLeadingFloat parses the longest numeric prefix of s, mirroring how
// CSS-ish values like "120px" are commonly read.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite returns v, or zero when v is NaN or infinite.
func Finite(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

// Sanitize maps NaN, infinities and negative values to zero.
func Sanitize(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}

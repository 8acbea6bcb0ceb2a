package geom

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMeasureResolve(t *testing.T) {
	tests := []struct {
		name      string
		measure   Measure
		container float64
		fallback  float64
		want      float64
	}{
		{"unset uses fallback", Measure{}, 800, 42, 42},
		{"pixels returned as-is", Px(300), 800, 42, 300},
		{"pixels ignore container", Px(1200), 100, 42, 1200},
		{"nan pixels fall back", Px(math.NaN()), 800, 42, 42},
		{"infinite pixels fall back", Px(math.Inf(1)), 800, 42, 42},
		{"percentage of container", Text("50%"), 800, 42, 400},
		{"percentage with spaces", Text("  25% "), 600, 42, 150},
		{"percentage helper", Percent(12.5), 800, 42, 100},
		{"numeric string", Text("120"), 800, 42, 120},
		{"numeric prefix", Text("120px"), 800, 42, 120},
		{"fractional string", Text(".5"), 800, 42, 0.5},
		{"exponent string", Text("1e2"), 800, 42, 100},
		{"garbage falls back", Text("wide"), 800, 42, 42},
		{"bare percent falls back", Text("%"), 800, 42, 42},
		{"empty string falls back", Text(""), 800, 42, 42},
		{"garbage percent falls back", Text("abc%"), 800, 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.measure.Resolve(tt.container, tt.fallback)
			if got != tt.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tt.container, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestParseMeasure(t *testing.T) {
	if m := ParseMeasure(""); m.IsSet() {
		t.Errorf("empty input should be unset, got kind %v", m.Kind())
	}
	if m := ParseMeasure("720"); m.Kind() != MeasureNumber || m.Resolve(0, 0) != 720 {
		t.Errorf("expected pixel measure 720, got %v (%v)", m, m.Kind())
	}
	if m := ParseMeasure("60%"); m.Kind() != MeasureString || m.Resolve(1000, 0) != 600 {
		t.Errorf("expected percentage measure, got %v (%v)", m, m.Kind())
	}
}

func TestMeasureJSON(t *testing.T) {
	type wrapper struct {
		Width  Measure `json:"width"`
		Height Measure `json:"height"`
		Left   Measure `json:"left"`
	}
	in := wrapper{Width: Px(320), Height: Text("50%")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"width":320,"height":"50%","left":null}` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var out wrapper
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Width.Resolve(0, 0) != 320 || out.Height.Resolve(200, 0) != 100 || out.Left.IsSet() {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestAnchor(t *testing.T) {
	size := Size{Width: 200, Height: 100}
	container := Size{Width: 800, Height: 600}

	tests := []struct {
		pos       StartPosition
		left, top float64
	}{
		{TopLeft, 0, 0},
		{TopCenter, 300, 0},
		{TopRight, 600, 0},
		{CenterLeft, 0, 250},
		{Center, 300, 250},
		{CenterRight, 600, 250},
		{BottomLeft, 0, 500},
		{BottomCenter, 300, 500},
		{BottomRight, 600, 500},
		{"", 300, 250},
		{"nowhere", 300, 250},
	}

	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			left, top := Anchor(tt.pos, size, container)
			if left != tt.left || top != tt.top {
				t.Errorf("Anchor(%q) = (%v, %v), want (%v, %v)", tt.pos, left, top, tt.left, tt.top)
			}
		})
	}
}

func TestAnchorCentering(t *testing.T) {
	for _, p := range StartPositions {
		wantH := p == TopCenter || p == Center || p == BottomCenter
		wantV := p == CenterLeft || p == Center || p == CenterRight
		if p.HorizontallyCentered() != wantH {
			t.Errorf("%s: HorizontallyCentered = %v", p, !wantH)
		}
		if p.VerticallyCentered() != wantV {
			t.Errorf("%s: VerticallyCentered = %v", p, !wantV)
		}
	}
}

func TestParseStartPosition(t *testing.T) {
	for _, in := range []string{"bottomRight", "bottom-right", "BOTTOM_RIGHT", " bottom right "} {
		got, err := ParseStartPosition(in)
		if err != nil || got != BottomRight {
			t.Errorf("ParseStartPosition(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStartPosition("middle"); !errors.Is(err, ErrUnknownStartPosition) {
		t.Errorf("expected ErrUnknownStartPosition, got %v", err)
	}
}

func TestSizeBoundsFor(t *testing.T) {
	minimum := Size{Width: 320, Height: 220}

	tests := []struct {
		name      string
		container Size
		want      SizeBounds
	}{
		{"unknown container", Size{}, SizeBounds{320, 220, 320, 220}},
		{"roomy container", Size{Width: 800, Height: 600}, SizeBounds{320, 220, 800, 600}},
		{"narrow container", Size{Width: 200, Height: 100}, SizeBounds{200, 100, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeBoundsFor(tt.container, minimum); got != tt.want {
				t.Errorf("SizeBoundsFor(%+v) = %+v, want %+v", tt.container, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5) = %v", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1) = %v", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11) = %v", got)
	}
	if got := Clamp(math.NaN(), 3, 10); got != 3 {
		t.Errorf("Clamp(NaN) = %v", got)
	}
}

func TestClampPosition(t *testing.T) {
	container := Size{Width: 500, Height: 400}

	left, top := ClampPosition(487.5, -20, Size{Width: 320, Height: 220}, container)
	if left != 180 || top != 0 {
		t.Errorf("got (%v, %v), want (180, 0)", left, top)
	}

	// A window larger than the container pins to the origin.
	left, top = ClampPosition(50, 50, Size{Width: 900, Height: 900}, container)
	if left != 0 || top != 0 {
		t.Errorf("oversized window got (%v, %v), want (0, 0)", left, top)
	}
}

func TestSizeNormalize(t *testing.T) {
	got := Size{Width: 799.6, Height: math.NaN()}.Normalize()
	if got.Width != 800 || got.Height != 0 {
		t.Errorf("Normalize = %+v", got)
	}
	if (Size{Width: -5, Height: 10}).Normalize().Known() {
		t.Error("negative width should normalize to an unknown size")
	}
}

func TestRectInside(t *testing.T) {
	container := Size{Width: 800, Height: 600}
	if !(Rect{Left: 480, Top: 380, Width: 320, Height: 220}).Inside(container) {
		t.Error("rect touching the far edges should be inside")
	}
	if (Rect{Left: 481, Top: 0, Width: 320, Height: 220}).Inside(container) {
		t.Error("rect crossing the right edge should not be inside")
	}
}

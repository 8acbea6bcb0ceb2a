package wm

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
)

const epsilon = 1e-9

func checkInvariants(t *testing.T, s *Store, step string) {
	t.Helper()
	c := s.ContainerSize()
	ids := map[string]bool{}
	focused, visible := 0, 0

	for _, w := range s.Windows() {
		if ids[w.ID] {
			t.Fatalf("%s: duplicate id %q", step, w.ID)
		}
		ids[w.ID] = true
		if w.Status.IsFocused {
			focused++
		}
		if w.Visible() {
			visible++
		}

		st := w.Status
		for _, v := range []float64{st.Left, st.Top, st.Width, st.Height} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%s: window %q has non-finite geometry %+v", step, w.ID, st)
			}
		}
		if !c.Known() {
			continue
		}

		if st.IsMaximized {
			if st.Rect() != (geom.Rect{Width: c.Width, Height: c.Height}) {
				t.Fatalf("%s: maximized window %q is %+v in %+v", step, w.ID, st.Rect(), c)
			}
			continue
		}
		if w.PendingInitialPosition {
			t.Fatalf("%s: window %q still pending in a known container", step, w.ID)
		}
		if st.Left < -epsilon || st.Top < -epsilon ||
			st.Left+st.Width > c.Width+epsilon || st.Top+st.Height > c.Height+epsilon {
			t.Fatalf("%s: window %q out of bounds: %+v in %+v", step, w.ID, st.Rect(), c)
		}
		if st.Width < math.Min(DefaultMinWidth, c.Width)-epsilon ||
			st.Height < math.Min(DefaultMinHeight, c.Height)-epsilon {
			t.Fatalf("%s: window %q below minimum size: %+v in %+v", step, w.ID, st.Rect(), c)
		}
	}

	if focused > 1 {
		t.Fatalf("%s: %d windows focused", step, focused)
	}
	if visible > 0 && focused != 1 {
		t.Fatalf("%s: %d visible windows but %d focused", step, visible, focused)
	}
}

func randomMeasure(r *rand.Rand) geom.Measure {
	switch r.IntN(5) {
	case 0:
		return geom.Measure{}
	case 1:
		return geom.Percent(float64(r.IntN(150)))
	case 2:
		return geom.Text("bogus")
	default:
		return geom.Px(float64(r.IntN(1400)) - 100)
	}
}

func randomParams(r *rand.Rand) CreateParams {
	p := CreateParams{
		InitialStatus: InitialStatus{
			Width:         randomMeasure(r),
			Height:        randomMeasure(r),
			StartPosition: geom.StartPositions[r.IntN(len(geom.StartPositions))],
			AnchorLocked:  r.IntN(3) == 0,
			IsMaximized:   r.IntN(8) == 0,
			IsMinimized:   r.IntN(8) == 0,
		},
		Movable:   Ptr(r.IntN(6) != 0),
		Resizable: Ptr(r.IntN(6) != 0),
	}
	if r.IntN(2) == 0 {
		p.InitialStatus.Left = randomMeasure(r)
		p.InitialStatus.Top = randomMeasure(r)
	}
	if r.IntN(3) == 0 {
		p.ID = fmt.Sprintf("app-%d", r.IntN(4))
		p.Unique = r.IntN(2) == 0
	}
	return p
}

func TestInvariantsHoldUnderRandomCommands(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			r := rand.New(rand.NewPCG(seed, seed*7919))
			s := New(Options{})

			pick := func() string {
				ws := s.Windows()
				if len(ws) == 0 || r.IntN(10) == 0 {
					return "missing"
				}
				return ws[r.IntN(len(ws))].ID
			}

			for step := 0; step < 400; step++ {
				var op string
				switch r.IntN(13) {
				case 0:
					op = "container"
					w, h := float64(r.IntN(1600)), float64(r.IntN(1200))
					if r.IntN(10) == 0 {
						w = 0
					}
					s.SetContainerSize(geom.Size{Width: w, Height: h})
				case 1, 2:
					op = "open"
					s.OpenWindow(randomParams(r))
				case 3:
					op = "close"
					s.CloseWindow(pick())
				case 4:
					op = "focus"
					s.FocusWindow(pick())
				case 5:
					op = "minimize"
					s.SetWindowMinimized(pick(), r.IntN(2) == 0)
				case 6:
					op = "maximize"
					s.SetWindowMaximized(pick(), r.IntN(2) == 0)
				case 7:
					op = "moving"
					s.SetWindowMoving(pick(), r.IntN(3) != 0)
				case 8:
					op = "resizing"
					s.SetWindowResizing(pick(), r.IntN(3) != 0)
				case 9, 10:
					op = "capture"
					s.MouseCapture(Delta{
						MovementX: float64(r.IntN(401) - 200),
						MovementY: float64(r.IntN(401) - 200),
					})
				case 11:
					op = "sync"
					s.SyncWindowContentSize(pick(), ContentSize{
						Width:       float64(r.IntN(1800)),
						Height:      float64(r.IntN(1400)),
						FrameWidth:  2,
						FrameHeight: 3,
					})
				case 12:
					op = "release"
					s.RemoveMovingResizing()
				}
				checkInvariants(t, s, fmt.Sprintf("step %d (%s)", step, op))
			}
		})
	}
}

func TestMaximizeRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 1024))
	for i := 0; i < 100; i++ {
		s := newStore(t, float64(400+r.IntN(1200)), float64(300+r.IntN(900)))
		id := s.OpenWindow(randomParams(r))
		if mustWindow(t, s, id).Status.IsMaximized {
			continue
		}
		before := mustWindow(t, s, id).Status.Rect()

		s.SetWindowMaximized(id, true)
		s.SetWindowMaximized(id, false)

		if got := mustWindow(t, s, id).Status.Rect(); got != before {
			t.Fatalf("round trip %d: got %+v, want %+v", i, got, before)
		}
	}
}

package app

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/floatwm/internal/config"
	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/tape"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// newDesktop returns a 100x41 cell desktop: 800x640 px of window area and
// the dock on the bottom row.
func newDesktop(t *testing.T) *Desktop {
	t.Helper()
	d := New(Options{})
	d.Resize(100, 41)
	return d
}

func openAt(d *Desktop, id string, w, h, left, top float64) string {
	return d.Store.OpenWindow(wm.CreateParams{
		ID:    id,
		Title: id,
		InitialStatus: wm.InitialStatus{
			Width:  geom.Px(w),
			Height: geom.Px(h),
			Left:   geom.Px(left),
			Top:    geom.Px(top),
		},
	})
}

func ids(windows []wm.Window) []string {
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.ID
	}
	return out
}

func TestTitleButtons(t *testing.T) {
	all := wm.DefaultPermissions()
	noMax := all
	noMax.Maximizable = false
	noBar := all
	noBar.TitleBar = false

	tests := []struct {
		name  string
		perms wm.Permissions
		width int
		want  []TitleButton
	}{
		{
			name:  "all buttons packed right",
			perms: all,
			width: 20,
			want: []TitleButton{
				{Kind: ButtonMinimize, X0: 10, X1: 13},
				{Kind: ButtonMaximize, X0: 13, X1: 16},
				{Kind: ButtonClose, X0: 16, X1: 19},
			},
		},
		{
			name:  "missing permission drops its button",
			perms: noMax,
			width: 20,
			want: []TitleButton{
				{Kind: ButtonMinimize, X0: 13, X1: 16},
				{Kind: ButtonClose, X0: 16, X1: 19},
			},
		},
		{
			name:  "no title bar",
			perms: noBar,
			width: 20,
		},
		{
			name:  "too narrow",
			perms: all,
			width: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleButtons(wm.Window{Permissions: tt.perms}, tt.width)
			if !slices.Equal(got, tt.want) {
				t.Errorf("TitleButtons() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTitleButtonsHidden(t *testing.T) {
	config.HideWindowButtons = true
	t.Cleanup(func() { config.HideWindowButtons = false })

	if got := TitleButtons(wm.Window{Permissions: wm.DefaultPermissions()}, 40); got != nil {
		t.Errorf("TitleButtons() = %+v with buttons hidden", got)
	}
}

func TestDockItems(t *testing.T) {
	windows := []wm.Window{
		{ID: "a", Title: "alpha", Status: wm.Status{IsMinimized: true}},
		{ID: "b", Title: "beta"},
		{ID: "c", Status: wm.Status{IsMinimized: true}},
	}

	got := DockItems(windows, 80)
	want := []DockItem{
		{ID: "a", Label: "[alpha]", X0: 1, X1: 8},
		{ID: "c", Label: "[c]", X0: 9, X1: 12},
	}
	if !slices.Equal(got, want) {
		t.Errorf("DockItems() = %+v, want %+v", got, want)
	}

	if got := DockItems(windows, 10); len(got) != 1 {
		t.Errorf("DockItems(width 10) = %+v, want only alpha", got)
	}

	long := []wm.Window{{ID: "l", Title: strings.Repeat("x", 40), Status: wm.Status{IsMinimized: true}}}
	if got := DockItems(long, 80); len(got) != 1 || ansi.StringWidth(got[0].Label) != 18 {
		t.Errorf("long title label = %+v", got)
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines([]string{"hello", "wide line here"}, 6, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "hello " {
		t.Errorf("first line = %q", lines[0])
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 6 {
			t.Errorf("line %d width = %d, want 6", i, w)
		}
	}
	if fitLines([]string{"x"}, 0, 2) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestCellRectOf(t *testing.T) {
	d := newDesktop(t)
	openAt(d, "a", 400, 320, 80, 64)
	w, _ := d.Store.Window("a")

	if got, want := d.CellRectOf(w), (CellRect{X: 10, Y: 4, W: 50, H: 20}); got != want {
		t.Errorf("CellRectOf() = %+v, want %+v", got, want)
	}

	config.DockbarPosition = "top"
	t.Cleanup(func() { config.DockbarPosition = "bottom" })
	if got := d.CellRectOf(w); got.Y != 5 {
		t.Errorf("with the dock on top Y = %d, want 5", got.Y)
	}
	if d.GetDockRow() != 0 {
		t.Errorf("dock row = %d, want 0", d.GetDockRow())
	}
}

func TestDrawOrderAndHitTesting(t *testing.T) {
	d := newDesktop(t)
	openAt(d, "a", 400, 320, 0, 0)
	openAt(d, "b", 400, 320, 80, 64)
	d.Store.OpenWindow(wm.CreateParams{
		ID:      "o",
		Overlay: wm.Ptr(true),
		InitialStatus: wm.InitialStatus{
			Width: geom.Px(320), Height: geom.Px(240), Left: geom.Px(480), Top: geom.Px(400),
		},
	})
	openAt(d, "m", 320, 240, 0, 400)
	d.Store.SetWindowMinimized("m", true)
	d.Store.FocusWindow("a")

	if got, want := ids(d.DrawOrder()), []string{"b", "a", "o"}; !slices.Equal(got, want) {
		t.Errorf("DrawOrder() = %v, want %v", got, want)
	}

	// a and b overlap at cell (20, 10); a is focused so it is on top.
	if w, _, ok := d.WindowAt(20, 10); !ok || w.ID != "a" {
		t.Errorf("WindowAt(20, 10) = %q, %v, want a", w.ID, ok)
	}
	if _, _, ok := d.WindowAt(2, 30); ok {
		t.Error("minimized window was hit")
	}
}

func TestLogRing(t *testing.T) {
	r := NewLogRing(3)
	_, _ = r.Write([]byte("1\n2\n"))
	_, _ = r.Write([]byte("3\n4\n"))
	if got, want := r.Lines(), []string{"2", "3", "4"}; !slices.Equal(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}

func TestDesktopLogsToRing(t *testing.T) {
	d := New(Options{})
	d.Log().Info("hello ring")
	found := false
	for _, l := range d.Logs.Lines() {
		if strings.Contains(l, "hello ring") {
			found = true
		}
	}
	if !found {
		t.Errorf("log ring = %v", d.Logs.Lines())
	}
}

func TestRegisterClick(t *testing.T) {
	d := New(Options{})
	t0 := time.Unix(1000, 0)

	steps := []struct {
		id   string
		at   time.Duration
		want bool
	}{
		{"a", 0, false},
		{"a", 100 * time.Millisecond, true},
		{"a", 200 * time.Millisecond, false},
		{"a", 200*time.Millisecond + 2*DoubleClickInterval, false},
		{"b", 200*time.Millisecond + 2*DoubleClickInterval + time.Millisecond, false},
	}
	for i, s := range steps {
		if got := d.registerClick(s.id, t0.Add(s.at)); got != s.want {
			t.Errorf("step %d: registerClick(%q) = %v, want %v", i, s.id, got, s.want)
		}
	}
}

func TestSyncContentSizesGrowsAutoWidth(t *testing.T) {
	d := New(Options{})
	d.Resize(125, 51)

	id := d.Store.OpenWindow(wm.CreateParams{
		Content:       NewTextContent(strings.Repeat("x", 100) + "\nsecond"),
		InitialStatus: wm.InitialStatus{Height: geom.Px(300), StartPosition: geom.TopLeft},
	})
	d.SyncContentSizes()

	w, _ := d.Store.Window(id)
	// 100 columns of 8 px plus one cell of frame on each side.
	if w.Status.Width != 816 {
		t.Errorf("width = %v, want 816", w.Status.Width)
	}
	if w.Status.Height != 300 {
		t.Errorf("fixed height changed to %v", w.Status.Height)
	}
	if w.ContentSize == nil {
		t.Error("content size not recorded")
	}
}

func TestNewNoteTitlesAndCounts(t *testing.T) {
	d := newDesktop(t)
	var opened []string
	d.OnOpen = func(id string) { opened = append(opened, id) }

	first := d.NewNote()
	second := d.NewNote()
	if first == second {
		t.Fatal("notes share an id")
	}
	w, _ := d.Store.Window(second)
	if w.Title != "Note 2" {
		t.Errorf("title = %q, want Note 2", w.Title)
	}
	if !slices.Equal(opened, []string{first, second}) {
		t.Errorf("OnOpen saw %v", opened)
	}

	d.CloseAll()
	if d.Store.Len() != 0 {
		t.Errorf("windows after CloseAll = %d", d.Store.Len())
	}
}

func TestRenderWindowFillsRect(t *testing.T) {
	config.UseASCIIOnly = true
	t.Cleanup(func() { config.UseASCIIOnly = false })

	w := wm.Window{
		Title:       "alpha",
		Content:     NewTextContent("body text that is far too long"),
		Permissions: wm.DefaultPermissions(),
		Status:      wm.Status{IsFocused: true},
	}
	out := renderWindow(w, CellRect{W: 20, H: 5})
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	for i, l := range lines {
		if got := ansi.StringWidth(l); got != 20 {
			t.Errorf("line %d width = %d, want 20: %q", i, got, ansi.Strip(l))
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "alpha") {
		t.Errorf("title bar %q has no title", ansi.Strip(lines[0]))
	}
	if renderWindow(w, CellRect{W: 1, H: 1}) != "" {
		t.Error("degenerate rect should render nothing")
	}
}

func TestCanvasShowsWindowsAndDock(t *testing.T) {
	d := newDesktop(t)
	openAt(d, "alpha", 400, 320, 80, 64)
	openAt(d, "gamma", 400, 320, 0, 0)
	d.Store.SetWindowMinimized("gamma", true)

	out := ansi.Strip(d.GetCanvas().Render())
	if !strings.Contains(out, "alpha") {
		t.Error("canvas has no window title")
	}
	if !strings.Contains(out, "[gamma]") {
		t.Error("dock has no minimized window")
	}
}

func TestTapePlayback(t *testing.T) {
	d := newDesktop(t)
	cmds, err := tape.ParseString("open id=x width=400 height=300\nminimize x\n")
	if err != nil {
		t.Fatal(err)
	}

	if cmd := d.PlayTape("demo", cmds, time.Millisecond); cmd == nil {
		t.Fatal("PlayTape returned no tick")
	}
	player := d.Tape

	d.StepTape()
	if _, ok := d.Store.Window("x"); !ok {
		t.Fatal("first step did not open x")
	}
	if done, total := player.Progress(); done != 1 || total != 2 {
		t.Errorf("progress = %d/%d, want 1/2", done, total)
	}

	if cmd := d.ToggleTapePause(); cmd != nil {
		t.Error("pausing should not tick")
	}
	if cmd := d.handleTapeStep(tapeStepMsg{player: player}); cmd != nil {
		t.Error("paused player stepped")
	}
	if cmd := d.ToggleTapePause(); cmd == nil {
		t.Error("resuming should tick")
	}

	if cmd := d.handleTapeStep(tapeStepMsg{player: player}); cmd != nil {
		t.Error("finished player kept ticking")
	}
	if w, _ := d.Store.Window("x"); !w.Status.IsMinimized {
		t.Error("second step did not minimize x")
	}
	if !player.Done() || player.Err != nil {
		t.Errorf("player done = %v, err = %v", player.Done(), player.Err)
	}
	if !strings.Contains(d.tapeStatus(), "done") {
		t.Errorf("status = %q", d.tapeStatus())
	}

	// A replaced player's ticks are dropped.
	d.PlayTape("other", cmds, time.Millisecond)
	if cmd := d.handleTapeStep(tapeStepMsg{player: player}); cmd != nil {
		t.Error("stale tick was handled")
	}
}

func TestTapePlaybackStopsOnError(t *testing.T) {
	d := newDesktop(t)
	cmds, err := tape.ParseString("open id=x width=400 height=300\nexpect x width=1\nclose x\n")
	if err != nil {
		t.Fatal(err)
	}
	d.PlayTape("bad", cmds, time.Millisecond)
	for range 3 {
		d.StepTape()
	}
	if d.Tape.Err == nil {
		t.Fatal("expected a playback error")
	}
	if _, ok := d.Store.Window("x"); !ok {
		t.Error("commands after the failure ran")
	}
}

func TestLoadTapeFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tape", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("clear\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.tape"), 0o750); err != nil {
		t.Fatal(err)
	}

	files, err := LoadTapeFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "a" {
		t.Fatalf("files = %+v, want only a", files)
	}

	path, err := ResolveTape(dir, "a")
	if err != nil || path != filepath.Join(dir, "a.tape") {
		t.Errorf("ResolveTape(a) = %q, %v", path, err)
	}
	if _, err := ResolveTape(dir, "missing"); err == nil {
		t.Error("ResolveTape(missing) should fail")
	}
}

package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// InputHandler handles key and mouse messages for the desktop.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler installs the input handler. It lives in another package
// that imports this one.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init opens the welcome window and starts anything deferred before the
// program ran.
func (d *Desktop) Init() tea.Cmd {
	d.Open(ComponentWelcome, nil)
	return d.takePending()
}

// Update handles one message and then feeds fresh content measurements to
// the store.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)

	case tapeStepMsg:
		cmd = d.handleTapeStep(msg)

	case tea.BlurMsg:
		// The pointer may be released outside the terminal.
		d.Store.RemoveMovingResizing()

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg:
		if inputHandler != nil {
			_, cmd = inputHandler(msg, d)
		}
	}

	d.SyncContentSizes()
	return d, tea.Batch(cmd, d.takePending())
}

// SyncContentSizes reports the natural size of every visible window's
// content, frame included.
func (d *Desktop) SyncContentSizes() {
	cw, ch := d.CellSize()
	for _, w := range d.Store.Windows() {
		if !w.Visible() {
			continue
		}
		c, ok := w.Content.(Content)
		if !ok {
			continue
		}
		cols, rows := c.Measure()
		d.Store.SyncWindowContentSize(w.ID, wm.ContentSize{
			Width:       float64(cols) * cw,
			Height:      float64(rows) * ch,
			FrameWidth:  2 * cw,
			FrameHeight: 2 * ch,
		})
	}
}

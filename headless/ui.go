package headless

import (
	"slices"

	"github.com/tsawler/formctl/control"
	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

// UI records what the control layer asks the external surfaces to show.
// It implements control.Picker, control.ShadowSurface and control.Toolbar.
type UI struct {
	// Open picker requests by control id
	Pickers map[string]control.PickerRequest

	// Boxes currently painted
	Boxes []layout.ShadowBox

	ToolbarVisible bool
	ToolbarTarget  control.ToolbarTarget
	ToolbarAnchor  *model.Point

	// Calls counts calls per method name
	Calls map[string]int
}

// NewUI creates an empty recorder.
func NewUI() *UI {
	return &UI{
		Pickers: make(map[string]control.PickerRequest),
		Calls:   make(map[string]int),
	}
}

// Options returns the control options that route every surface to u.
func (u *UI) Options() []control.Option {
	return []control.Option{
		control.WithPicker(u),
		control.WithShadowSurface(u),
		control.WithToolbar(u),
	}
}

func (u *UI) Open(req control.PickerRequest) {
	u.Calls["open"]++
	u.Pickers[req.ControlID] = req
}

func (u *UI) Close(controlID string) {
	u.Calls["close"]++
	delete(u.Pickers, controlID)
}

func (u *UI) Show(boxes []layout.ShadowBox, _ layout.PageGeometry) {
	u.Calls["show"]++
	u.Boxes = slices.Clone(boxes)
}

func (u *UI) Clear() {
	u.Calls["clear"]++
	u.Boxes = nil
}

func (u *UI) Toggle(visible bool, target control.ToolbarTarget, anchor *model.Point) {
	u.Calls["toggle"]++
	u.ToolbarVisible = visible
	u.ToolbarTarget = target
	u.ToolbarAnchor = anchor
}

package control

import (
	"time"

	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

// ControlChangeEvent is the event bus name of control change notifications
const ControlChangeEvent = "controlChange"

// Draw is the rendering engine as seen by the control layer.
type Draw interface {
	IsReadonly() bool

	// ElementList returns the list the caret is in: a table cell's list when
	// the position context is inside a table, the zone's list otherwise.
	ElementList() *model.ElementList

	// OriginalElementList returns the top level list of the active zone.
	OriginalElementList() *model.ElementList

	// ZoneElementList returns the top level list of a zone.
	ZoneElementList(zone model.Zone) *model.ElementList

	SpliceElementList(list *model.ElementList, start, deleteCount int, items ...*model.Element)
	Render(opts RenderOptions)
	SetEditorData(doc *model.Document)

	Range() RangeManager
	History() HistoryManager
	Position() PositionManager
	Cursor() CursorManager
	Pages() PageLayout
	Listener() *Listener
	EventBus() EventBus
}

// RenderOptions controls one render pass
type RenderOptions struct {
	CurIndex        *int
	IsCompute       bool // relayout; false when only the caret moved
	IsSubmitHistory bool
	IsSetCursor     bool
}

// RangeManager owns the selection. Range returns the live range; mutating
// it moves the selection.
type RangeManager interface {
	Range() *model.Range
	SetRange(start, end int)
	ReplaceRange(r model.Range)
	ClearRange()
}

// HistoryManager owns undo checkpoints
type HistoryManager interface {
	PopUndo()
	SubmitHistory(curIndex int)
}

// PositionManager exposes the laid out positions of the current list
type PositionManager interface {
	PositionList() []model.ElementPosition
	PositionContext() model.PositionContext
	SetPositionContext(ctx model.PositionContext)
}

// CursorManager scrolls the caret into view
type CursorManager interface {
	MoveCursorToVisible(pos model.ElementPosition, direction Direction)
}

// PageLayout exposes the row layout of every page
type PageLayout interface {
	PageRowList() [][]*model.Row
	Geometry() layout.PageGeometry
	PageNo() int
}

// Listener is the single-slot callback registry of the editor
type Listener struct {
	ControlChange func(ctl *model.Control)
}

// EventBus is the subscription side of the editor's event bus
type EventBus interface {
	IsSubscribe(event string) bool
	Emit(event string, payload any)
}

// Picker is the popup surface of select and date controls
type Picker interface {
	Open(req PickerRequest)
	Close(controlID string)
}

// PickerRequest describes a popup to open
type PickerRequest struct {
	ControlID string
	Control   *model.Control
	Anchor    model.Point // caret position in scrollable space

	// Date is the current value of a date control, nil when empty or
	// unparseable
	Date *time.Time
}

// ShadowSurface paints shadow boxes
type ShadowSurface interface {
	Show(boxes []layout.ShadowBox, geometry layout.PageGeometry)
	Clear()
}

// Toolbar is a contextual toolbar attached to the active control
type Toolbar interface {
	Toggle(visible bool, target ToolbarTarget, anchor *model.Point)
}

// ToolbarTarget identifies what the toolbar is attached to
type ToolbarTarget struct {
	ID   string
	Type string
}

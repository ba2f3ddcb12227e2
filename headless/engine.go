package headless

import (
	"github.com/tsawler/formctl/control"
	"github.com/tsawler/formctl/eventbus"
	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

// Engine is an in-memory control.Draw. It is not safe for concurrent use.
type Engine struct {
	doc      *model.Document
	zone     model.Zone
	readonly bool

	rng     model.Range
	posCtx  model.PositionContext
	history *History
	cursor  *Cursor

	geometry layout.PageGeometry
	metrics  Metrics
	pageNo   int

	listener *control.Listener
	bus      control.EventBus

	// Renders records every render request in order
	Renders []control.RenderOptions

	// Splices counts SpliceElementList calls
	Splices int
}

// Option configures an Engine
type Option func(*Engine)

// WithReadonly makes the document read-only.
func WithReadonly(readonly bool) Option {
	return func(e *Engine) {
		e.readonly = readonly
	}
}

// WithGeometry sets the page geometry.
func WithGeometry(g layout.PageGeometry) Option {
	return func(e *Engine) {
		e.geometry = g
	}
}

// WithMetrics sets the layout cell size.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithEventBus replaces the default in-process bus.
func WithEventBus(bus control.EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// DefaultGeometry is an A4-sized page at 96 dpi with 100/120 margins.
func DefaultGeometry() layout.PageGeometry {
	return layout.PageGeometry{
		Width:   794,
		Height:  1123,
		Gap:     20,
		Margins: [4]float64{100, 120, 100, 120},
	}
}

// New creates an engine over doc with the caret nowhere.
func New(doc *model.Document, opts ...Option) *Engine {
	if doc == nil {
		doc = model.NewDocument()
	}
	e := &Engine{
		doc:      doc,
		zone:     model.ZoneMain,
		rng:      model.Range{StartIndex: -1, EndIndex: -1},
		history:  &History{},
		cursor:   &Cursor{},
		geometry: DefaultGeometry(),
		metrics:  DefaultMetrics(),
		listener: &control.Listener{},
		bus:      eventbus.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the live document.
func (e *Engine) Document() *model.Document {
	return e.doc
}

// SetZone moves the caret into another zone and out of any table.
func (e *Engine) SetZone(z model.Zone) {
	e.zone = z
	e.posCtx = model.PositionContext{}
}

// Zone returns the zone the caret is in.
func (e *Engine) Zone() model.Zone {
	return e.zone
}

// SetReadonly toggles read-only mode.
func (e *Engine) SetReadonly(readonly bool) {
	e.readonly = readonly
}

func (e *Engine) IsReadonly() bool {
	return e.readonly
}

func (e *Engine) ElementList() *model.ElementList {
	if e.posCtx.IsTable {
		if cell := e.OriginalElementList().At(e.posCtx.Index).Cell(e.posCtx.TrIndex, e.posCtx.TdIndex); cell != nil {
			return &cell.Value
		}
	}
	return e.OriginalElementList()
}

func (e *Engine) OriginalElementList() *model.ElementList {
	return e.doc.Zone(e.zone)
}

func (e *Engine) ZoneElementList(z model.Zone) *model.ElementList {
	return e.doc.Zone(z)
}

func (e *Engine) SpliceElementList(list *model.ElementList, start, deleteCount int, items ...*model.Element) {
	e.Splices++
	list.Splice(start, deleteCount, items...)
}

// Render records opts, places the caret at CurIndex and submits a history
// checkpoint when asked to. Layout is computed on demand, so IsCompute has
// no further effect.
func (e *Engine) Render(opts control.RenderOptions) {
	e.Renders = append(e.Renders, opts)
	cur := e.rng.EndIndex
	if opts.CurIndex != nil {
		cur = *opts.CurIndex
		e.rng = model.Range{StartIndex: cur, EndIndex: cur}
	}
	if opts.IsSubmitHistory {
		e.history.SubmitHistory(cur)
	}
}

// SetEditorData replaces every zone and resets the position context.
func (e *Engine) SetEditorData(doc *model.Document) {
	for _, z := range model.Zones {
		*e.doc.Zone(z) = *doc.Zone(z)
	}
	e.posCtx = model.PositionContext{}
}

func (e *Engine) Range() control.RangeManager {
	return rangeManager{e}
}

func (e *Engine) History() control.HistoryManager {
	return e.history
}

// Checkpoints returns the undo stack.
func (e *Engine) Checkpoints() *History {
	return e.history
}

func (e *Engine) Position() control.PositionManager {
	return positionManager{e}
}

func (e *Engine) Cursor() control.CursorManager {
	return e.cursor
}

// Scrolls returns the recorded scroll requests.
func (e *Engine) Scrolls() []Scroll {
	return e.cursor.Scrolls
}

func (e *Engine) Pages() control.PageLayout {
	return pageLayout{e}
}

func (e *Engine) Listener() *control.Listener {
	return e.listener
}

func (e *Engine) EventBus() control.EventBus {
	return e.bus
}

// rangeManager exposes the engine's live range
type rangeManager struct{ e *Engine }

func (r rangeManager) Range() *model.Range {
	return &r.e.rng
}

func (r rangeManager) SetRange(start, end int) {
	r.e.rng = model.Range{StartIndex: start, EndIndex: end}
}

func (r rangeManager) ReplaceRange(rng model.Range) {
	r.e.rng = rng
}

func (r rangeManager) ClearRange() {
	r.e.rng = model.Range{StartIndex: -1, EndIndex: -1}
}

// positionManager lays out the list the caret is in
type positionManager struct{ e *Engine }

func (p positionManager) PositionList() []model.ElementPosition {
	positions, _ := Layout(*p.e.ElementList(), p.e.geometry, p.e.metrics)
	return positions
}

func (p positionManager) PositionContext() model.PositionContext {
	return p.e.posCtx
}

func (p positionManager) SetPositionContext(ctx model.PositionContext) {
	p.e.posCtx = ctx
}

// pageLayout lays out the list the caret is in
type pageLayout struct{ e *Engine }

func (p pageLayout) PageRowList() [][]*model.Row {
	_, pages := Layout(*p.e.ElementList(), p.e.geometry, p.e.metrics)
	return pages
}

func (p pageLayout) Geometry() layout.PageGeometry {
	return p.e.geometry
}

func (p pageLayout) PageNo() int {
	return p.e.pageNo
}

// History is a stack of undo checkpoints, each the caret index it was
// taken at.
type History struct {
	Stack []int
	Pops  int
}

func (h *History) PopUndo() {
	h.Pops++
	if n := len(h.Stack); n > 0 {
		h.Stack = h.Stack[:n-1]
	}
}

func (h *History) SubmitHistory(curIndex int) {
	h.Stack = append(h.Stack, curIndex)
}

// Scroll is one scroll-into-view request
type Scroll struct {
	Position  model.ElementPosition
	Direction control.Direction
}

// Cursor records scroll requests
type Cursor struct {
	Scrolls []Scroll
}

func (c *Cursor) MoveCursorToVisible(pos model.ElementPosition, direction control.Direction) {
	c.Scrolls = append(c.Scrolls, Scroll{Position: pos, Direction: direction})
}

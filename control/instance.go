package control

import (
	"github.com/tsawler/formctl/model"
	"github.com/tsawler/formctl/text"
)

// Key names handled by controls
const (
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

// KeyEvent is a key press routed to the active control
type KeyEvent struct {
	Key   string
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// Context overrides the list and range an operation works on. A nil
// Context, or nil fields, mean the engine's current list and range.
type Context struct {
	Range       *model.Range
	ElementList *model.ElementList
}

// RuleOption relaxes the rules a mutation is checked against
type RuleOption struct {
	// IgnoreDisabledRule lets programmatic callers edit disabled controls
	IgnoreDisabledRule bool

	// AddPlaceholder controls whether clearing re-adds the placeholder.
	// Default: true
	AddPlaceholder *bool
}

func (o *RuleOption) ignoreDisabled() bool {
	return o != nil && o.IgnoreDisabledRule
}

func (o *RuleOption) addPlaceholder() bool {
	return o == nil || o.AddPlaceholder == nil || *o.AddPlaceholder
}

// Instance is the protocol every control variant implements.
type Instance interface {
	// Element returns the element the instance is bound to.
	Element() *model.Element
	SetElement(e *model.Element)

	// Value returns the VALUE elements of the run.
	Value(ctx *Context) []*model.Element

	// SetValue replaces the selected part of the value with data and
	// returns the new caret index, or -1 when the control rejects it.
	SetValue(data []*model.Element, ctx *Context, opts *RuleOption) int

	// Keydown handles a key and returns the new caret index. The boolean
	// is false when the key is not handled and default editing applies.
	Keydown(evt KeyEvent) (int, bool)

	// Cut removes the selected part of the value and returns the caret
	// index.
	Cut() int
}

// Selector is implemented by variants whose value is chosen rather than
// typed: select, checkbox, radio and date.
type Selector interface {
	Instance

	// SetSelect applies value: an option code for select and radio,
	// comma separated codes for checkbox, a formatted date for date.
	// It returns the caret index, or -1 when rejected.
	SetSelect(value string, ctx *Context, opts *RuleOption) int

	// ClearSelect empties the value and returns the caret index, or -1.
	ClearSelect(ctx *Context, opts *RuleOption) int
}

// Popup is implemented by variants that drive a picker surface. Awake and
// Destroy are idempotent.
type Popup interface {
	Awake()
	Destroy()
	IsPopup() bool
}

// valueClearer is implemented by the typed variants
type valueClearer interface {
	ClearValue(ctx *Context, opts *RuleOption) int
}

// base carries what every variant shares.
type base struct {
	element *model.Element
	control *Control
}

func (b *base) Element() *model.Element {
	return b.element
}

func (b *base) SetElement(e *model.Element) {
	if e != nil {
		b.element = e
	}
}

func (b *base) descriptor() *model.Control {
	return b.element.Control
}

func (b *base) disabled(opts *RuleOption) bool {
	return !opts.ignoreDisabled() && b.element.Control != nil && b.element.Control.Disabled
}

func (b *base) list(ctx *Context) *model.ElementList {
	return b.control.listOf(ctx)
}

func (b *base) rng(ctx *Context) *model.Range {
	return b.control.rangeOf(ctx)
}

// Value collects the VALUE elements around the range start, bounded by
// the run's prefix and postfix.
func (b *base) Value(ctx *Context) []*model.Element {
	list := *b.list(ctx)
	r := b.rng(ctx)
	if r == nil {
		return nil
	}
	start := list.At(r.StartIndex)
	if start == nil || start.ControlID == "" {
		return nil
	}
	var data []*model.Element
	for i := r.StartIndex; i >= 0; i-- {
		e := list[i]
		if e.ControlID != start.ControlID || e.ControlComponent == model.ComponentPrefix {
			break
		}
		if e.ControlComponent == model.ComponentValue {
			data = append([]*model.Element{e}, data...)
		}
	}
	for i := r.StartIndex + 1; i < len(list); i++ {
		e := list[i]
		if e.ControlID != start.ControlID || e.ControlComponent == model.ComponentPostfix {
			break
		}
		if e.ControlComponent == model.ComponentValue {
			data = append(data, e)
		}
	}
	return data
}

// insertValue replaces the selection with data as VALUE elements.
func (b *base) insertValue(data []*model.Element, ctx *Context) int {
	c := b.control
	list := b.list(ctx)
	r := b.rng(ctx)
	if r == nil {
		return -1
	}
	c.ShrinkBoundary(ctx)
	start, end := r.StartIndex, r.EndIndex
	if start != end {
		c.draw.SpliceElementList(list, start+1, end-start)
	} else {
		c.RemovePlaceholder(start, ctx)
	}
	anchor := valueAnchor(list.At(start))
	at := start + 1
	for i, d := range data {
		n := model.Merge(anchor, d)
		if n.Type == model.TypeText {
			n.Type = model.TypeControl
		}
		n.ControlComponent = model.ComponentValue
		model.FormatElementContext(*list, model.ElementList{n}, start)
		c.draw.SpliceElementList(list, at+i, 0, n)
	}
	return at + len(data) - 1
}

// clearValue deletes the selection and restores the placeholder when the
// value became empty.
func (b *base) clearValue(ctx *Context) int {
	list := b.list(ctx)
	r := b.rng(ctx)
	if r == nil {
		return -1
	}
	start, end := r.StartIndex, r.EndIndex
	if end > start {
		b.control.draw.SpliceElementList(list, start+1, end-start)
	}
	if len(b.Value(ctx)) == 0 {
		b.control.AddPlaceholder(start, ctx)
	}
	return start
}

// textKeydown is the Backspace/Delete handling of typed variants.
func (b *base) textKeydown(evt KeyEvent) (int, bool) {
	if evt.Key != KeyBackspace && evt.Key != KeyDelete {
		return 0, false
	}
	c := b.control
	list := c.draw.ElementList()
	r := c.draw.Range().Range()
	if r == nil || !r.IsValid() {
		return 0, false
	}
	c.ShrinkBoundary(nil)
	start, end := r.StartIndex, r.EndIndex
	startEl, endEl := list.At(start), list.At(end)
	if startEl == nil || endEl == nil {
		return 0, false
	}
	if start != end {
		return b.clearValue(nil), true
	}

	if evt.Key == KeyBackspace {
		if startEl.ControlComponent == model.ComponentPrefix ||
			startEl.ControlComponent == model.ComponentPlaceholder ||
			endEl.ControlComponent == model.ComponentPostfix {
			return c.RemoveControl(start, nil)
		}
		c.draw.SpliceElementList(list, start, 1)
		if len(b.Value(nil)) == 0 {
			c.AddPlaceholder(start-1, nil)
		}
		return start - 1, true
	}

	next := list.At(end + 1)
	if next == nil {
		return 0, false
	}
	if (startEl.ControlComponent == model.ComponentPrefix && next.ControlComponent == model.ComponentPlaceholder) ||
		next.ControlComponent == model.ComponentPostfix ||
		startEl.ControlComponent == model.ComponentPlaceholder {
		return c.RemoveControl(start, nil)
	}
	c.draw.SpliceElementList(list, start+1, 1)
	if len(b.Value(nil)) == 0 {
		c.AddPlaceholder(start, nil)
	}
	return start, true
}

// textCut deletes the selection of a typed variant.
func (b *base) textCut() int {
	c := b.control
	r := c.draw.Range().Range()
	if r == nil {
		return -1
	}
	if b.disabled(nil) {
		return -1
	}
	c.ShrinkBoundary(nil)
	if r.IsCollapsed() {
		return r.StartIndex
	}
	return b.clearValue(nil)
}

// clearRun removes everything between the run's prefix and postfix and
// returns the index of the last prefix element, or -1.
func (b *base) clearRun(ctx *Context, opts *RuleOption) int {
	if b.disabled(opts) {
		return -1
	}
	list := b.list(ctx)
	r := b.rng(ctx)
	if r == nil {
		return -1
	}
	span, ok := spanAt(*list, r.StartIndex)
	if !ok {
		return -1
	}
	if n := span.PostfixStart - span.PrefixEnd - 1; n > 0 {
		b.control.draw.SpliceElementList(list, span.PrefixEnd+1, n)
	}
	if opts.addPlaceholder() {
		b.control.AddPlaceholder(span.PrefixEnd, ctx)
	}
	b.descriptor().Code = ""
	return span.PrefixEnd
}

// insertUnits inserts the units of s as VALUE elements after prefixEnd and
// returns the index of the last inserted element.
func (b *base) insertUnits(s string, prefixEnd int, ctx *Context) int {
	c := b.control
	list := b.list(ctx)
	anchor := valueAnchor(list.At(prefixEnd))
	units := text.Split(s)
	for i, u := range units {
		n := model.Merge(anchor, &model.Element{Type: model.TypeControl, Value: u})
		n.ControlComponent = model.ComponentValue
		model.FormatElementContext(*list, model.ElementList{n}, prefixEnd)
		c.draw.SpliceElementList(list, prefixEnd+1+i, 0, n)
	}
	return prefixEnd + len(units)
}

// valueAnchor returns the element whose attributes inserted values
// inherit. After a prefix or a non text-like element only the control
// membership is kept and the control's own style applies.
func valueAnchor(start *model.Element) *model.Element {
	if start == nil {
		return &model.Element{}
	}
	if !start.Type.IsTextLike() || start.ControlComponent == model.ComponentPrefix {
		a := start.PickControlAttrs()
		if start.Control != nil {
			a.Style = start.Control.Style
		}
		return a
	}
	return start.OmitType()
}

// runSpan locates a run inside a list. PrefixEnd is the last prefix
// element, PostfixStart the first postfix element (End+1 without one).
type runSpan struct {
	Start        int
	End          int
	PrefixEnd    int
	PostfixStart int
}

// spanAt returns the span of the run containing index. ok is false when
// index is outside any run or the run has no prefix.
func spanAt(list model.ElementList, index int) (runSpan, bool) {
	e := list.At(index)
	if e == nil || e.ControlID == "" {
		return runSpan{}, false
	}
	id := e.ControlID
	s := runSpan{Start: index, End: index}
	for s.Start > 0 && list[s.Start-1].ControlID == id {
		s.Start--
	}
	for s.End < len(list)-1 && list[s.End+1].ControlID == id {
		s.End++
	}
	s.PrefixEnd = s.Start - 1
	for i := s.Start; i <= s.End && list[i].ControlComponent == model.ComponentPrefix; i++ {
		s.PrefixEnd = i
	}
	s.PostfixStart = s.End + 1
	for i := s.End; i > s.PrefixEnd && list[i].ControlComponent == model.ComponentPostfix; i-- {
		s.PostfixStart = i
	}
	return s, s.PrefixEnd >= s.Start
}

// splitValue turns a string into one element per editable unit.
func splitValue(s string) []*model.Element {
	units := text.Split(s)
	data := make([]*model.Element, len(units))
	for i, u := range units {
		data[i] = &model.Element{Value: u}
	}
	return data
}

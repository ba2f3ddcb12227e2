package control

import (
	"github.com/tsawler/formctl/internal/logger"
	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

const logModule = "control"

// Control coordinates the control runs of an editor. It owns the single
// active control slot, the control group index and the shadow boxes of the
// active control.
type Control struct {
	draw Draw
	opts Options
	log  logger.Logger

	active Instance
	groups *GroupIndex
	boxes  []layout.ShadowBox

	deferred  *Deferred
	scheduler Scheduler
}

// New creates a Control on top of a rendering engine.
func New(draw Draw, opts ...Option) *Control {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Control{
		draw:     draw,
		opts:     o,
		log:      o.Logger,
		groups:   NewGroupIndex(),
		deferred: &Deferred{},
	}
	c.scheduler = o.Scheduler
	if c.scheduler == nil {
		c.scheduler = c.deferred
	}
	c.RebuildGroups()
	return c
}

// RepaintOptions controls RepaintControl
type RepaintOptions struct {
	// CurIndex places the caret; nil clears the range
	CurIndex *int

	SkipCompute bool
	SkipHistory bool
}

// CursorPosition is a caret location, possibly inside a table cell
type CursorPosition struct {
	Index        int
	IsTable      bool
	TrIndex      int
	TdIndex      int
	TdValueIndex int
}

func (c *Control) listOf(ctx *Context) *model.ElementList {
	if ctx != nil && ctx.ElementList != nil {
		return ctx.ElementList
	}
	return c.draw.ElementList()
}

func (c *Control) rangeOf(ctx *Context) *model.Range {
	if ctx != nil && ctx.Range != nil {
		return ctx.Range
	}
	return c.draw.Range().Range()
}

func (c *Control) newInstance(e *model.Element) Instance {
	switch e.Control.Type {
	case model.ControlSelect:
		return newSelect(e, c)
	case model.ControlCheckbox:
		return newCheckbox(e, c)
	case model.ControlRadio:
		return newRadio(e, c)
	case model.ControlDate:
		return newDate(e, c)
	case model.ControlForm:
		return newForm(e, c)
	default:
		return newText(e, c)
	}
}

// caretAnchor returns the caret position in scrollable space.
func (c *Control) caretAnchor() model.Point {
	r := c.draw.Range().Range()
	positions := c.draw.Position().PositionList()
	if r == nil || r.EndIndex < 0 || r.EndIndex >= len(positions) {
		return model.Point{}
	}
	p := positions[r.EndIndex]
	g := c.draw.Pages().Geometry()
	return model.Point{
		X: p.Coordinate.LeftTop.X,
		Y: p.Coordinate.LeftTop.Y + g.PageOffset(p.PageNo),
	}
}

// caretElement returns the element at the range start of the current list.
func (c *Control) caretElement() *model.Element {
	r := c.draw.Range().Range()
	if r == nil {
		return nil
	}
	return c.draw.ElementList().At(r.StartIndex)
}

// InitControl activates the control under the caret. Moving within the
// active control only re-awakens or closes its popup; entering another
// control replaces the active one; leaving every control destroys it.
func (c *Control) InitControl() {
	if c.draw.IsReadonly() {
		return
	}
	e := c.caretElement()
	if e == nil || e.ControlID == "" || e.Control == nil {
		c.DestroyControl()
		return
	}
	if c.active != nil {
		if e.ControlID == c.active.Element().ControlID {
			if p, ok := c.active.(Popup); ok {
				if e.ControlComponent == model.ComponentPostfix {
					p.Destroy()
				} else {
					p.Awake()
				}
			}
			return
		}
		c.destroyActive()
	}

	inst := c.newInstance(e)
	c.active = inst
	if p, ok := inst.(Popup); ok {
		p.Awake()
	}
	c.log.Debug(logModule, "control activated", map[string]interface{}{
		"controlId": e.ControlID,
		"type":      e.Control.Type.String(),
	})

	c.scheduleNotify(func() *model.Control {
		if value := inst.Value(nil); len(value) > 0 {
			return model.PickControl(value)
		}
		return e.Control.Clone()
	}, func() {
		if c.active == inst {
			c.renderShadowBox()
		}
	})
}

// DestroyControl deactivates the active control, closes its popup, removes
// its shadow boxes and schedules a nil change notification.
func (c *Control) DestroyControl() {
	if c.active == nil {
		return
	}
	c.destroyActive()
	c.scheduleNotify(func() *model.Control { return nil }, nil)
}

func (c *Control) destroyActive() {
	if p, ok := c.active.(Popup); ok {
		p.Destroy()
	}
	id := c.active.Element().ControlID
	c.active = nil
	c.destroyShadowBox()
	c.log.Debug(logModule, "control destroyed", map[string]interface{}{"controlId": id})
}

// scheduleNotify queues one change notification. payload is evaluated when
// the notification fires so it reflects the final state.
func (c *Control) scheduleNotify(payload func() *model.Control, after func()) {
	c.scheduler.Schedule(func() {
		listener := c.draw.Listener()
		bus := c.draw.EventBus()
		direct := listener != nil && listener.ControlChange != nil
		subscribed := bus != nil && bus.IsSubscribe(ControlChangeEvent)
		if direct || subscribed {
			ctl := payload()
			if direct {
				listener.ControlChange(ctl)
			}
			if subscribed {
				var p any
				if ctl != nil {
					p = ctl
				}
				bus.Emit(ControlChangeEvent, p)
			}
		}
		if after != nil {
			after()
		}
	})
}

// Flush runs pending notifications and returns how many ran. It is a no-op
// when a custom Scheduler is installed.
func (c *Control) Flush() int {
	return c.deferred.Drain()
}

// RepaintControl places the caret (or clears the range) and renders.
func (c *Control) RepaintControl(opts RepaintOptions) {
	ro := RenderOptions{
		IsCompute:       !opts.SkipCompute,
		IsSubmitHistory: !opts.SkipHistory,
	}
	if opts.CurIndex == nil {
		c.draw.Range().ClearRange()
	} else {
		idx := *opts.CurIndex
		c.draw.Range().SetRange(idx, idx)
		ro.CurIndex = &idx
		ro.IsSetCursor = true
	}
	c.draw.Render(ro)
}

// ReAwakeControl rebinds the active control to the caret element after the
// stream was re-spliced and reopens an open popup at the new position.
func (c *Control) ReAwakeControl() {
	if c.active == nil {
		return
	}
	c.active.SetElement(c.caretElement())
	if p, ok := c.active.(Popup); ok && p.IsPopup() {
		p.Destroy()
		p.Awake()
	}
}

// ActiveControl returns the active control, or nil.
func (c *Control) ActiveControl() Instance {
	return c.active
}

// SetValue forwards to the active control.
func (c *Control) SetValue(data []*model.Element) (int, error) {
	if c.active == nil {
		return 0, ErrNoActiveControl
	}
	defer c.checkRuns("setValue")
	return c.active.SetValue(data, nil, nil), nil
}

// Keydown forwards to the active control. The boolean is false when the
// key should fall through to default editing.
func (c *Control) Keydown(evt KeyEvent) (int, bool, error) {
	if c.active == nil {
		return 0, false, ErrNoActiveControl
	}
	idx, ok := c.active.Keydown(evt)
	if ok {
		c.checkRuns("keydown")
	}
	return idx, ok, nil
}

// Cut forwards to the active control.
func (c *Control) Cut() (int, error) {
	if c.active == nil {
		return 0, ErrNoActiveControl
	}
	defer c.checkRuns("cut")
	return c.active.Cut(), nil
}

// IsRangeCanCaptureEvent reports whether the active control should receive
// input at the current range: a caret on its postfix or a range inside it.
func (c *Control) IsRangeCanCaptureEvent() bool {
	if c.active == nil {
		return false
	}
	r := c.draw.Range().Range()
	if r == nil || !r.IsValid() {
		return false
	}
	list := c.draw.ElementList()
	start := list.At(r.StartIndex)
	if start == nil {
		return false
	}
	if r.IsCollapsed() && start.ControlComponent == model.ComponentPostfix {
		return true
	}
	return c.IsRangeWithinControl()
}

// IsRangeInPostfix reports whether the caret sits on the active control's
// postfix.
func (c *Control) IsRangeInPostfix() bool {
	if c.active == nil {
		return false
	}
	r := c.draw.Range().Range()
	if r == nil || !r.IsCollapsed() {
		return false
	}
	e := c.draw.ElementList().At(r.StartIndex)
	return e != nil && e.ControlComponent == model.ComponentPostfix
}

// IsRangeWithinControl reports whether the range starts and ends inside
// one control, short of its postfix.
func (c *Control) IsRangeWithinControl() bool {
	r := c.draw.Range().Range()
	if r == nil || !r.IsValid() {
		return false
	}
	list := c.draw.ElementList()
	start, end := list.At(r.StartIndex), list.At(r.EndIndex)
	if start == nil || end == nil {
		return false
	}
	return start.ControlID != "" &&
		start.ControlID == end.ControlID &&
		end.ControlComponent != model.ComponentPostfix
}

// IsDisabledControl reports whether the active control is disabled.
func (c *Control) IsDisabledControl() bool {
	if c.active == nil {
		return false
	}
	e := c.active.Element()
	return e.Control != nil && e.Control.Disabled
}

// Groups returns the control group index.
func (c *Control) Groups() *GroupIndex {
	return c.groups
}

// RebuildGroups refills the group index from every zone.
func (c *Control) RebuildGroups() {
	lists := make([]model.ElementList, 0, len(model.Zones))
	for _, z := range model.Zones {
		if l := c.draw.ZoneElementList(z); l != nil {
			lists = append(lists, *l)
		}
	}
	c.groups.Rebuild(lists...)
}

// checkRuns logs every run inconsistency found in the zones. It never
// repairs anything.
func (c *Control) checkRuns(operation string) {
	if !c.opts.CheckRuns {
		return
	}
	for _, z := range model.Zones {
		list := c.draw.ZoneElementList(z)
		if list == nil {
			continue
		}
		if err := model.CheckRuns(*list); err != nil {
			c.log.Warn(logModule, "inconsistent control runs", map[string]interface{}{
				"operation": operation,
				"zone":      z.String(),
				"error":     err.Error(),
			})
		}
	}
}

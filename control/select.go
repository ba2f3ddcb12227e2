package control

import (
	"strings"
	"time"

	"github.com/tsawler/formctl/model"
	"github.com/tsawler/formctl/text"
)

// Select picks one option of the control's value sets.
type Select struct {
	base
	popup
}

func newSelect(e *model.Element, c *Control) *Select {
	s := &Select{base: base{element: e, control: c}}
	s.popup.owner = &s.base
	return s
}

// SetValue always rejects typed input.
func (s *Select) SetValue([]*model.Element, *Context, *RuleOption) int {
	return -1
}

// SetSelect replaces the value with the label of code.
func (s *Select) SetSelect(code string, ctx *Context, opts *RuleOption) int {
	if s.disabled(opts) {
		return -1
	}
	vs, ok := s.descriptor().FindValueSet(code)
	if !ok {
		return -1
	}
	noPlaceholder := false
	prefixEnd := s.clearRun(ctx, &RuleOption{
		IgnoreDisabledRule: opts.ignoreDisabled(),
		AddPlaceholder:     &noPlaceholder,
	})
	if prefixEnd < 0 {
		return -1
	}
	s.control.RemovePlaceholder(prefixEnd, ctx)
	newIndex := s.insertUnits(vs.Value, prefixEnd, ctx)
	s.descriptor().Code = code

	if ctx == nil || ctx.Range == nil {
		s.control.RepaintControl(RepaintOptions{CurIndex: &newIndex})
		s.Destroy()
	}
	return newIndex
}

func (s *Select) ClearSelect(ctx *Context, opts *RuleOption) int {
	return s.clearRun(ctx, opts)
}

func (s *Select) Keydown(evt KeyEvent) (int, bool) {
	if s.disabled(nil) {
		return 0, false
	}
	return optionKeydown(&s.base, evt, func() int { return s.ClearSelect(nil, nil) })
}

func (s *Select) Cut() int {
	r := s.control.draw.Range().Range()
	if r == nil {
		return -1
	}
	s.control.ShrinkBoundary(nil)
	if r.IsCollapsed() {
		return r.StartIndex
	}
	return s.ClearSelect(nil, nil)
}

// optionKeydown removes the control when the caret sits on decoration and
// calls clear otherwise.
func optionKeydown(b *base, evt KeyEvent, clear func() int) (int, bool) {
	if evt.Key != KeyBackspace && evt.Key != KeyDelete {
		return 0, false
	}
	c := b.control
	list := c.draw.ElementList()
	r := c.draw.Range().Range()
	if r == nil {
		return 0, false
	}
	start, end := r.StartIndex, r.EndIndex
	startEl, endEl := list.At(start), list.At(end)
	if startEl == nil || endEl == nil {
		return 0, false
	}
	if start == end {
		onDecoration := startEl.ControlComponent == model.ComponentPlaceholder
		if evt.Key == KeyBackspace {
			onDecoration = onDecoration ||
				startEl.ControlComponent == model.ComponentPrefix ||
				endEl.ControlComponent == model.ComponentPostfix
		} else if next := list.At(end + 1); next != nil {
			onDecoration = onDecoration ||
				next.ControlComponent == model.ComponentPostfix ||
				(startEl.ControlComponent == model.ComponentPrefix && next.ControlComponent == model.ComponentPlaceholder)
		}
		if onDecoration {
			return c.RemoveControl(start, nil)
		}
	}
	idx := clear()
	return idx, idx >= 0
}

// popup tracks the picker state of select and date controls.
type popup struct {
	owner *base
	open  bool
}

// Awake opens the picker at the caret.
func (p *popup) Awake() {
	if p.open || p.owner.disabled(nil) {
		return
	}
	c := p.owner.control
	if c.opts.Picker != nil {
		req := PickerRequest{
			ControlID: p.owner.element.ControlID,
			Control:   p.owner.element.Control,
			Anchor:    c.caretAnchor(),
		}
		if ctl := req.Control; ctl != nil && ctl.Type == model.ControlDate {
			req.Date = p.currentDate(ctl.DateFormat)
		}
		c.opts.Picker.Open(req)
	}
	p.open = true
}

// currentDate parses the run's value, nil when it is empty or does not
// match format.
func (p *popup) currentDate(format string) *time.Time {
	var sb strings.Builder
	for _, e := range p.owner.Value(nil) {
		sb.WriteString(e.Value)
	}
	t, err := text.ParseDate(sb.String(), format)
	if err != nil {
		return nil
	}
	return &t
}

// Destroy closes the picker.
func (p *popup) Destroy() {
	if !p.open {
		return
	}
	if picker := p.owner.control.opts.Picker; picker != nil {
		picker.Close(p.owner.element.ControlID)
	}
	p.open = false
}

// IsPopup reports whether the picker is open.
func (p *popup) IsPopup() bool {
	return p.open
}

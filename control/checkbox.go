package control

import (
	"slices"
	"strings"

	"github.com/tsawler/formctl/model"
)

// Checkbox selects any number of options, bounded by the control's Min
// and Max.
type Checkbox struct {
	options
}

func newCheckbox(e *model.Element, c *Control) *Checkbox {
	return &Checkbox{options{base{element: e, control: c}, model.ComponentCheckbox}}
}

// SetSelect applies comma separated codes.
func (cb *Checkbox) SetSelect(value string, ctx *Context, opts *RuleOption) int {
	return cb.SetCodes(splitCodes(value), ctx, opts)
}

// SetCodes checks exactly the glyphs whose code is in codes. It returns
// -1 when the control is disabled or codes violate Min/Max.
func (cb *Checkbox) SetCodes(codes []string, ctx *Context, opts *RuleOption) int {
	ctl := cb.descriptor()
	if ctl.Max > 0 && len(codes) > ctl.Max {
		return -1
	}
	if len(codes) > 0 && ctl.Min > 0 && len(codes) < ctl.Min {
		return -1
	}
	return cb.apply(codes, ctx, opts)
}

func (cb *Checkbox) ClearSelect(ctx *Context, opts *RuleOption) int {
	return cb.apply(nil, ctx, opts)
}

// Radio selects at most one option.
type Radio struct {
	options
}

func newRadio(e *model.Element, c *Control) *Radio {
	return &Radio{options{base{element: e, control: c}, model.ComponentRadio}}
}

// SetSelect checks the glyph of code and unchecks the others.
func (rd *Radio) SetSelect(code string, ctx *Context, opts *RuleOption) int {
	var codes []string
	if code != "" {
		codes = []string{code}
	}
	return rd.SetCodes(codes, ctx, opts)
}

// SetCodes accepts zero or one code.
func (rd *Radio) SetCodes(codes []string, ctx *Context, opts *RuleOption) int {
	if len(codes) > 1 {
		return -1
	}
	return rd.apply(codes, ctx, opts)
}

func (rd *Radio) ClearSelect(ctx *Context, opts *RuleOption) int {
	return rd.apply(nil, ctx, opts)
}

// options is the glyph based selection shared by checkbox and radio.
type options struct {
	base
	glyph model.ControlComponent
}

// SetValue always rejects typed input.
func (o *options) SetValue([]*model.Element, *Context, *RuleOption) int {
	return -1
}

// apply updates glyph states in place and stores the joined codes.
func (o *options) apply(codes []string, ctx *Context, opts *RuleOption) int {
	if o.disabled(opts) {
		return -1
	}
	list := *o.list(ctx)
	r := o.rng(ctx)
	if r == nil {
		return -1
	}
	span, ok := spanAt(list, r.StartIndex)
	if !ok {
		return -1
	}
	for i := span.Start; i <= span.End; i++ {
		e := list[i]
		if e.ControlComponent != o.glyph {
			continue
		}
		state := e.Checkbox
		if o.glyph == model.ComponentRadio {
			state = e.Radio
		}
		if state != nil {
			state.Value = slices.Contains(codes, state.Code)
		}
	}
	o.descriptor().Code = strings.Join(codes, ",")
	return r.StartIndex
}

// Keydown removes the control on Backspace and Delete.
func (o *options) Keydown(evt KeyEvent) (int, bool) {
	if o.disabled(nil) {
		return 0, false
	}
	if evt.Key != KeyBackspace && evt.Key != KeyDelete {
		return 0, false
	}
	r := o.control.draw.Range().Range()
	if r == nil {
		return 0, false
	}
	return o.control.RemoveControl(r.StartIndex, nil)
}

// Cut leaves option controls unchanged.
func (o *options) Cut() int {
	r := o.control.draw.Range().Range()
	if r == nil {
		return -1
	}
	return r.StartIndex
}

func splitCodes(value string) []string {
	if value == "" {
		return nil
	}
	var codes []string
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

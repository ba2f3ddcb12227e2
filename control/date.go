package control

import (
	"time"

	"github.com/tsawler/formctl/model"
	"github.com/tsawler/formctl/text"
)

// Date is a typed control with a date picker.
type Date struct {
	base
	popup
}

func newDate(e *model.Element, c *Control) *Date {
	d := &Date{base: base{element: e, control: c}}
	d.popup.owner = &d.base
	return d
}

func (d *Date) SetValue(data []*model.Element, ctx *Context, opts *RuleOption) int {
	if d.disabled(opts) {
		return -1
	}
	return d.insertValue(data, ctx)
}

// ClearValue deletes the selected value.
func (d *Date) ClearValue(ctx *Context, opts *RuleOption) int {
	if d.disabled(opts) {
		return -1
	}
	return d.clearValue(ctx)
}

// SetSelect replaces the whole value with an already formatted date.
func (d *Date) SetSelect(date string, ctx *Context, opts *RuleOption) int {
	if d.disabled(opts) {
		return -1
	}
	noPlaceholder := false
	prefixEnd := d.clearRun(ctx, &RuleOption{
		IgnoreDisabledRule: opts.ignoreDisabled(),
		AddPlaceholder:     &noPlaceholder,
	})
	if prefixEnd < 0 {
		return -1
	}
	newIndex := d.insertUnits(date, prefixEnd, ctx)

	if ctx == nil || ctx.Range == nil {
		d.control.RepaintControl(RepaintOptions{CurIndex: &newIndex})
		d.Destroy()
	}
	return newIndex
}

// SelectTime formats t with the control's DateFormat and selects it.
func (d *Date) SelectTime(t time.Time, ctx *Context, opts *RuleOption) int {
	return d.SetSelect(text.FormatDate(t, d.descriptor().DateFormat), ctx, opts)
}

func (d *Date) ClearSelect(ctx *Context, opts *RuleOption) int {
	return d.clearRun(ctx, opts)
}

func (d *Date) Keydown(evt KeyEvent) (int, bool) {
	if d.disabled(nil) {
		return 0, false
	}
	return d.textKeydown(evt)
}

func (d *Date) Cut() int {
	return d.textCut()
}

package control

import "github.com/tsawler/formctl/model"

// Form is a composite control whose runs are held together by a control
// group. It may embed tables.
type Form struct {
	base
}

func newForm(e *model.Element, c *Control) *Form {
	return &Form{base{element: e, control: c}}
}

func (f *Form) SetValue(data []*model.Element, ctx *Context, opts *RuleOption) int {
	if f.disabled(opts) {
		return -1
	}
	return f.insertValue(data, ctx)
}

// ClearValue deletes the selected value.
func (f *Form) ClearValue(ctx *Context, opts *RuleOption) int {
	if f.disabled(opts) {
		return -1
	}
	return f.clearValue(ctx)
}

// Keydown deletes an embedded table when Backspace is pressed right after
// it. Every other key falls through.
func (f *Form) Keydown(evt KeyEvent) (int, bool) {
	if f.disabled(nil) || evt.Key != KeyBackspace {
		return 0, false
	}
	c := f.control
	r := c.draw.Range().Range()
	if r == nil || !r.IsCollapsed() {
		return 0, false
	}
	list := c.draw.ElementList()
	if !list.At(r.StartIndex).IsTable() {
		return 0, false
	}
	c.draw.SpliceElementList(list, r.StartIndex, 1)
	return max(r.StartIndex-1, 0), true
}

func (f *Form) Cut() int {
	return f.textCut()
}

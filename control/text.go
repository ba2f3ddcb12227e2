package control

import "github.com/tsawler/formctl/model"

// Text is a free text control.
type Text struct {
	base
}

func newText(e *model.Element, c *Control) *Text {
	return &Text{base{element: e, control: c}}
}

func (t *Text) SetValue(data []*model.Element, ctx *Context, opts *RuleOption) int {
	if t.disabled(opts) {
		return -1
	}
	return t.insertValue(data, ctx)
}

// ClearValue deletes the selected value and restores the placeholder when
// nothing is left.
func (t *Text) ClearValue(ctx *Context, opts *RuleOption) int {
	if t.disabled(opts) {
		return -1
	}
	return t.clearValue(ctx)
}

func (t *Text) Keydown(evt KeyEvent) (int, bool) {
	if t.disabled(nil) {
		return 0, false
	}
	return t.textKeydown(evt)
}

func (t *Text) Cut() int {
	return t.textCut()
}

package control

import "github.com/tsawler/formctl/model"

// ShrinkBoundary narrows the range to the value zone of the control it
// starts in (or ends in, when it starts outside any control). A run that
// only shows its placeholder collapses the range after the prefix.
func (c *Control) ShrinkBoundary(ctx *Context) {
	list := *c.listOf(ctx)
	r := c.rangeOf(ctx)
	if r == nil || !r.IsValid() {
		return
	}
	anchor := r.StartIndex
	if e := list.At(anchor); e == nil || e.ControlID == "" {
		anchor = r.EndIndex
	}
	span, ok := spanAt(list, anchor)
	if !ok {
		return
	}
	lo, hi := span.PrefixEnd, span.PostfixStart-1

	placeholderOnly := true
	for i := lo + 1; i <= hi; i++ {
		if list[i].ControlComponent != model.ComponentPlaceholder {
			placeholderOnly = false
			break
		}
	}
	if placeholderOnly {
		r.StartIndex, r.EndIndex = lo, lo
		return
	}
	r.StartIndex = clampIndex(r.StartIndex, lo, hi)
	r.EndIndex = clampIndex(r.EndIndex, r.StartIndex, hi)
}

func clampIndex(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

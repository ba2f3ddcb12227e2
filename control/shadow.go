package control

import (
	"slices"

	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

// ControlElements returns the elements of the active control, or of its
// whole group, around the range start together with their positions.
func (c *Control) ControlElements() ([]*model.Element, []model.ElementPosition) {
	if c.active == nil {
		return nil, nil
	}
	r := c.draw.Range().Range()
	if r == nil {
		return nil, nil
	}
	active := c.active.Element()
	match := func(e *model.Element) bool {
		if active.ControlGroupID != "" && e.ControlGroupID == active.ControlGroupID {
			return true
		}
		return e.ControlID == active.ControlID
	}
	list := *c.draw.ElementList()
	positions := c.draw.Position().PositionList()

	lo, hi := r.StartIndex, r.StartIndex
	if lo < 0 || lo >= len(list) || !match(list[lo]) {
		return nil, nil
	}
	for lo > 0 && match(list[lo-1]) {
		lo--
	}
	for hi < len(list)-1 && match(list[hi+1]) {
		hi++
	}
	elements := slices.Clone(list[lo : hi+1])
	var pos []model.ElementPosition
	for i := lo; i <= hi && i < len(positions); i++ {
		pos = append(pos, positions[i])
	}
	return elements, pos
}

// ShadowBoxes returns the boxes currently painted for the active control.
func (c *Control) ShadowBoxes() []layout.ShadowBox {
	return slices.Clone(c.boxes)
}

// renderShadowBox replaces the painted boxes with those of the active
// control and shows the toolbar at the first box.
func (c *Control) renderShadowBox() {
	if c.active == nil {
		return
	}
	id := c.active.Element().RunID()
	if id == "" {
		return
	}
	_, positions := c.ControlElements()
	if len(positions) == 0 {
		return
	}
	pages := c.draw.Pages()
	g := pages.Geometry()
	boxes := layout.ShadowBoxes(layout.ShadowInput{
		ID:        id,
		Positions: positions,
		PageRows:  pages.PageRowList(),
		Geometry:  g,
	})

	if len(c.boxes) > 0 && c.opts.Surface != nil {
		c.opts.Surface.Clear()
	}
	c.boxes = boxes
	if c.opts.Surface != nil && len(boxes) > 0 {
		c.opts.Surface.Show(boxes, g)
	}
	if anchor, ok := layout.Anchor(boxes, g); ok && c.opts.Toolbar != nil {
		c.opts.Toolbar.Toggle(true, ToolbarTarget{ID: id, Type: "control"}, &anchor)
	}
}

// destroyShadowBox removes every painted box and hides the toolbar.
func (c *Control) destroyShadowBox() {
	c.boxes = nil
	if c.opts.Surface != nil {
		c.opts.Surface.Clear()
	}
	if c.opts.Toolbar != nil {
		c.opts.Toolbar.Toggle(false, ToolbarTarget{}, nil)
	}
}

package control

import (
	"github.com/tsawler/formctl/model"
	"github.com/tsawler/formctl/text"
)

// RemoveControl deletes the run at startIndex together with every run of
// its control group. It returns the index left of the deleted span, or
// false when the run may not be deleted.
func (c *Control) RemoveControl(startIndex int, ctx *Context) (int, bool) {
	list := c.listOf(ctx)
	start := list.At(startIndex)
	if start == nil || start.ControlID == "" || !start.IsDeletable() {
		return 0, false
	}
	id := start.RunID()
	left, right := startIndex, startIndex
	for left > 0 && (*list)[left-1].RunID() == id {
		left--
	}
	for right < len(*list)-1 && (*list)[right+1].RunID() == id {
		right++
	}

	// Group members separated from the struck run go too.
	type chunk struct{ start, end int }
	var chunks []chunk
	for i := 0; i < len(*list); {
		if (*list)[i].RunID() != id {
			i++
			continue
		}
		j := i
		for j < len(*list)-1 && (*list)[j+1].RunID() == id {
			j++
		}
		chunks = append(chunks, chunk{i, j})
		i = j + 1
	}

	removed := make(map[string]bool)
	for _, ch := range chunks {
		for i := ch.start; i <= ch.end; i++ {
			e := (*list)[i]
			if !e.IsDeletable() {
				return 0, false
			}
			removed[e.ControlID] = true
		}
	}

	newIndex := left - 1
	for k := len(chunks) - 1; k >= 0; k-- {
		ch := chunks[k]
		c.draw.SpliceElementList(list, ch.start, ch.end-ch.start+1)
		if ch.end < left {
			newIndex -= ch.end - ch.start + 1
		}
	}
	// Runs of the group in other zones or cells keep their membership.
	if group := start.ControlGroupID; group != "" && len(removed) == len(c.groups.Members(group)) {
		c.groups.RemoveGroup(group)
	} else {
		for controlID := range removed {
			c.groups.RemoveMember(controlID)
		}
	}
	c.log.Info(logModule, "control removed", map[string]interface{}{
		"runId":    id,
		"controls": len(removed),
		"chunks":   len(chunks),
	})
	c.checkRuns("removeControl")
	return max(newIndex, 0), true
}

// RemovePlaceholder deletes the placeholder of the run when the element at
// or after startIndex is a placeholder. The first deletion replaces the
// latest undo checkpoint with one at startIndex.
func (c *Control) RemovePlaceholder(startIndex int, ctx *Context) {
	list := c.listOf(ctx)
	start := list.At(startIndex)
	if start == nil {
		return
	}
	next := list.At(startIndex + 1)
	if start.ControlComponent != model.ComponentPlaceholder &&
		(next == nil || next.ControlComponent != model.ComponentPlaceholder) {
		return
	}
	controlID := start.ControlID
	if controlID == "" && next != nil {
		controlID = next.ControlID
	}
	submitted := false
	for i := startIndex; i < len(*list); {
		e := (*list)[i]
		if i > startIndex && e.ControlID != controlID {
			break
		}
		if e.ControlComponent != model.ComponentPlaceholder {
			i++
			continue
		}
		if !submitted {
			submitted = true
			c.draw.History().PopUndo()
			c.draw.History().SubmitHistory(startIndex)
		}
		c.draw.SpliceElementList(list, i, 1)
	}
}

// AddPlaceholder inserts the configured placeholder after startIndex when
// the run has neither value nor placeholder.
func (c *Control) AddPlaceholder(startIndex int, ctx *Context) {
	list := c.listOf(ctx)
	start := list.At(startIndex)
	if start == nil || start.ControlID == "" || start.Control == nil {
		return
	}
	ctl := start.Control
	if ctl.Placeholder == "" {
		return
	}
	span, _ := spanAt(*list, startIndex)
	for i := span.Start; i <= span.End; i++ {
		switch (*list)[i].ControlComponent {
		case model.ComponentValue, model.ComponentPlaceholder:
			return
		}
	}
	for p, unit := range text.Split(ctl.Placeholder) {
		n := &model.Element{
			Type:             model.TypeControl,
			Value:            unit,
			Style:            ctl.Style,
			ControlID:        start.ControlID,
			ControlGroupID:   start.ControlGroupID,
			ControlComponent: model.ComponentPlaceholder,
			Control:          ctl,
		}
		if color := c.opts.Format.PlaceholderColor; color != "" {
			n.Color = color
		}
		model.FormatElementContext(*list, model.ElementList{n}, startIndex)
		c.draw.SpliceElementList(list, startIndex+p+1, 0, n)
	}
}

// MoveCursor moves a caret off decoration: onto the last postfix element
// from a postfix, past the prefix from a prefix, and before the
// placeholder from a placeholder. Values are left alone.
func (c *Control) MoveCursor(pos CursorPosition) (int, *model.Element) {
	list := *c.draw.OriginalElementList()
	idx := pos.Index
	if pos.IsTable {
		cell := list.At(pos.Index).Cell(pos.TrIndex, pos.TdIndex)
		if cell == nil {
			return pos.TdValueIndex, nil
		}
		list = cell.Value
		idx = pos.TdValueIndex
	}
	e := list.At(idx)
	if e == nil {
		return idx, nil
	}

	switch e.ControlComponent {
	case model.ComponentPostfix:
		i := idx
		for i < len(list)-1 && list[i+1].ControlID == e.ControlID {
			i++
		}
		return i, list[i]
	case model.ComponentPrefix:
		i := idx
		for i < len(list)-1 && list[i+1].ControlID == e.ControlID &&
			list[i+1].ControlComponent == model.ComponentPrefix {
			i++
		}
		return i, list[i]
	case model.ComponentPlaceholder:
		for i := idx - 1; i >= 0; i-- {
			p := list[i]
			if p.ControlID != e.ControlID || p.ControlComponent == model.ComponentPrefix {
				return i, p
			}
		}
	}
	return idx, e
}

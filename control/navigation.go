package control

import "github.com/tsawler/formctl/model"

// Direction of a caret move between controls
type Direction int

const (
	DirectionDown Direction = iota
	DirectionUp
)

// MaxTableDepth bounds how deep walkers descend into nested tables.
const MaxTableDepth = 32

// NextControlContext is where the caret goes when moving to another
// control. NextIndex is relative to the list PositionContext selects.
type NextControlContext struct {
	PositionContext model.PositionContext
	NextIndex       int
}

// navHit is a control element found by a scan
type navHit struct {
	ctx   model.PositionContext
	index int
}

// scanNext returns the first element at or after start that belongs to a
// control other than skipID. With enterTables set, table cells are searched
// in row order before the table's own position is considered.
func scanNext(list model.ElementList, start int, skipID string, enterTables bool) (navHit, bool) {
	for e := max(start, 0); e < len(list); e++ {
		el := list[e]
		if el.IsTable() && enterTables {
			for r, row := range el.Rows {
				for d, cell := range row.Cells {
					if h, ok := scanNext(cell.Value, 0, skipID, false); ok {
						return navHit{ctx: cellContext(e, el, r, d), index: h.index}, true
					}
				}
			}
		}
		if el.ControlID == "" || el.ControlID == skipID {
			continue
		}
		return navHit{index: e}, true
	}
	return navHit{}, false
}

// scanPrev is scanNext backwards. The hit is moved back onto the last
// value, or the last prefix element of an empty control.
func scanPrev(list model.ElementList, start int, skipID string, enterTables bool) (navHit, bool) {
	for e := min(start, len(list)-1); e >= 0; e-- {
		el := list[e]
		if el.IsTable() && enterTables {
			for r := len(el.Rows) - 1; r >= 0; r-- {
				row := el.Rows[r]
				for d := len(row.Cells) - 1; d >= 0; d-- {
					cell := row.Cells[d]
					if h, ok := scanPrev(cell.Value, len(cell.Value)-1, skipID, false); ok {
						return navHit{ctx: cellContext(e, el, r, d), index: h.index}, true
					}
				}
			}
		}
		if el.ControlID == "" || el.ControlID == skipID {
			continue
		}
		i := e
		for i > 0 && list[i].ControlID == el.ControlID &&
			list[i].ControlComponent != model.ComponentValue &&
			list[i].ControlComponent != model.ComponentPrefix {
			i--
		}
		return navHit{index: i}, true
	}
	return navHit{}, false
}

func cellContext(index int, table *model.Element, r, d int) model.PositionContext {
	row := table.Rows[r]
	return model.PositionContext{
		IsTable: true,
		Index:   index,
		TrIndex: r,
		TdIndex: d,
		TableID: table.ID,
		TrID:    row.ID,
		TdID:    row.Cells[d].ID,
	}
}

// NextControlContext finds the control after the active one: first in the
// current list, then in the following cells of the enclosing table, then
// after that table. Zones are never crossed. It returns nil when there is
// no active control or nothing follows.
func (c *Control) NextControlContext() *NextControlContext {
	return c.adjacentControl(DirectionDown)
}

// PreControlContext is NextControlContext backwards.
func (c *Control) PreControlContext() *NextControlContext {
	return c.adjacentControl(DirectionUp)
}

func (c *Control) adjacentControl(dir Direction) *NextControlContext {
	if c.active == nil {
		return nil
	}
	r := c.draw.Range().Range()
	if r == nil {
		return nil
	}
	pc := c.draw.Position().PositionContext()
	skipID := c.active.Element().ControlID
	scan, from := scanNext, r.EndIndex
	if dir == DirectionUp {
		scan, from = scanPrev, r.StartIndex
	}

	list := *c.draw.ElementList()
	if h, ok := scan(list, from, skipID, !pc.IsTable); ok {
		if pc.IsTable {
			h.ctx = pc
		}
		return &NextControlContext{PositionContext: h.ctx, NextIndex: h.index}
	}
	if !pc.IsTable {
		c.logExhausted(dir, skipID)
		return nil
	}

	outer := *c.draw.OriginalElementList()
	table := outer.At(pc.Index)
	if !table.IsTable() {
		c.log.Warn(logModule, "position context does not address a table", map[string]interface{}{
			"index": pc.Index,
		})
		return nil
	}
	if h, ok := scanSiblingCells(table, pc, skipID, dir); ok {
		return &NextControlContext{PositionContext: h.ctx, NextIndex: h.index}
	}
	from = pc.Index + 1
	if dir == DirectionUp {
		from = pc.Index - 1
	}
	if h, ok := scan(outer, from, skipID, true); ok {
		return &NextControlContext{PositionContext: h.ctx, NextIndex: h.index}
	}
	c.logExhausted(dir, skipID)
	return nil
}

// scanSiblingCells searches the cells after (or before) the one pc points
// at, row by row.
func scanSiblingCells(table *model.Element, pc model.PositionContext, skipID string, dir Direction) (navHit, bool) {
	if dir == DirectionUp {
		for r := min(pc.TrIndex, len(table.Rows)-1); r >= 0; r-- {
			cells := table.Rows[r].Cells
			for d := len(cells) - 1; d >= 0; d-- {
				if r == pc.TrIndex && d >= pc.TdIndex {
					continue
				}
				v := cells[d].Value
				if h, ok := scanPrev(v, len(v)-1, skipID, false); ok {
					return navHit{ctx: cellContext(pc.Index, table, r, d), index: h.index}, true
				}
			}
		}
		return navHit{}, false
	}
	for r := max(pc.TrIndex, 0); r < len(table.Rows); r++ {
		for d, cell := range table.Rows[r].Cells {
			if r == pc.TrIndex && d <= pc.TdIndex {
				continue
			}
			if h, ok := scanNext(cell.Value, 0, skipID, false); ok {
				return navHit{ctx: cellContext(pc.Index, table, r, d), index: h.index}, true
			}
		}
	}
	return navHit{}, false
}

func (c *Control) logExhausted(dir Direction, controlID string) {
	c.log.Debug(logModule, "no adjacent control", map[string]interface{}{
		"controlId": controlID,
		"up":        dir == DirectionUp,
	})
}

// InitNextControl moves the caret to the previous (DirectionUp) or next
// control, scrolls it into view and activates that control.
func (c *Control) InitNextControl(dir Direction) {
	var next *NextControlContext
	if dir == DirectionUp {
		next = c.PreControlContext()
	} else {
		next = c.NextControlContext()
	}
	if next == nil {
		return
	}
	position := c.draw.Position()
	position.SetPositionContext(next.PositionContext)
	idx := next.NextIndex
	c.draw.Range().ReplaceRange(model.Range{StartIndex: idx, EndIndex: idx})
	c.draw.Render(RenderOptions{
		CurIndex:    &idx,
		IsCompute:   false,
		IsSetCursor: true,
	})
	if positions := position.PositionList(); idx >= 0 && idx < len(positions) {
		c.draw.Cursor().MoveCursorToVisible(positions[idx], dir)
	}
	c.InitControl()
}

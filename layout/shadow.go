package layout

import (
	"github.com/tsawler/formctl/model"
	"github.com/tsawler/formctl/text"
)

// PageGeometry describes the page box and its content margins
type PageGeometry struct {
	Width  float64
	Height float64
	Gap    float64 // vertical gap between pages

	// Margins are top, right, bottom, left
	Margins [4]float64
}

// ContentLeft returns the left edge of the content area
func (g PageGeometry) ContentLeft() float64 {
	return g.Margins[3]
}

// ContentRight returns the right edge of the content area
func (g PageGeometry) ContentRight() float64 {
	return g.Width - g.Margins[1]
}

// ContentTop returns the top edge of the content area
func (g PageGeometry) ContentTop() float64 {
	return g.Margins[0]
}

// ContentWidth returns the width of the content area
func (g PageGeometry) ContentWidth() float64 {
	return g.ContentRight() - g.ContentLeft()
}

// PageOffset returns the Y offset of a page in the scrollable space
func (g PageGeometry) PageOffset(pageNo int) float64 {
	return float64(pageNo) * (g.Height + g.Gap)
}

// ShadowBox is one highlight rectangle in page-relative coordinates
type ShadowBox struct {
	model.Rect
	PageNo int
	ID     string // control group id, or control id
}

// Absolute returns the box offset into the scrollable space of all pages
func (b ShadowBox) Absolute(g PageGeometry) model.Rect {
	return b.Rect.Translate(0, g.PageOffset(b.PageNo))
}

// ShadowInput is everything needed to compute the boxes of one run
type ShadowInput struct {
	// ID is the group id when the run belongs to a group, else the control id
	ID string

	// Positions of the run's elements, in stream order
	Positions []model.ElementPosition

	// PageRows is the row list of every page
	PageRows [][]*model.Row

	Geometry PageGeometry
}

// ShadowBoxes computes the highlight rectangles for a run.
func ShadowBoxes(in ShadowInput) []ShadowBox {
	if len(in.Positions) == 0 {
		return nil
	}
	first := in.Positions[0]
	last := in.Positions[len(in.Positions)-1]
	g := in.Geometry

	// Single row on a single page
	if first.PageNo == last.PageNo && first.RowNo == last.RowNo {
		height := first.LineHeight
		if row := rowAt(in.PageRows, first.PageNo, first.RowNo); row != nil {
			height = row.Height
		}
		x := first.Coordinate.LeftTop.X
		box := ShadowBox{
			Rect:   model.NewRect(x, first.Coordinate.LeftTop.Y, last.Coordinate.RightTop.X-x, height),
			PageNo: first.PageNo,
			ID:     in.ID,
		}
		if box.IsEmpty() {
			return nil
		}
		return []ShadowBox{box}
	}

	var boxes []ShadowBox
	emit := func(b ShadowBox) {
		if !b.IsEmpty() {
			boxes = append(boxes, b)
		}
	}
	for p := first.PageNo; p <= last.PageNo && p < len(in.PageRows); p++ {
		rows := in.PageRows[p]
		from, to := 0, len(rows)-1
		y := g.ContentTop()
		if p == first.PageNo {
			from = first.RowNo
			y = first.Coordinate.LeftTop.Y
		}
		if p == last.PageNo && last.RowNo < to {
			to = last.RowNo
		}

		var middle *ShadowBox
		flush := func() {
			if middle != nil {
				emit(*middle)
				middle = nil
			}
		}
		for r := from; r <= to; r++ {
			row := rows[r]
			switch {
			case p == first.PageNo && r == first.RowNo:
				x := first.Coordinate.LeftTop.X
				width := g.ContentRight() - trailingWidth(row, in.ID) - x
				emit(ShadowBox{Rect: model.NewRect(x, y, width, row.Height), PageNo: p, ID: in.ID})
			case p == last.PageNo && r == last.RowNo:
				flush()
				x := g.ContentLeft() + leadingWidth(row, in.ID)
				width := last.Coordinate.RightTop.X - x
				emit(ShadowBox{Rect: model.NewRect(x, y, width, row.Height), PageNo: p, ID: in.ID})
			default:
				if middle == nil {
					middle = &ShadowBox{
						Rect:   model.NewRect(g.ContentLeft(), y, g.ContentWidth(), 0),
						PageNo: p,
						ID:     in.ID,
					}
				}
				middle.Height += row.Height
			}
			y += row.Height
		}
		flush()
	}
	return boxes
}

// Anchor returns where an attached toolbar should be positioned for the
// given boxes: the top-left corner of the first box in scrollable space.
func Anchor(boxes []ShadowBox, g PageGeometry) (model.Point, bool) {
	if len(boxes) == 0 {
		return model.Point{}, false
	}
	r := boxes[0].Absolute(g)
	return model.Point{X: r.X, Y: r.Y}, true
}

func rowAt(pageRows [][]*model.Row, pageNo, rowNo int) *model.Row {
	if pageNo < 0 || pageNo >= len(pageRows) {
		return nil
	}
	rows := pageRows[pageNo]
	if rowNo < 0 || rowNo >= len(rows) {
		return nil
	}
	return rows[rowNo]
}

// leadingWidth sums the width of visible foreign content before the first
// element of run id on the row.
func leadingWidth(row *model.Row, id string) float64 {
	width := 0.0
	for _, re := range row.ElementList {
		if re.Element != nil && re.RunID() == id {
			break
		}
		if re.Element != nil && !text.IsBlank(re.Value) {
			width += re.Metrics.Width
		}
	}
	return width
}

// trailingWidth sums the width of visible foreign content after the last
// element of run id on the row.
func trailingWidth(row *model.Row, id string) float64 {
	width := 0.0
	for i := len(row.ElementList) - 1; i >= 0; i-- {
		re := row.ElementList[i]
		if re.Element != nil && re.RunID() == id {
			break
		}
		if re.Element != nil && !text.IsBlank(re.Value) {
			width += re.Metrics.Width
		}
	}
	return width
}

package headless

import (
	"github.com/rivo/uniseg"

	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

// Metrics sets the size of one display cell
type Metrics struct {
	CharWidth  float64
	LineHeight float64
}

// DefaultMetrics returns 10x30 cells.
func DefaultMetrics() Metrics {
	return Metrics{CharWidth: 10, LineHeight: 30}
}

// Layout places every element of list and returns the positions, indexed
// like list, and the rows of each page.
func Layout(list model.ElementList, g layout.PageGeometry, m Metrics) ([]model.ElementPosition, [][]*model.Row) {
	if m.LineHeight <= 0 {
		m = DefaultMetrics()
	}
	rowsPerPage := int((g.Height - g.Margins[0] - g.Margins[2]) / m.LineHeight)
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}

	positions := make([]model.ElementPosition, len(list))
	pages := [][]*model.Row{{}}
	var row *model.Row
	x := g.ContentLeft()

	newRow := func() {
		page := pages[len(pages)-1]
		if len(page) == rowsPerPage {
			pages = append(pages, nil)
		}
		row = &model.Row{}
		pages[len(pages)-1] = append(pages[len(pages)-1], row)
		x = g.ContentLeft()
	}
	newRow()

	for i, e := range list {
		w := m.CharWidth * float64(uniseg.StringWidth(e.Value))
		h := m.LineHeight
		if e.IsTable() {
			w = g.ContentWidth()
			h = m.LineHeight * float64(max(len(e.Rows), 1))
			if len(row.ElementList) > 0 {
				newRow()
			}
		} else if len(row.ElementList) > 0 && x+w > g.ContentRight() {
			newRow()
		}

		pageNo := len(pages) - 1
		rowNo := len(pages[pageNo]) - 1
		y := g.ContentTop()
		for _, r := range pages[pageNo][:rowNo] {
			y += r.Height
		}
		metrics := model.Metrics{Width: w, Height: h}
		row.ElementList = append(row.ElementList, model.RowElement{Element: e, Metrics: metrics})
		row.Width += w
		row.Height = max(row.Height, h)
		positions[i] = model.ElementPosition{
			Index:      i,
			PageNo:     pageNo,
			RowNo:      rowNo,
			LineHeight: m.LineHeight,
			Metrics:    metrics,
			Coordinate: model.Coordinate{
				LeftTop:     model.Point{X: x, Y: y},
				LeftBottom:  model.Point{X: x, Y: y + h},
				RightTop:    model.Point{X: x + w, Y: y},
				RightBottom: model.Point{X: x + w, Y: y + h},
			},
		}
		x += w
		if e.IsTable() {
			newRow()
		}
	}
	return positions, pages
}

package model

// Coordinate holds the four corners of a laid out element
type Coordinate struct {
	LeftTop     Point
	LeftBottom  Point
	RightTop    Point
	RightBottom Point
}

// Metrics are the measured dimensions of a laid out element
type Metrics struct {
	Width  float64
	Height float64
}

// ElementPosition is where the rendering engine placed one element.
// RowNo is the row index within the page.
type ElementPosition struct {
	Index      int
	PageNo     int
	RowNo      int
	LineHeight float64
	Metrics    Metrics
	Coordinate Coordinate
}

// RowElement is an element as it appears on a laid out row
type RowElement struct {
	*Element
	Metrics Metrics
}

// Row is one laid out line of a page
type Row struct {
	Width       float64
	Height      float64
	ElementList []RowElement
}

// PositionContext pins a caret to a location that may be inside a table
// cell. Index is the table element's index in the zone list when IsTable is
// set.
type PositionContext struct {
	IsTable bool
	Index   int
	TrIndex int
	TdIndex int
	TableID string
	TrID    string
	TdID    string
}

// Range is a caret (StartIndex == EndIndex) or a selection. Indexes point
// at the element immediately left of the caret; -1 means no range.
type Range struct {
	StartIndex int
	EndIndex   int
}

// IsCollapsed reports whether the range is a plain caret.
func (r Range) IsCollapsed() bool {
	return r.StartIndex == r.EndIndex
}

// IsValid reports whether the range points anywhere.
func (r Range) IsValid() bool {
	return r.StartIndex >= 0 || r.EndIndex >= 0
}

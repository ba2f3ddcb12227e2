package headless

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/formctl/control"
	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

var smallPage = layout.PageGeometry{
	Width:   600,
	Height:  400,
	Gap:     20,
	Margins: [4]float64{50, 60, 50, 60},
}

func chars(n int) model.ElementList {
	list := make(model.ElementList, n)
	for i := range list {
		list[i] = &model.Element{Value: "x"}
	}
	return list
}

// ============================================================================
// Layout Tests
// ============================================================================

func TestLayoutWrapsAtContentEdge(t *testing.T) {
	positions, pages := Layout(chars(50), smallPage, DefaultMetrics())
	require.Len(t, positions, 50)
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 2)

	assert.Len(t, pages[0][0].ElementList, 48)
	assert.Equal(t, 480.0, pages[0][0].Width)

	last := positions[47]
	assert.Equal(t, 0, last.RowNo)
	assert.Equal(t, 530.0, last.Coordinate.LeftTop.X)
	assert.Equal(t, 540.0, last.Coordinate.RightTop.X)

	wrapped := positions[48]
	assert.Equal(t, 1, wrapped.RowNo)
	assert.Equal(t, 60.0, wrapped.Coordinate.LeftTop.X)
	assert.Equal(t, 80.0, wrapped.Coordinate.LeftTop.Y)
}

func TestLayoutTableTakesOwnRow(t *testing.T) {
	list := model.ElementList{{Value: "a"}, model.NewTable(2, 2), {Value: "b"}}
	positions, pages := Layout(list, smallPage, DefaultMetrics())

	assert.Equal(t, 0, positions[0].RowNo)
	assert.Equal(t, 1, positions[1].RowNo)
	assert.Equal(t, 480.0, positions[1].Metrics.Width)
	assert.Equal(t, 60.0, positions[1].Metrics.Height)
	assert.Equal(t, 2, positions[2].RowNo)
	assert.Equal(t, 140.0, positions[2].Coordinate.LeftTop.Y)
	assert.Equal(t, 60.0, pages[0][1].Height)
}

func TestLayoutBreaksPages(t *testing.T) {
	// 10 rows of 48 cells fit on a page
	positions, pages := Layout(chars(11*48), smallPage, DefaultMetrics())
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 10)

	first := positions[480]
	assert.Equal(t, 1, first.PageNo)
	assert.Equal(t, 0, first.RowNo)
	assert.Equal(t, 50.0, first.Coordinate.LeftTop.Y)
}

func TestLayoutWideGraphemes(t *testing.T) {
	positions, _ := Layout(model.ElementList{{Value: "中"}, {Value: ""}}, smallPage, DefaultMetrics())
	assert.Equal(t, 20.0, positions[0].Metrics.Width)
	assert.Equal(t, 0.0, positions[1].Metrics.Width)
}

// ============================================================================
// Engine Tests
// ============================================================================

func TestEngineElementListFollowsPositionContext(t *testing.T) {
	table := model.NewTable(1, 2)
	table.Cell(0, 1).Value = model.ElementList{{Value: "in cell"}}
	doc := model.NewDocument()
	doc.Main = model.ElementList{{Value: "a"}, table}
	e := New(doc)

	assert.Same(t, &doc.Main, e.ElementList())

	e.Position().SetPositionContext(model.PositionContext{IsTable: true, Index: 1, TrIndex: 0, TdIndex: 1})
	cell := e.ElementList()
	require.Len(t, *cell, 1)
	assert.Equal(t, "in cell", (*cell)[0].Value)
	assert.Same(t, &doc.Main, e.OriginalElementList())

	e.SetZone(model.ZoneFooter)
	assert.False(t, e.Position().PositionContext().IsTable)
	assert.Same(t, &doc.Footer, e.ElementList())
}

func TestEngineRender(t *testing.T) {
	e := New(nil)
	cur := 4
	e.Render(control.RenderOptions{CurIndex: &cur, IsCompute: true, IsSubmitHistory: true})
	e.Render(control.RenderOptions{IsCompute: false})

	require.Len(t, e.Renders, 2)
	assert.Equal(t, model.Range{StartIndex: 4, EndIndex: 4}, *e.Range().Range())
	assert.Equal(t, []int{4}, e.Checkpoints().Stack)
}

func TestEngineRangeManager(t *testing.T) {
	e := New(nil)
	rm := e.Range()
	assert.False(t, rm.Range().IsValid())

	rm.SetRange(1, 3)
	live := rm.Range()
	live.StartIndex = 2
	assert.Equal(t, model.Range{StartIndex: 2, EndIndex: 3}, *e.Range().Range())

	rm.ReplaceRange(model.Range{StartIndex: 5, EndIndex: 5})
	assert.True(t, rm.Range().IsCollapsed())

	rm.ClearRange()
	assert.Equal(t, -1, rm.Range().StartIndex)
}

func TestEngineHistory(t *testing.T) {
	h := &History{}
	h.SubmitHistory(1)
	h.SubmitHistory(2)
	h.PopUndo()
	h.PopUndo()
	h.PopUndo()
	assert.Empty(t, h.Stack)
	assert.Equal(t, 3, h.Pops)
}

func TestEngineSpliceAndSetEditorData(t *testing.T) {
	doc := model.NewDocument()
	doc.Main = model.ElementList{{Value: "a"}, {Value: "b"}}
	e := New(doc)

	e.SpliceElementList(e.ElementList(), 1, 1, &model.Element{Value: "c"})
	assert.Equal(t, "ac", doc.Main.Text())
	assert.Equal(t, 1, e.Splices)

	next := model.NewDocument()
	next.Header = model.ElementList{{Value: "h"}}
	next.Main = model.ElementList{{Value: "m"}}
	e.Position().SetPositionContext(model.PositionContext{IsTable: true})
	e.SetEditorData(next)

	assert.Equal(t, "hm", e.Document().ExtractText())
	assert.False(t, e.Position().PositionContext().IsTable)
}

func TestEngineDefaults(t *testing.T) {
	e := New(nil, WithReadonly(true), WithGeometry(smallPage))
	assert.True(t, e.IsReadonly())
	assert.Equal(t, smallPage, e.Pages().Geometry())
	assert.NotNil(t, e.Listener())
	assert.False(t, e.EventBus().IsSubscribe(control.ControlChangeEvent))
	assert.Equal(t, 0, e.Pages().PageNo())

	e.SetReadonly(false)
	assert.False(t, e.IsReadonly())
}

func TestEngineCursorRecordsScrolls(t *testing.T) {
	e := New(nil)
	e.Cursor().MoveCursorToVisible(model.ElementPosition{Index: 3}, control.DirectionUp)
	require.Len(t, e.Scrolls(), 1)
	assert.Equal(t, 3, e.Scrolls()[0].Position.Index)
	assert.Equal(t, control.DirectionUp, e.Scrolls()[0].Direction)
}

// ============================================================================
// UI Recorder Tests
// ============================================================================

func TestUIRecorder(t *testing.T) {
	u := NewUI()
	u.Open(control.PickerRequest{ControlID: "c1"})
	assert.Contains(t, u.Pickers, "c1")
	u.Close("c1")
	assert.Empty(t, u.Pickers)

	u.Show([]layout.ShadowBox{{ID: "c1"}}, smallPage)
	assert.Len(t, u.Boxes, 1)
	u.Clear()
	assert.Empty(t, u.Boxes)

	anchor := model.Point{X: 1, Y: 2}
	u.Toggle(true, control.ToolbarTarget{ID: "c1", Type: "control"}, &anchor)
	assert.True(t, u.ToolbarVisible)
	assert.Equal(t, "c1", u.ToolbarTarget.ID)

	assert.Equal(t, 1, u.Calls["open"])
	assert.Len(t, u.Options(), 3)
}

// ============================================================================
// Fixture Tests
// ============================================================================

const yamlFixture = `
main:
  - value: "Name: "
  - type: control
    value: ""
    controlId: c1
    control:
      type: text
      conceptId: name
      placeholder: Name
`

const jsonFixture = `{
  "header": [{"value": "H"}],
  "main": [
    {"type": "control", "value": "", "controlId": "s1",
     "control": {"type": "select", "conceptId": "sex", "code": "f",
                 "valueSets": [{"code": "m", "value": "Male"}, {"code": "f", "value": "Female"}]}}
  ]
}`

func TestParseDocumentYAML(t *testing.T) {
	doc, err := ParseDocument([]byte(yamlFixture), ".yaml", model.DefaultFormatOptions())
	require.NoError(t, err)
	require.Len(t, doc.Main, 7)

	assert.Equal(t, "Name: ", doc.Main[0].Value)
	assert.Equal(t, model.ComponentPrefix, doc.Main[1].ControlComponent)
	assert.Equal(t, model.ComponentPlaceholder, doc.Main[2].ControlComponent)
	assert.Equal(t, model.ComponentPostfix, doc.Main[6].ControlComponent)
	assert.Equal(t, "c1", doc.Main[3].ControlID)
	assert.Equal(t, "name", doc.Main[3].Control.ConceptID)
	assert.NoError(t, model.CheckRuns(doc.Main))
}

func TestParseDocumentControlUnderline(t *testing.T) {
	const src = `
main:
  - type: control
    controlId: c1
    control:
      type: text
      placeholder: Name
      underline: true
      valueUnderline: true
`
	doc, err := ParseDocument([]byte(src), ".yaml", model.DefaultFormatOptions())
	require.NoError(t, err)
	require.NotEmpty(t, doc.Main)

	ctl := doc.Main[0].Control
	require.NotNil(t, ctl)
	assert.True(t, ctl.Underline, "text underline comes from the inline style")
	assert.True(t, ctl.ValueUnderline)

	doc, err = ParseDocument([]byte(`{"main":[{"type":"control","value":"","controlId":"c1",
		"control":{"type":"text","underline":true}}]}`), ".json", model.DefaultFormatOptions())
	require.NoError(t, err)
	assert.True(t, doc.Main[0].Control.Underline)
	assert.False(t, doc.Main[0].Control.ValueUnderline)
}

func TestParseDocumentJSON(t *testing.T) {
	doc, err := ParseDocument([]byte(jsonFixture), ".JSON", model.DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "H", doc.Header.Text())
	assert.Equal(t, "{Female}", doc.Main.Text())
	assert.Equal(t, model.ControlSelect, doc.Main[0].Control.Type)
}

func TestParseDocumentErrors(t *testing.T) {
	_, err := ParseDocument([]byte("x"), ".txt", model.DefaultFormatOptions())
	assert.ErrorContains(t, err, "unsupported document format")

	_, err = ParseDocument([]byte("{"), ".json", model.DefaultFormatOptions())
	assert.Error(t, err)

	_, err = LoadDocument("does/not/exist.yaml", model.DefaultFormatOptions())
	assert.True(t, err != nil && strings.Contains(err.Error(), "failed to read document"))
}

func TestParseDocumentSniffsContent(t *testing.T) {
	doc, err := ParseDocument([]byte(jsonFixture), "", model.DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "{Female}", doc.Main.Text())

	doc, err = ParseDocument([]byte(yamlFixture), ".txt", model.DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "Name: {Name}", doc.Main.Text())
}

package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/formctl/model"
)

func TestGroupIndexAddAndRemove(t *testing.T) {
	g := NewGroupIndex()
	g.Add("G1", "c1")
	g.Add("G1", "c2")
	g.Add("G1", "c2")
	g.Add("", "c3")

	assert.Equal(t, []string{"c1", "c2"}, g.Members("G1"))
	assert.Equal(t, 1, g.Len())

	// moving to another group
	g.Add("G2", "c1")
	assert.Equal(t, []string{"c2"}, g.Members("G1"))
	id, ok := g.GroupOf("c1")
	require.True(t, ok)
	assert.Equal(t, "G2", id)

	g.RemoveMember("c2")
	assert.Equal(t, 1, g.Len())
	_, ok = g.GroupOf("c2")
	assert.False(t, ok)

	assert.Equal(t, []string{"c1"}, g.RemoveGroup("G2"))
	assert.Equal(t, 0, g.Len())
}

func TestGroupIndexMembersIsACopy(t *testing.T) {
	g := NewGroupIndex()
	g.Add("G1", "c1")
	m := g.Members("G1")
	m[0] = "changed"
	assert.Equal(t, []string{"c1"}, g.Members("G1"))
}

func TestGroupIndexRebuildDescendsTables(t *testing.T) {
	table := model.NewTable(1, 1)
	table.Cell(0, 0).Value = model.ElementList{{ControlID: "c2", ControlGroupID: "G1"}}
	main := model.ElementList{{ControlID: "c1", ControlGroupID: "G1"}, {ControlID: "c1", ControlGroupID: "G1"}, table}

	g := NewGroupIndex()
	g.Add("stale", "c9")
	g.Rebuild(main, model.ElementList{{ControlID: "c3", ControlGroupID: "G2"}})

	assert.Equal(t, []string{"c1", "c2"}, g.Members("G1"))
	assert.Equal(t, []string{"c3"}, g.Members("G2"))
	_, ok := g.GroupOf("c9")
	assert.False(t, ok)
}

func TestWalkElementsDepthLimit(t *testing.T) {
	// a chain of tables one level deeper than the limit
	inner := model.ElementList{{ControlID: "deep"}}
	for i := 0; i < MaxTableDepth+1; i++ {
		table := model.NewTable(1, 1)
		table.Cell(0, 0).Value = inner
		inner = model.ElementList{table}
	}

	seen := 0
	walkElements(inner, 0, func(_ model.ElementList, _ int, e *model.Element) {
		if e.ControlID == "deep" {
			seen++
		}
	})
	assert.Equal(t, 0, seen)
}

func TestDeferredDrainsInOrder(t *testing.T) {
	d := &Deferred{}
	var order []int
	d.Schedule(func() { order = append(order, 1) })
	d.Schedule(func() {
		order = append(order, 2)
		d.Schedule(func() { order = append(order, 3) })
	})
	assert.Equal(t, 2, d.Len())

	assert.Equal(t, 3, d.Drain())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0, d.Drain())
}

func TestSpanAt(t *testing.T) {
	run := func(component model.ControlComponent) *model.Element {
		return &model.Element{ControlID: "c1", ControlComponent: component}
	}
	list := model.ElementList{
		{Value: "x"},
		run(model.ComponentPrefix),
		run(model.ComponentPrefix),
		run(model.ComponentValue),
		run(model.ComponentPostfix),
		{Value: "y"},
	}

	span, ok := spanAt(list, 3)
	require.True(t, ok)
	assert.Equal(t, runSpan{Start: 1, End: 4, PrefixEnd: 2, PostfixStart: 4}, span)

	_, ok = spanAt(list, 0)
	assert.False(t, ok)

	// a run without prefix
	_, ok = spanAt(model.ElementList{run(model.ComponentValue)}, 0)
	assert.False(t, ok)
}

func TestSplitCodes(t *testing.T) {
	assert.Nil(t, splitCodes(""))
	assert.Equal(t, []string{"a", "b"}, splitCodes(" a ,, b,"))
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 2, clampIndex(0, 2, 5))
	assert.Equal(t, 5, clampIndex(9, 2, 5))
	assert.Equal(t, 3, clampIndex(3, 2, 5))
}

func TestValueAnchor(t *testing.T) {
	ctl := &model.Control{Style: model.Style{Bold: true}}
	prefix := &model.Element{
		Type:             model.TypeControl,
		Value:            "{",
		Style:            model.Style{Color: "#000000"},
		ControlID:        "c1",
		ControlGroupID:   "G1",
		ControlComponent: model.ComponentPrefix,
		Control:          ctl,
	}
	a := valueAnchor(prefix)
	assert.Equal(t, "c1", a.ControlID)
	assert.Equal(t, "G1", a.ControlGroupID)
	assert.Equal(t, ctl.Style, a.Style)
	assert.Empty(t, a.Value)

	value := &model.Element{
		Type:             model.TypeControl,
		Value:            "v",
		Style:            model.Style{Italic: true},
		ControlID:        "c1",
		ControlComponent: model.ComponentValue,
		Control:          ctl,
	}
	a = valueAnchor(value)
	assert.True(t, a.Italic)
	assert.Equal(t, model.ComponentNone, a.ControlComponent)

	assert.NotNil(t, valueAnchor(nil))
}

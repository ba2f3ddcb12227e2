package control_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsawler/formctl/control"
	"github.com/tsawler/formctl/headless"
	"github.com/tsawler/formctl/model"
)

// fixture wires a control layer to a headless engine and records every
// listener notification.
type fixture struct {
	t      *testing.T
	engine *headless.Engine
	ui     *headless.UI
	ctl    *control.Control
	notes  []*model.Control
}

func seqFormat() model.FormatOptions {
	opts := model.DefaultFormatOptions()
	n := 0
	opts.NewID = func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
	return opts
}

func newFixture(t *testing.T, main model.ElementList, opts ...headless.Option) *fixture {
	doc := model.NewDocument()
	doc.Main = main
	return newDocFixture(t, doc, opts...)
}

func newDocFixture(t *testing.T, doc *model.Document, opts ...headless.Option) *fixture {
	t.Helper()
	format := seqFormat()
	for _, z := range model.Zones {
		model.Format(doc.Zone(z), format)
		require.NoError(t, model.CheckRuns(*doc.Zone(z)))
	}
	f := &fixture{t: t, ui: headless.NewUI()}
	f.engine = headless.New(doc, opts...)
	f.engine.Listener().ControlChange = func(c *model.Control) {
		f.notes = append(f.notes, c)
	}
	f.ctl = control.New(f.engine, append(f.ui.Options(), control.WithFormatOptions(format))...)
	return f
}

func (f *fixture) main() model.ElementList {
	return f.engine.Document().Main
}

func (f *fixture) caret(i int) {
	f.engine.Range().SetRange(i, i)
}

// activate puts the caret at i and activates the control there.
func (f *fixture) activate(i int) control.Instance {
	f.t.Helper()
	f.caret(i)
	f.ctl.InitControl()
	require.NotNil(f.t, f.ctl.ActiveControl())
	return f.ctl.ActiveControl()
}

// assertRuns checks run contiguity and placeholder exclusivity in every
// zone.
func (f *fixture) assertRuns() {
	f.t.Helper()
	for _, z := range model.Zones {
		require.NoError(f.t, model.CheckRuns(*f.engine.Document().Zone(z)), "zone %s", z)
	}
}

// roles renders the components of list as one letter each: p prefix,
// s postfix, h placeholder, v value, c checkbox, r radio, - none.
func roles(list model.ElementList) string {
	var sb strings.Builder
	for _, e := range list {
		switch e.ControlComponent {
		case model.ComponentPrefix:
			sb.WriteByte('p')
		case model.ComponentPostfix:
			sb.WriteByte('s')
		case model.ComponentPlaceholder:
			sb.WriteByte('h')
		case model.ComponentValue:
			sb.WriteByte('v')
		case model.ComponentCheckbox:
			sb.WriteByte('c')
		case model.ComponentRadio:
			sb.WriteByte('r')
		default:
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func plain(s string) *model.Element {
	return &model.Element{Value: s}
}

func compact(id string, ctl *model.Control) *model.Element {
	return &model.Element{Type: model.TypeControl, ControlID: id, Control: ctl}
}

func textControl(id, placeholder, value string) *model.Element {
	ctl := &model.Control{Type: model.ControlText, ConceptID: "concept-" + id, Placeholder: placeholder}
	if value != "" {
		ctl.Value = model.ElementList{{Value: value}}
	}
	return compact(id, ctl)
}

var yesNo = []model.ValueSet{{Code: "a", Value: "Yes"}, {Code: "b", Value: "No"}}

var sexes = []model.ValueSet{{Code: "m", Value: "Male"}, {Code: "f", Value: "Female"}}

func optionControl(id string, typ model.ControlType, code string, sets []model.ValueSet) *model.Element {
	return compact(id, &model.Control{
		Type:        typ,
		ConceptID:   "concept-" + id,
		Code:        code,
		ValueSets:   sets,
		Placeholder: "Pick",
	})
}

func concept(e *model.Element, conceptID string) *model.Element {
	e.Control.ConceptID = conceptID
	return e
}

func grouped(e *model.Element, groupID string) *model.Element {
	e.ControlGroupID = groupID
	return e
}

func disabled(e *model.Element) *model.Element {
	e.Control.Disabled = true
	return e
}

func ptr[T any](v T) *T {
	return &v
}

// queue is a Scheduler that holds functions until run
type queue struct {
	fns []func()
}

func (q *queue) Schedule(fn func()) {
	q.fns = append(q.fns, fn)
}

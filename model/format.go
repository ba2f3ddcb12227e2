package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/formctl/text"
)

// FormatOptions controls how compact control elements are expanded
type FormatOptions struct {
	// Prefix and Postfix are used when a control has none of its own
	Prefix  string
	Postfix string

	PlaceholderColor string
	BracketColor     string

	// NewID generates ids for controls, tables, rows and cells that lack
	// one. Default: uuid.NewString
	NewID func() string
}

// DefaultFormatOptions returns the default bracket and placeholder settings
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Prefix:           "{",
		Postfix:          "}",
		PlaceholderColor: "#9c9b9b",
		BracketColor:     "#000000",
		NewID:            uuid.NewString,
	}
}

func (o FormatOptions) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}

// Format expands every compact control element of list (a TypeControl
// element with a descriptor and no component yet) into a full run of
// prefix, value or placeholder, and postfix elements. Tables are formatted
// recursively and their cell elements are tagged with the table context.
func Format(list *ElementList, opts FormatOptions) {
	out := make(ElementList, 0, len(*list))
	for _, e := range *list {
		switch {
		case e.IsTable():
			formatTable(e, opts)
			out = append(out, e)
		case e.Type == TypeControl && e.Control != nil && e.ControlComponent == ComponentNone:
			out = append(out, expandControl(e, opts)...)
		default:
			out = append(out, e)
		}
	}
	*list = out
}

func formatTable(table *Element, opts FormatOptions) {
	if table.ID == "" {
		table.ID = opts.newID()
	}
	for _, row := range table.Rows {
		if row.ID == "" {
			row.ID = opts.newID()
		}
		for _, cell := range row.Cells {
			if cell.ID == "" {
				cell.ID = opts.newID()
			}
			Format(&cell.Value, opts)
			for _, e := range cell.Value {
				e.TableID = table.ID
				e.TrID = row.ID
				e.TdID = cell.ID
			}
		}
	}
}

func expandControl(e *Element, opts FormatOptions) ElementList {
	ctl := e.Control
	controlID := e.ControlID
	if controlID == "" {
		controlID = opts.newID()
	}
	base := Element{
		Type:           TypeControl,
		Style:          ctl.Style,
		ControlID:      controlID,
		ControlGroupID: e.ControlGroupID,
		Control:        ctl,
		TableID:        e.TableID,
		TrID:           e.TrID,
		TdID:           e.TdID,
	}
	unit := func(value string, component ControlComponent, color string) *Element {
		n := base
		n.Value = value
		n.ControlComponent = component
		if color != "" {
			n.Color = color
		}
		return &n
	}

	var run ElementList
	prefix := ctl.Prefix
	if prefix == "" {
		prefix = opts.Prefix
	}
	for _, u := range text.Split(prefix) {
		run = append(run, unit(u, ComponentPrefix, opts.BracketColor))
	}

	valueCount := 0
	switch ctl.Type {
	case ControlCheckbox, ControlRadio:
		codes := ctl.Codes()
		for _, vs := range ctl.ValueSets {
			glyph := unit("", ComponentCheckbox, "")
			state := &OptionState{Code: vs.Code, Value: slices.Contains(codes, vs.Code)}
			if ctl.Type == ControlRadio {
				glyph.Type = TypeRadio
				glyph.ControlComponent = ComponentRadio
				glyph.Radio = state
			} else {
				glyph.Type = TypeCheckbox
				glyph.Checkbox = state
			}
			run = append(run, glyph)
			for _, u := range text.Split(vs.Value) {
				run = append(run, unit(u, ComponentValue, ""))
				valueCount++
			}
		}
	case ControlSelect:
		var labels []string
		for _, code := range ctl.Codes() {
			if vs, ok := ctl.FindValueSet(code); ok {
				labels = append(labels, vs.Value)
			}
		}
		for _, u := range text.Split(strings.Join(labels, "")) {
			run = append(run, unit(u, ComponentValue, ""))
			valueCount++
		}
	default:
		for _, v := range ctl.Value {
			if !v.Type.IsTextLike() {
				n := Merge(&base, v)
				n.ControlComponent = ComponentValue
				run = append(run, n)
				valueCount++
				continue
			}
			for _, u := range text.Split(v.Value) {
				n := Merge(&base, &Element{Type: TypeControl, Value: u, Style: v.Style})
				n.ControlComponent = ComponentValue
				run = append(run, n)
				valueCount++
			}
		}
	}
	if valueCount == 0 && ctl.Type != ControlCheckbox && ctl.Type != ControlRadio {
		for _, u := range text.Split(ctl.Placeholder) {
			run = append(run, unit(u, ComponentPlaceholder, opts.PlaceholderColor))
		}
	}

	postfix := ctl.Postfix
	if postfix == "" {
		postfix = opts.Postfix
	}
	for _, u := range text.Split(postfix) {
		run = append(run, unit(u, ComponentPostfix, opts.BracketColor))
	}

	// The value now lives in the run itself.
	ctl.Value = nil
	return run
}

// Zip collapses every control run of list into one compact TypeControl
// element whose descriptor carries the coalesced value, the inverse of
// Format. Tables are zipped recursively into copies; list is not modified.
func Zip(list ElementList) ElementList {
	out := make(ElementList, 0, len(list))
	for i := 0; i < len(list); {
		e := list[i]
		if e.ControlID == "" {
			if e.IsTable() {
				out = append(out, zipTable(e))
			} else {
				out = append(out, e)
			}
			i++
			continue
		}
		j := i
		for j < len(list) && list[j].ControlID == e.ControlID {
			j++
		}
		out = append(out, &Element{
			Type:           TypeControl,
			ControlID:      e.ControlID,
			ControlGroupID: e.ControlGroupID,
			Control:        PickControl(list[i:j]),
			TableID:        e.TableID,
			TrID:           e.TrID,
			TdID:           e.TdID,
		})
		i = j
	}
	return out
}

func zipTable(table *Element) *Element {
	n := *table
	n.Rows = make([]*TableRow, len(table.Rows))
	for r, row := range table.Rows {
		nr := &TableRow{ID: row.ID, Height: row.Height, Cells: make([]*TableCell, len(row.Cells))}
		for c, cell := range row.Cells {
			nr.Cells[c] = &TableCell{
				ID:      cell.ID,
				RowSpan: cell.RowSpan,
				ColSpan: cell.ColSpan,
				Value:   Zip(cell.Value),
			}
		}
		n.Rows[r] = nr
	}
	return &n
}

// PickControl returns a detached copy of the run's descriptor whose Value
// holds the run's value elements, with consecutive equally styled text
// coalesced into one element.
func PickControl(run ElementList) *Control {
	var ctl *Control
	for _, e := range run {
		if e.Control != nil {
			ctl = e.Control.Clone()
			break
		}
	}
	if ctl == nil {
		return nil
	}
	var value ElementList
	var last *Element
	for _, e := range run {
		if e.ControlComponent != ComponentValue {
			continue
		}
		if !e.Type.IsTextLike() {
			value = append(value, e.Clone())
			last = nil
			continue
		}
		if last != nil && last.Style == e.Style {
			last.Value += e.Value
			continue
		}
		last = &Element{Type: TypeText, Value: e.Value, Style: e.Style}
		value = append(value, last)
	}
	ctl.Value = value
	return ctl
}

// FormatElementContext copies the table context of the element at
// anchorIndex onto items.
func FormatElementContext(list ElementList, items ElementList, anchorIndex int) {
	anchor := list.At(anchorIndex)
	if anchor == nil {
		return
	}
	for _, item := range items {
		item.TableID = anchor.TableID
		item.TrID = anchor.TrID
		item.TdID = anchor.TdID
	}
}

// FilterAssistElements returns list without prefix, postfix and placeholder
// elements. Prefix and postfix elements of controls with a MinWidth are kept
// with an empty value so the reserved width survives. Table cells are
// filtered in place.
func FilterAssistElements(list ElementList) ElementList {
	out := make(ElementList, 0, len(list))
	for _, e := range list {
		if e.IsTable() {
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					cell.Value = FilterAssistElements(cell.Value)
				}
			}
		}
		if e.ControlID == "" {
			out = append(out, e)
			continue
		}
		if e.Control != nil && e.Control.MinWidth > 0 &&
			(e.ControlComponent == ComponentPrefix || e.ControlComponent == ComponentPostfix) {
			e.Value = ""
			out = append(out, e)
			continue
		}
		if !e.ControlComponent.IsAssist() {
			out = append(out, e)
		}
	}
	return out
}

// Run consistency errors
var (
	// ErrRunNotContiguous indicates that a control run is interrupted by a
	// foreign element.
	ErrRunNotContiguous = errors.New("control run is not contiguous")

	// ErrPlaceholderWithValue indicates that a run holds both placeholder
	// and value elements.
	ErrPlaceholderWithValue = errors.New("control run mixes placeholder and value")
)

// CheckRuns verifies run contiguity and placeholder exclusivity for list and
// every nested table cell. It never panics; all violations are joined.
func CheckRuns(list ElementList) error {
	var errs []error
	closed := make(map[string]bool)
	type runState struct{ value, placeholder bool }
	states := make(map[string]*runState)
	prev := ""
	for i, e := range list {
		if e.IsTable() {
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					if err := CheckRuns(cell.Value); err != nil {
						errs = append(errs, err)
					}
				}
			}
		}
		id := e.ControlID
		if prev != "" && id != prev {
			closed[prev] = true
		}
		if id != "" {
			if closed[id] {
				errs = append(errs, fmt.Errorf("%w: %s at index %d", ErrRunNotContiguous, id, i))
			}
			st := states[id]
			if st == nil {
				st = &runState{}
				states[id] = st
			}
			switch e.ControlComponent {
			case ComponentValue:
				st.value = true
			case ComponentPlaceholder:
				st.placeholder = true
			}
		}
		prev = id
	}
	for id, st := range states {
		if st.value && st.placeholder {
			errs = append(errs, fmt.Errorf("%w: %s", ErrPlaceholderWithValue, id))
		}
	}
	return errors.Join(errs...)
}

package model

import (
	"fmt"
	"strings"
)

// ElementType represents the content kind of an element
type ElementType int

const (
	TypeText ElementType = iota
	TypeTable
	TypeImage
	TypeControl
	TypeCheckbox
	TypeRadio
	TypeTab
	TypeHyperlink
	TypeSuperscript
	TypeSubscript
	TypeSeparator
	TypePageBreak
)

var elementTypeNames = map[ElementType]string{
	TypeText:        "text",
	TypeTable:       "table",
	TypeImage:       "image",
	TypeControl:     "control",
	TypeCheckbox:    "checkbox",
	TypeRadio:       "radio",
	TypeTab:         "tab",
	TypeHyperlink:   "hyperlink",
	TypeSuperscript: "superscript",
	TypeSubscript:   "subscript",
	TypeSeparator:   "separator",
	TypePageBreak:   "pageBreak",
}

func (et ElementType) String() string {
	if name, ok := elementTypeNames[et]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (et ElementType) MarshalText() ([]byte, error) {
	return []byte(et.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (et *ElementType) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*et = TypeText
		return nil
	}
	for k, v := range elementTypeNames {
		if strings.EqualFold(v, s) {
			*et = k
			return nil
		}
	}
	return fmt.Errorf("unknown element type %q", s)
}

// IsTextLike reports whether elements of this type are laid out as text and
// may donate their style to newly inserted value elements.
func (et ElementType) IsTextLike() bool {
	switch et {
	case TypeText, TypeHyperlink, TypeSubscript, TypeSuperscript, TypeControl:
		return true
	}
	return false
}

// ControlComponent is the role an element plays inside a control run
type ControlComponent int

const (
	ComponentNone ControlComponent = iota
	ComponentPrefix
	ComponentPostfix
	ComponentPlaceholder
	ComponentValue
	ComponentCheckbox
	ComponentRadio
)

var componentNames = map[ControlComponent]string{
	ComponentNone:        "",
	ComponentPrefix:      "prefix",
	ComponentPostfix:     "postfix",
	ComponentPlaceholder: "placeholder",
	ComponentValue:       "value",
	ComponentCheckbox:    "checkbox",
	ComponentRadio:       "radio",
}

func (c ControlComponent) String() string {
	return componentNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c ControlComponent) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ControlComponent) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for k, v := range componentNames {
		if strings.EqualFold(v, s) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown control component %q", s)
}

// IsAssist reports whether the component is decoration rather than content.
func (c ControlComponent) IsAssist() bool {
	return c == ComponentPrefix || c == ComponentPostfix || c == ComponentPlaceholder
}

// Style holds the text attributes an element may carry
type Style struct {
	Font      string `json:"font,omitempty" yaml:"font,omitempty"`
	Size      int    `json:"size,omitempty" yaml:"size,omitempty"`
	Bold      bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty" yaml:"underline,omitempty"`
	Strikeout bool   `json:"strikeout,omitempty" yaml:"strikeout,omitempty"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	Highlight string `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

// OptionState is the checked state of a checkbox or radio glyph
type OptionState struct {
	Code  string `json:"code" yaml:"code"`
	Value bool   `json:"value" yaml:"value"`
}

// Element is the atomic unit of the document stream
type Element struct {
	ID    string      `json:"id,omitempty" yaml:"id,omitempty"`
	Type  ElementType `json:"type,omitempty" yaml:"type,omitempty"`
	Value string      `json:"value" yaml:"value"`
	Style `yaml:",inline"`

	// Control run membership
	ControlID        string           `json:"controlId,omitempty" yaml:"controlId,omitempty"`
	ControlGroupID   string           `json:"controlGroupId,omitempty" yaml:"controlGroupId,omitempty"`
	ControlComponent ControlComponent `json:"controlComponent,omitempty" yaml:"controlComponent,omitempty"`
	Control          *Control         `json:"control,omitempty" yaml:"control,omitempty"`

	// Option glyph state
	Checkbox *OptionState `json:"checkbox,omitempty" yaml:"checkbox,omitempty"`
	Radio    *OptionState `json:"radio,omitempty" yaml:"radio,omitempty"`

	// Set on elements that live inside a table cell
	TableID string `json:"tableId,omitempty" yaml:"tableId,omitempty"`
	TrID    string `json:"trId,omitempty" yaml:"trId,omitempty"`
	TdID    string `json:"tdId,omitempty" yaml:"tdId,omitempty"`

	// Only for TypeTable
	Rows []*TableRow `json:"trList,omitempty" yaml:"trList,omitempty"`
}

// IsTable reports whether the element owns a nested table structure.
func (e *Element) IsTable() bool {
	return e != nil && e.Type == TypeTable
}

// RunID returns the id used to delimit atomic control spans: the group id
// when present, the control id otherwise.
func (e *Element) RunID() string {
	if e == nil {
		return ""
	}
	if e.ControlGroupID != "" {
		return e.ControlGroupID
	}
	return e.ControlID
}

// IsDeletable reports whether the control run owning this element may be
// removed. Elements outside a control are always deletable.
func (e *Element) IsDeletable() bool {
	if e == nil || e.Control == nil {
		return true
	}
	return e.Control.IsDeletable()
}

// Clone returns a deep copy of the element. Control descriptors are cloned
// too, so the copy no longer shares its descriptor with the source run.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	c.Control = e.Control.Clone()
	if e.Checkbox != nil {
		cb := *e.Checkbox
		c.Checkbox = &cb
	}
	if e.Radio != nil {
		r := *e.Radio
		c.Radio = &r
	}
	if e.Rows != nil {
		c.Rows = make([]*TableRow, len(e.Rows))
		for i, row := range e.Rows {
			c.Rows[i] = row.Clone()
		}
	}
	return &c
}

// PickControlAttrs returns a fresh element carrying only the control
// membership, group and style attributes of e. It is used as the anchor
// for elements inserted after a non text-like element or a prefix.
func (e *Element) PickControlAttrs() *Element {
	return &Element{
		Style:          e.Style,
		ControlID:      e.ControlID,
		ControlGroupID: e.ControlGroupID,
		Control:        e.Control,
		TableID:        e.TableID,
		TrID:           e.TrID,
		TdID:           e.TdID,
	}
}

// OmitType returns a shallow copy of e without its type, value, role and
// nested structure: the attributes an inserted element inherits from a
// text-like anchor.
func (e *Element) OmitType() *Element {
	n := *e
	n.ID = ""
	n.Type = TypeText
	n.Value = ""
	n.ControlComponent = ComponentNone
	n.Checkbox = nil
	n.Radio = nil
	n.Rows = nil
	return &n
}

// Merge overlays the content fields of data onto a copy of the anchor and
// returns it. Empty fields in data keep the anchor's values.
func Merge(anchor, data *Element) *Element {
	n := *anchor
	if data.ID != "" {
		n.ID = data.ID
	}
	n.Type = data.Type
	n.Value = data.Value
	if data.Style != (Style{}) {
		n.Style = mergeStyle(n.Style, data.Style)
	}
	if data.Checkbox != nil {
		n.Checkbox = data.Checkbox
	}
	if data.Radio != nil {
		n.Radio = data.Radio
	}
	if data.Rows != nil {
		n.Rows = data.Rows
	}
	return &n
}

func mergeStyle(base, over Style) Style {
	if over.Font != "" {
		base.Font = over.Font
	}
	if over.Size != 0 {
		base.Size = over.Size
	}
	if over.Color != "" {
		base.Color = over.Color
	}
	if over.Highlight != "" {
		base.Highlight = over.Highlight
	}
	base.Bold = base.Bold || over.Bold
	base.Italic = base.Italic || over.Italic
	base.Underline = base.Underline || over.Underline
	base.Strikeout = base.Strikeout || over.Strikeout
	return base
}

// ElementList is an ordered sequence of elements. Zones and table cells each
// own one.
type ElementList []*Element

// Splice removes deleteCount elements at start, inserts items in their
// place and returns the removed elements. Out of range arguments are
// clamped the same way a JavaScript splice would clamp them.
func (l *ElementList) Splice(start, deleteCount int, items ...*Element) ElementList {
	n := len(*l)
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > n {
		deleteCount = n - start
	}

	removed := make(ElementList, deleteCount)
	copy(removed, (*l)[start:start+deleteCount])

	tail := append(ElementList(nil), (*l)[start+deleteCount:]...)
	out := append((*l)[:start], items...)
	*l = append(out, tail...)
	return removed
}

// At returns the element at index i, or nil when i is out of range.
func (l ElementList) At(i int) *Element {
	if i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

// Text concatenates the values of every element, descending into tables.
func (l ElementList) Text() string {
	var sb strings.Builder
	for _, e := range l {
		if e.IsTable() {
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					sb.WriteString(cell.Value.Text())
				}
			}
			continue
		}
		sb.WriteString(e.Value)
	}
	return sb.String()
}

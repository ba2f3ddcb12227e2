package model

import (
	"fmt"
	"strings"
)

// ControlType selects the control variant
type ControlType int

const (
	ControlText ControlType = iota
	ControlSelect
	ControlCheckbox
	ControlRadio
	ControlDate
	ControlForm
)

var controlTypeNames = map[ControlType]string{
	ControlText:     "text",
	ControlSelect:   "select",
	ControlCheckbox: "checkbox",
	ControlRadio:    "radio",
	ControlDate:     "date",
	ControlForm:     "form",
}

func (ct ControlType) String() string {
	if name, ok := controlTypeNames[ct]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (ct ControlType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ct *ControlType) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for k, v := range controlTypeNames {
		if strings.EqualFold(v, s) {
			*ct = k
			return nil
		}
	}
	return fmt.Errorf("unknown control type %q", s)
}

// HasOptions reports whether values of this type are option codes.
func (ct ControlType) HasOptions() bool {
	return ct == ControlSelect || ct == ControlCheckbox || ct == ControlRadio
}

// IsTextual reports whether values of this type are free text.
func (ct ControlType) IsTextual() bool {
	return ct == ControlText || ct == ControlDate
}

// ValueSet is one selectable option
type ValueSet struct {
	Value string `json:"value" yaml:"value"`
	Code  string `json:"code" yaml:"code"`
}

// Control is the descriptor attached to every element of a control run.
// All elements of one run share the same *Control.
type Control struct {
	Type        ControlType `json:"type" yaml:"type"`
	ConceptID   string      `json:"conceptId,omitempty" yaml:"conceptId,omitempty"`
	Value       ElementList `json:"value,omitempty" yaml:"value,omitempty"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Prefix      string      `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Postfix     string      `json:"postfix,omitempty" yaml:"postfix,omitempty"`
	MinWidth    float64     `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	Border      bool        `json:"border,omitempty" yaml:"border,omitempty"`
	Extension   any         `json:"extension,omitempty" yaml:"extension,omitempty"`

	// ValueUnderline draws a line under the whole run. Style.Underline
	// only underlines the text.
	ValueUnderline bool `json:"valueUnderline,omitempty" yaml:"valueUnderline,omitempty"`

	// Rules
	Deletable *bool `json:"deletable,omitempty" yaml:"deletable,omitempty"`
	Disabled  bool  `json:"disabled,omitempty" yaml:"disabled,omitempty"`

	// Option variants
	Code      string     `json:"code,omitempty" yaml:"code,omitempty"`
	ValueSets []ValueSet `json:"valueSets,omitempty" yaml:"valueSets,omitempty"`
	Min       int        `json:"min,omitempty" yaml:"min,omitempty"`
	Max       int        `json:"max,omitempty" yaml:"max,omitempty"`

	// Date variant
	DateFormat string `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`

	Style `yaml:",inline"`
}

// IsDeletable reports whether the run may be removed. A nil rule means yes.
func (c *Control) IsDeletable() bool {
	if c == nil || c.Deletable == nil {
		return true
	}
	return *c.Deletable
}

// Clone returns a deep copy of the descriptor.
func (c *Control) Clone() *Control {
	if c == nil {
		return nil
	}
	n := *c
	if c.Deletable != nil {
		d := *c.Deletable
		n.Deletable = &d
	}
	if c.ValueSets != nil {
		n.ValueSets = append([]ValueSet(nil), c.ValueSets...)
	}
	if c.Value != nil {
		n.Value = make(ElementList, len(c.Value))
		for i, v := range c.Value {
			n.Value[i] = v.Clone()
		}
	}
	return &n
}

// Codes splits the stored code on commas. An empty code yields no codes.
func (c *Control) Codes() []string {
	if c == nil || c.Code == "" {
		return nil
	}
	parts := strings.Split(c.Code, ",")
	codes := parts[:0]
	for _, p := range parts {
		if p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}

// FindValueSet returns the option matching code.
func (c *Control) FindValueSet(code string) (ValueSet, bool) {
	if c == nil {
		return ValueSet{}, false
	}
	for _, vs := range c.ValueSets {
		if vs.Code == code {
			return vs, true
		}
	}
	return ValueSet{}, false
}

// InnerText resolves the stored codes against the value sets and joins the
// option labels. Unknown codes are skipped.
func (c *Control) InnerText() string {
	var sb strings.Builder
	for _, code := range c.Codes() {
		if vs, ok := c.FindValueSet(code); ok && vs.Value != "" {
			sb.WriteString(vs.Value)
		}
	}
	return sb.String()
}

// Properties is a partial update of a control descriptor. Nil fields are
// left untouched; the value is never patched.
type Properties struct {
	Type        *ControlType `json:"type,omitempty" yaml:"type,omitempty"`
	ConceptID   *string      `json:"conceptId,omitempty" yaml:"conceptId,omitempty"`
	Placeholder *string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Prefix      *string      `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Postfix     *string      `json:"postfix,omitempty" yaml:"postfix,omitempty"`
	MinWidth    *float64     `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	Border      *bool        `json:"border,omitempty" yaml:"border,omitempty"`
	Extension   any          `json:"extension,omitempty" yaml:"extension,omitempty"`
	Deletable   *bool        `json:"deletable,omitempty" yaml:"deletable,omitempty"`
	Disabled    *bool        `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Code        *string      `json:"code,omitempty" yaml:"code,omitempty"`
	ValueSets   []ValueSet   `json:"valueSets,omitempty" yaml:"valueSets,omitempty"`
	Min         *int         `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *int         `json:"max,omitempty" yaml:"max,omitempty"`
	DateFormat  *string      `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`
	Style       *Style       `json:"style,omitempty" yaml:"style,omitempty"`

	ValueUnderline *bool `json:"valueUnderline,omitempty" yaml:"valueUnderline,omitempty"`
}

// Apply returns a copy of c with the non-nil properties applied.
func (p Properties) Apply(c *Control) *Control {
	n := c.Clone()
	if n == nil {
		n = &Control{}
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.ConceptID != nil {
		n.ConceptID = *p.ConceptID
	}
	if p.Placeholder != nil {
		n.Placeholder = *p.Placeholder
	}
	if p.Prefix != nil {
		n.Prefix = *p.Prefix
	}
	if p.Postfix != nil {
		n.Postfix = *p.Postfix
	}
	if p.MinWidth != nil {
		n.MinWidth = *p.MinWidth
	}
	if p.ValueUnderline != nil {
		n.ValueUnderline = *p.ValueUnderline
	}
	if p.Border != nil {
		n.Border = *p.Border
	}
	if p.Extension != nil {
		n.Extension = p.Extension
	}
	if p.Deletable != nil {
		d := *p.Deletable
		n.Deletable = &d
	}
	if p.Disabled != nil {
		n.Disabled = *p.Disabled
	}
	if p.Code != nil {
		n.Code = *p.Code
	}
	if p.ValueSets != nil {
		n.ValueSets = append([]ValueSet(nil), p.ValueSets...)
	}
	if p.Min != nil {
		n.Min = *p.Min
	}
	if p.Max != nil {
		n.Max = *p.Max
	}
	if p.DateFormat != nil {
		n.DateFormat = *p.DateFormat
	}
	if p.Style != nil {
		n.Style = *p.Style
	}
	return n
}

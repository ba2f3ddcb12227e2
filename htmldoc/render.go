// Package htmldoc renders an element stream as an HTML snapshot. Control
// runs become spans carrying data attributes, so a host page can locate
// and restyle them without the editor.
package htmldoc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/formctl/model"
	"github.com/tsawler/formctl/text"
)

// Render writes doc as a complete HTML document with one section per zone.
func Render(w io.Writer, doc *model.Document) error {
	body := element(atom.Body)
	for _, z := range model.Zones {
		list := *doc.Zone(z)
		if len(list) == 0 {
			continue
		}
		section := element(atom.Section, html.Attribute{Key: "data-zone", Val: z.String()})
		AppendList(section, list)
		body.AppendChild(section)
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page := element(atom.Html)
	page.AppendChild(element(atom.Head))
	page.AppendChild(body)
	root.AppendChild(page)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// RenderList writes list as an HTML fragment.
func RenderList(w io.Writer, list model.ElementList) error {
	div := element(atom.Div)
	AppendList(div, list)
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("rendering HTML: %w", err)
		}
	}
	return nil
}

// AppendList converts list into nodes under parent. Adjacent text
// elements with the same style share one node; each control run becomes
// one span.
func AppendList(parent *html.Node, list model.ElementList) {
	for i := 0; i < len(list); {
		e := list[i]
		switch {
		case e.IsTable():
			parent.AppendChild(table(e))
			i++
		case e.ControlID != "":
			j := i + 1
			for j < len(list) && list[j].ControlID == e.ControlID {
				j++
			}
			parent.AppendChild(controlRun(list[i:j]))
			i = j
		default:
			j := i + 1
			for j < len(list) && mergeable(e, list[j]) {
				j++
			}
			appendText(parent, list[i:j], nil)
			i = j
		}
	}
}

func controlRun(run model.ElementList) *html.Node {
	first := run[0]
	attrs := []html.Attribute{
		{Key: "class", Val: "control"},
		{Key: "data-control-id", Val: first.ControlID},
	}
	if ctl := first.Control; ctl != nil {
		attrs = append(attrs, html.Attribute{Key: "data-control-type", Val: ctl.Type.String()})
		if ctl.ConceptID != "" {
			attrs = append(attrs, html.Attribute{Key: "data-concept-id", Val: ctl.ConceptID})
		}
		if ctl.Disabled {
			attrs = append(attrs, html.Attribute{Key: "data-disabled", Val: "true"})
		}
	}
	if first.ControlGroupID != "" {
		attrs = append(attrs, html.Attribute{Key: "data-group-id", Val: first.ControlGroupID})
	}
	var value strings.Builder
	for _, e := range run {
		if e.ControlComponent == model.ComponentValue {
			value.WriteString(e.Value)
		}
	}
	if text.DetectDirection(value.String()) == text.RTL {
		attrs = append(attrs, html.Attribute{Key: "dir", Val: "rtl"})
	}
	span := element(atom.Span, attrs...)

	for i := 0; i < len(run); {
		e := run[i]
		if e.Checkbox != nil || e.Radio != nil {
			span.AppendChild(optionInput(e))
			i++
			continue
		}
		if !e.Type.IsTextLike() {
			span.AppendChild(opaque(e))
			i++
			continue
		}
		j := i + 1
		for j < len(run) && run[j].ControlComponent == e.ControlComponent && mergeable(e, run[j]) {
			j++
		}
		appendText(span, run[i:j], []html.Attribute{{Key: "class", Val: e.ControlComponent.String()}})
		i = j
	}
	return span
}

// appendText writes the joined values of list. Newlines become <br>. A
// span wraps the text when attrs or a style are present.
func appendText(parent *html.Node, list model.ElementList, attrs []html.Attribute) {
	first := list[0]
	if !first.Type.IsTextLike() && first.Checkbox == nil && first.Radio == nil {
		for _, e := range list {
			parent.AppendChild(opaque(e))
		}
		return
	}
	if first.Checkbox != nil || first.Radio != nil {
		for _, e := range list {
			parent.AppendChild(optionInput(e))
		}
		return
	}

	var sb strings.Builder
	for _, e := range list {
		sb.WriteString(e.Value)
	}

	target := parent
	if css := styleAttr(first.Style); css != "" || len(attrs) > 0 {
		if css != "" {
			attrs = append(attrs, html.Attribute{Key: "style", Val: css})
		}
		target = element(inlineAtom(first.Type), attrs...)
		parent.AppendChild(target)
	} else if a := inlineAtom(first.Type); a != atom.Span {
		target = element(a)
		parent.AppendChild(target)
	}

	for i, line := range strings.Split(sb.String(), "\n") {
		if i > 0 {
			target.AppendChild(element(atom.Br))
		}
		if line != "" {
			target.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
}

func inlineAtom(t model.ElementType) atom.Atom {
	switch t {
	case model.TypeSuperscript:
		return atom.Sup
	case model.TypeSubscript:
		return atom.Sub
	default:
		return atom.Span
	}
}

func mergeable(a, b *model.Element) bool {
	return a.Type == b.Type && a.Style == b.Style && a.Type.IsTextLike() &&
		a.ControlID == b.ControlID
}

func optionInput(e *model.Element) *html.Node {
	kind, state := "checkbox", e.Checkbox
	if e.Radio != nil {
		kind, state = "radio", e.Radio
	}
	attrs := []html.Attribute{{Key: "type", Val: kind}, {Key: "disabled"}}
	if state != nil {
		attrs = append(attrs, html.Attribute{Key: "value", Val: state.Code})
		if state.Value {
			attrs = append(attrs, html.Attribute{Key: "checked"})
		}
	}
	return element(atom.Input, attrs...)
}

// opaque renders elements without text semantics.
func opaque(e *model.Element) *html.Node {
	switch e.Type {
	case model.TypeSeparator:
		return element(atom.Hr)
	case model.TypePageBreak:
		return element(atom.Div, html.Attribute{Key: "class", Val: "page-break"})
	case model.TypeImage:
		return element(atom.Img, html.Attribute{Key: "src", Val: e.Value})
	case model.TypeTab:
		n := element(atom.Span, html.Attribute{Key: "class", Val: "tab"})
		n.AppendChild(&html.Node{Type: html.TextNode, Data: "\t"})
		return n
	case model.TypeCheckbox, model.TypeRadio:
		return optionInput(e)
	default:
		return element(atom.Span, html.Attribute{Key: "data-type", Val: e.Type.String()})
	}
}

func table(e *model.Element) *html.Node {
	t := element(atom.Table)
	if e.ID != "" {
		t.Attr = append(t.Attr, html.Attribute{Key: "data-id", Val: e.ID})
	}
	tbody := element(atom.Tbody)
	t.AppendChild(tbody)
	for _, row := range e.Rows {
		tr := element(atom.Tr)
		if row.ID != "" {
			tr.Attr = append(tr.Attr, html.Attribute{Key: "data-id", Val: row.ID})
		}
		for _, cell := range row.Cells {
			td := element(atom.Td)
			if cell.ID != "" {
				td.Attr = append(td.Attr, html.Attribute{Key: "data-id", Val: cell.ID})
			}
			if cell.ColSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(cell.ColSpan)})
			}
			if cell.RowSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(cell.RowSpan)})
			}
			AppendList(td, cell.Value)
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	return t
}

func styleAttr(s model.Style) string {
	var parts []string
	if s.Font != "" {
		parts = append(parts, "font-family:"+s.Font)
	}
	if s.Size > 0 {
		parts = append(parts, fmt.Sprintf("font-size:%dpx", s.Size))
	}
	if s.Bold {
		parts = append(parts, "font-weight:bold")
	}
	if s.Italic {
		parts = append(parts, "font-style:italic")
	}
	var deco []string
	if s.Underline {
		deco = append(deco, "underline")
	}
	if s.Strikeout {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		parts = append(parts, "text-decoration:"+strings.Join(deco, " "))
	}
	if s.Color != "" {
		parts = append(parts, "color:"+s.Color)
	}
	if s.Highlight != "" {
		parts = append(parts, "background-color:"+s.Highlight)
	}
	return strings.Join(parts, ";")
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

// Package headless is an in-memory rendering engine for the control layer.
//
// [Engine] implements [control.Draw] without painting anything: it keeps
// the document zones, a live range, an undo checkpoint stack and a
// monospace layout that yields element positions and page rows. Every
// render and scroll request is recorded so callers can inspect what the
// control layer asked for.
//
//	doc, err := headless.LoadDocument("form.yaml", model.DefaultFormatOptions())
//	engine := headless.New(doc)
//	ctl := control.New(engine)
//	engine.Range().SetRange(3, 3)
//	ctl.InitControl()
//
// # Layout
//
// Elements are laid out left to right with a fixed width per display
// cell, wrapping at the page's content edge. A table takes a row of its
// own. Pages hold as many rows as fit between the top and bottom margins.
package headless

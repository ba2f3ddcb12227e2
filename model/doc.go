// Package model provides the element stream that an editable document is
// made of, and the control descriptors layered on top of it.
//
// A document is a flat, ordered [ElementList] per zone (header, main,
// footer). Tables are single elements that own a nested
// rows → cells → element list structure, so the "flat" list is really a
// tree reached through table elements.
//
// # Elements
//
// Every [Element] is an atomic unit of content: a character or grouped text
// run, an image, a table, or one of the synthetic control parts. Elements
// that belong to an interactive control share a ControlID and a pointer to
// the same [Control] descriptor, and carry a [ControlComponent] role:
//
//   - [ComponentPrefix], [ComponentPostfix] - decorative brackets
//   - [ComponentValue] - user-entered content
//   - [ComponentPlaceholder] - filler shown while no value exists
//   - [ComponentCheckbox], [ComponentRadio] - option glyphs
//
// # Normalization
//
// [Format] expands compact control elements into well-formed runs, and
// [Zip] collapses runs back into one descriptor per control:
//
//	list := model.ElementList{{Type: model.TypeControl, Control: ctl}}
//	model.Format(&list, model.DefaultFormatOptions())
//
// # Layout Read-Models
//
// The rendering engine reports where elements ended up through
// [ElementPosition], [Row] and [PositionContext]. These are consumed
// read-only by navigation and overlay geometry.
package model

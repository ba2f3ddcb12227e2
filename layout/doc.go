// Package layout computes overlay geometry from the row layout the
// rendering engine reports.
//
// The package never lays anything out itself. It consumes, read-only, the
// per-element positions ([model.ElementPosition]) and the per-page row list
// ([model.Row]) and derives the highlight rectangles ("shadow boxes")
// painted behind an active control or control group.
//
// # Shadow Boxes
//
// [ShadowBoxes] returns one rectangle when the run fits on a single row.
// Otherwise it returns, per spanned page:
//
//   - a partial box on the first row, from the control's left edge to the
//     right content edge, minus trailing foreign content
//   - one merged full-width box for every fully enclosed row
//   - a partial box on the last row, from the left content edge, minus
//     leading foreign content, up to the control's end
//
// Boxes are page relative. [ShadowBox.Absolute] offsets them into the
// scrollable space of all pages.
package layout

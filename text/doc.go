// Package text provides the string helpers controls need when they turn
// user input into element runs.
//
// # Editable Units
//
// [Split] breaks a string into its minimal editable units, one per
// user-perceived character (extended grapheme cluster), after NFC
// normalization:
//
//	units := text.Split("Name") // ["N" "a" "m" "e"]
//
// Each unit becomes one element of a control run, so a caret never lands in
// the middle of a combined character or emoji sequence.
//
// # Direction
//
// [DetectDirection] reports whether a value reads left to right or right to
// left, from the Unicode bidi classes of its strong characters.
//
// # Dates
//
// Date controls describe their format with the tokens yyyy, MM, dd, HH (or
// hh), mm and ss. [FormatDate] and [ParseDate] convert between those
// patterns and time.Time.
package text

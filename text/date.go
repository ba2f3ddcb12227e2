package text

import (
	"strings"
	"time"
)

// DefaultDateFormat is used when a date control has no format of its own
const DefaultDateFormat = "yyyy-MM-dd hh:mm:ss"

var dateTokens = strings.NewReplacer(
	"yyyy", "2006",
	"MM", "01",
	"dd", "02",
	"HH", "15",
	"hh", "15",
	"mm", "04",
	"ss", "05",
)

// Layout converts a token pattern to a Go time layout.
func Layout(format string) string {
	if format == "" {
		format = DefaultDateFormat
	}
	return dateTokens.Replace(format)
}

// FormatDate renders t with a token pattern.
func FormatDate(t time.Time, format string) string {
	return t.Format(Layout(format))
}

// ParseDate parses s with a token pattern.
func ParseDate(s, format string) (time.Time, error) {
	return time.Parse(Layout(format), s)
}

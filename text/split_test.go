package text

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Split Tests
// ============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"ascii", "abc", []string{"a", "b", "c"}},
		{"cjk", "中文", []string{"中", "文"}},
		{"combining mark is one unit", "e\u0301x", []string{"\u00e9", "x"}},
		{"emoji with modifier", "👍🏽!", []string{"👍🏽", "!"}},
		{"flag", "🇩🇪", []string{"🇩🇪"}},
		{"zwj family", "\U0001F468\u200d\U0001F469\u200d\U0001F467", []string{"\U0001F468\u200d\U0001F469\u200d\U0001F467"}},
		{"crlf is one unit", "a\r\nb", []string{"a", "\r\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split(""))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n"))
	assert.True(t, IsBlank("\u200b"))
	assert.True(t, IsBlank("\u00a0\u00a0"))
	assert.False(t, IsBlank(" a "))
}

// ============================================================================
// Date Tests
// ============================================================================

func TestLayout(t *testing.T) {
	assert.Equal(t, "2006-01-02 15:04:05", Layout(""))
	assert.Equal(t, "02/01/2006", Layout("dd/MM/yyyy"))
	assert.Equal(t, "15:04", Layout("HH:mm"))
}

func TestFormatAndParseDate(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 30, 0, time.UTC)

	assert.Equal(t, "2024-03-07 09:05:30", FormatDate(ts, ""))
	assert.Equal(t, "07.03.2024", FormatDate(ts, "dd.MM.yyyy"))

	parsed, err := ParseDate("2024-03-07", "yyyy-MM-dd")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 7, parsed.Day())

	_, err = ParseDate("not a date", "yyyy-MM-dd")
	assert.Error(t, err)
}

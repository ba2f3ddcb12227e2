package format

import (
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JSON, "JSON"},
		{YAML, "YAML"},
		{TOML, "TOML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JSON, ".json"},
		{YAML, ".yaml"},
		{TOML, ".toml"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"form.json", JSON},
		{"form.JSON", JSON},
		{"form.yaml", YAML},
		{"form.yml", YAML},
		{"formctl.toml", TOML},
		{"dir.d/formctl.Toml", TOML},
		{"form", Unknown},
		{"form.ini", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromContent(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"json object", `{"main": []}`, JSON},
		{"json array", `[1, 2]`, JSON},
		{"json after bom", "\xef\xbb\xbf  {}", JSON},
		{"toml table", "# settings\n\n[page]\nwidth = 600", TOML},
		{"toml array table", "[[rows]]\nid = 1", TOML},
		{"toml dotted table", "[log.file] # rotating\n", TOML},
		{"toml key", "prefix = \"<<\"", TOML},
		{"yaml mapping", "main:\n  - value: x", YAML},
		{"yaml quoted key", "\"main\": []", YAML},
		{"yaml document marker", "---\nmain: []", YAML},
		{"yaml sequence", "- value: x", YAML},
		{"empty", "", Unknown},
		{"comments only", "# nothing\n# here", Unknown},
		{"prose", "just some words", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromContent([]byte(tt.data)); got != tt.want {
				t.Errorf("DetectFromContent(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	// the extension wins over the content
	if got := Resolve("form.yaml", []byte(`{"main": []}`)); got != YAML {
		t.Errorf("Resolve with extension = %v, want YAML", got)
	}
	if got := Resolve("formctl.conf", []byte("[page]\nwidth = 1")); got != TOML {
		t.Errorf("Resolve by content = %v, want TOML", got)
	}
	if got := Resolve("formctl.conf", []byte("???")); got != Unknown {
		t.Errorf("Resolve unknown = %v, want Unknown", got)
	}
}

// Package format detects the serialization format of config files and
// documents.
package format

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
)

// Format represents a supported serialization format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a JSON document.
	JSON
	// YAML indicates a YAML document.
	YAML
	// TOML indicates a TOML document.
	TOML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	case TOML:
		return "TOML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	case TOML:
		return ".toml"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return Unknown
	}
}

var (
	tomlTable = regexp.MustCompile(`^\[\[?\s*[A-Za-z0-9_\-."]+\s*\]\]?\s*(#.*)?$`)
	tomlKey   = regexp.MustCompile(`^[A-Za-z0-9_\-."]+\s*=`)
	yamlKey   = regexp.MustCompile(`^("[^"]*"|'[^']*'|[^\s#:][^:]*):(\s|$)`)
)

// DetectFromContent inspects the first significant line of data. Comment
// lines and a UTF-8 byte order mark are skipped.
func DetectFromContent(data []byte) Format {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case tomlTable.MatchString(line):
			return TOML
		case line[0] == '{' || line[0] == '[':
			return JSON
		case tomlKey.MatchString(line):
			return TOML
		case line == "---" || strings.HasPrefix(line, "- ") || yamlKey.MatchString(line):
			return YAML
		default:
			return Unknown
		}
	}
	return Unknown
}

// Resolve prefers the extension and falls back to the content.
func Resolve(filename string, data []byte) Format {
	if f := Detect(filename); f != Unknown {
		return f
	}
	return DetectFromContent(data)
}

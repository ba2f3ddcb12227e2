package headless

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/formctl/format"
	"github.com/tsawler/formctl/model"
)

// LoadDocument reads a YAML or JSON document and formats every zone, so
// compact control elements become full runs.
func LoadDocument(path string, opts model.FormatOptions) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return ParseDocument(data, filepath.Ext(path), opts)
}

// ParseDocument decodes data by extension (".yaml", ".yml" or ".json"),
// sniffing the content when the extension is unknown, and formats every
// zone.
func ParseDocument(data []byte, ext string, opts model.FormatOptions) (*model.Document, error) {
	doc := model.NewDocument()
	switch format.Resolve(ext, data) {
	case format.YAML:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
	case format.JSON:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", ext)
	}
	for _, z := range model.Zones {
		model.Format(doc.Zone(z), opts)
	}
	return doc, nil
}

package model

import (
	"fmt"
	"strings"
)

// Zone is one of the independent element-list documents of an editor
type Zone int

const (
	ZoneHeader Zone = iota
	ZoneMain
	ZoneFooter
)

// Zones lists every zone in the order value lookups scan them.
var Zones = []Zone{ZoneHeader, ZoneMain, ZoneFooter}

func (z Zone) String() string {
	switch z {
	case ZoneHeader:
		return "header"
	case ZoneFooter:
		return "footer"
	default:
		return "main"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Zone) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "header":
		*z = ZoneHeader
	case "main", "":
		*z = ZoneMain
	case "footer":
		*z = ZoneFooter
	default:
		return fmt.Errorf("unknown zone %q", string(b))
	}
	return nil
}

// Document is the complete editor data: one element list per zone
type Document struct {
	Header ElementList `json:"header,omitempty" yaml:"header,omitempty"`
	Main   ElementList `json:"main" yaml:"main"`
	Footer ElementList `json:"footer,omitempty" yaml:"footer,omitempty"`
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Header: make(ElementList, 0),
		Main:   make(ElementList, 0),
		Footer: make(ElementList, 0),
	}
}

// Zone returns a pointer to the element list of zone z
func (d *Document) Zone(z Zone) *ElementList {
	switch z {
	case ZoneHeader:
		return &d.Header
	case ZoneFooter:
		return &d.Footer
	default:
		return &d.Main
	}
}

// ExtractText returns the value text of every zone, header first
func (d *Document) ExtractText() string {
	var sb strings.Builder
	for _, z := range Zones {
		sb.WriteString(d.Zone(z).Text())
	}
	return sb.String()
}
